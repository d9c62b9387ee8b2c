package ort

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure category.
// Every Error variant matches its category sentinel with errors.Is().
var (
	// ErrNativeCall indicates a native runtime call returned a failure status.
	ErrNativeCall = errors.New("ort: native call failed")

	// ErrEncoding indicates text could not be converted to or from its native form.
	ErrEncoding = errors.New("ort: text encoding error")

	// ErrValidation indicates input data does not match what the model expects.
	ErrValidation = errors.New("ort: data validation failed")

	// ErrResource indicates a file, path or shared library problem.
	ErrResource = errors.New("ort: resource error")

	// ErrDevice indicates an unknown or unsuitable allocation device.
	ErrDevice = errors.New("ort: device error")

	// ErrProvider indicates an execution provider is not available.
	ErrProvider = errors.New("ort: execution provider not registered")

	// ErrDownload indicates a model artifact could not be fetched.
	ErrDownload = errors.New("ort: model download failed")

	// ErrInternal indicates a broken invariant at the native boundary.
	ErrInternal = errors.New("ort: internal error")
)

// Category classifies an Error.
type Category int

const (
	CategoryNativeCall Category = iota
	CategoryEncoding
	CategoryValidation
	CategoryResource
	CategoryDevice
	CategoryProvider
	CategoryDownload
	CategoryInternal
)

var categoryNames = [...]string{
	CategoryNativeCall: "native_call",
	CategoryEncoding:   "encoding",
	CategoryValidation: "validation",
	CategoryResource:   "resource",
	CategoryDevice:     "device",
	CategoryProvider:   "provider",
	CategoryDownload:   "download",
	CategoryInternal:   "internal",
}

var categorySentinels = [...]error{
	CategoryNativeCall: ErrNativeCall,
	CategoryEncoding:   ErrEncoding,
	CategoryValidation: ErrValidation,
	CategoryResource:   ErrResource,
	CategoryDevice:     ErrDevice,
	CategoryProvider:   ErrProvider,
	CategoryDownload:   ErrDownload,
	CategoryInternal:   ErrInternal,
}

// String returns the snake_case name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Sentinel returns the sentinel error matched by errors of this category.
func (c Category) Sentinel() error {
	if c < 0 || int(c) >= len(categorySentinels) {
		return ErrInternal
	}
	return categorySentinels[c]
}

// Error is implemented by every failure this package reports.
// The set of implementations is closed; use errors.As with the concrete
// variant types to read their context.
type Error interface {
	error

	// Category returns the failure category of the error.
	Category() Category

	sealed()
}

// CategoryOf returns the category of the first Error in err's chain.
// The second result is false if err contains no Error.
func CategoryOf(err error) (Category, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.Category(), true
	}
	return 0, false
}

// sealedError is embedded by every variant to close the Error interface.
type sealedError struct{}

func (sealedError) sealed() {}

// ErrorDetail is the payload of a failed native call: either the decoded
// runtime message or the failure encountered while decoding it.
type ErrorDetail struct {
	message   string
	decodeErr *StringDecodeError
}

// messageDetail returns a detail carrying a decoded message.
func messageDetail(msg string) *ErrorDetail {
	return &ErrorDetail{message: msg}
}

// decodeFailureDetail returns a detail carrying a message decode failure.
func decodeFailureDetail(err *StringDecodeError) *ErrorDetail {
	return &ErrorDetail{decodeErr: err}
}

// Message returns the decoded runtime message.
// The second result is false if the message could not be decoded.
func (d *ErrorDetail) Message() (string, bool) {
	if d.decodeErr != nil {
		return "", false
	}
	return d.message, true
}

// DecodeErr returns the decode failure, or nil if the message was decoded.
func (d *ErrorDetail) DecodeErr() *StringDecodeError {
	return d.decodeErr
}

func (d *ErrorDetail) Error() string {
	if d.decodeErr != nil {
		return "an error occurred, but the runtime failed to convert the error message to UTF-8"
	}
	return d.message
}

// Unwrap returns the decode failure, if any.
func (d *ErrorDetail) Unwrap() error {
	if d.decodeErr != nil {
		return d.decodeErr
	}
	return nil
}

// CallError reports a failed native call at a specific call site.
type CallError struct {
	sealedError

	// Op identifies the call site.
	Op Op

	// Detail is the translated status of the call.
	Detail *ErrorDetail
}

func newCallError(op Op, detail *ErrorDetail) *CallError {
	return &CallError{Op: op, Detail: detail}
}

func (e *CallError) Error() string {
	if e.Op == OpExecutionProvider {
		return e.Detail.Error()
	}
	return e.Op.failureText() + ": " + e.Detail.Error()
}

// Category returns CategoryNativeCall.
func (e *CallError) Category() Category { return CategoryNativeCall }

func (e *CallError) Is(target error) bool { return target == ErrNativeCall }

func (e *CallError) Unwrap() error {
	if e.Detail == nil {
		return nil
	}
	return e.Detail
}

// StringDecodeError reports a native string that is not valid UTF-8.
type StringDecodeError struct {
	sealedError

	// Offset is the index of the first invalid byte.
	Offset int
}

func (e *StringDecodeError) Error() string {
	return fmt.Sprintf("native string is not valid UTF-8 (invalid byte at offset %d)", e.Offset)
}

// Category returns CategoryEncoding.
func (e *StringDecodeError) Category() Category { return CategoryEncoding }

func (e *StringDecodeError) Is(target error) bool { return target == ErrEncoding }

// StringConversionError reports a failed native string to text conversion
// outside of status translation.
type StringConversionError struct {
	sealedError

	Err *StringDecodeError
}

func (e *StringConversionError) Error() string {
	return "failed to convert native string: " + e.Err.Error()
}

// Category returns CategoryEncoding.
func (e *StringConversionError) Category() Category { return CategoryEncoding }

func (e *StringConversionError) Is(target error) bool { return target == ErrEncoding }

func (e *StringConversionError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// UTF8Error reports a byte sequence that is not valid UTF-8.
type UTF8Error struct {
	sealedError

	// Offset is the index of the first invalid byte.
	Offset int
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("data was not UTF-8: invalid byte at offset %d", e.Offset)
}

// Category returns CategoryEncoding.
func (e *UTF8Error) Category() Category { return CategoryEncoding }

func (e *UTF8Error) Is(target error) bool { return target == ErrEncoding }

// NulByteError reports text that cannot become a native string because it
// contains a NUL byte.
type NulByteError struct {
	sealedError

	// Offset is the index of the NUL byte.
	Offset int
}

func (e *NulByteError) Error() string {
	return fmt.Sprintf("failed to build native string: text contains NUL at offset %d", e.Offset)
}

// Category returns CategoryEncoding.
func (e *NulByteError) Category() Category { return CategoryEncoding }

func (e *NulByteError) Is(target error) bool { return target == ErrEncoding }

// FileNotFoundError reports a model file that does not exist.
type FileNotFoundError struct {
	sealedError

	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q does not exist", e.Path)
}

// Category returns CategoryResource.
func (e *FileNotFoundError) Category() Category { return CategoryResource }

func (e *FileNotFoundError) Is(target error) bool { return target == ErrResource }

// NonUTF8PathError reports a path that cannot be passed to the runtime
// because it is not valid UTF-8.
type NonUTF8PathError struct {
	sealedError

	Path string
}

func (e *NonUTF8PathError) Error() string {
	return fmt.Sprintf("path %q cannot be converted to UTF-8", e.Path)
}

// Category returns CategoryResource.
func (e *NonUTF8PathError) Category() Category { return CategoryResource }

func (e *NonUTF8PathError) Is(target error) bool { return target == ErrResource }

// DynamicLoadError reports a symbol that could not be loaded from the
// runtime shared library.
type DynamicLoadError struct {
	sealedError

	Symbol string
	Err    error
}

func (e *DynamicLoadError) Error() string {
	return fmt.Sprintf("error trying to load symbol %q from dynamic library: %v", e.Symbol, e.Err)
}

// Category returns CategoryResource.
func (e *DynamicLoadError) Category() Category { return CategoryResource }

func (e *DynamicLoadError) Is(target error) bool { return target == ErrResource }

func (e *DynamicLoadError) Unwrap() error { return e.Err }

// PathError reports a filesystem operation on a model or cache path that
// failed for a reason other than the file being absent.
type PathError struct {
	sealedError

	// Op names the operation, such as "stat" or "mkdir".
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Category returns CategoryResource.
func (e *PathError) Category() Category { return CategoryResource }

func (e *PathError) Is(target error) bool { return target == ErrResource }

func (e *PathError) Unwrap() error { return e.Err }

// PointerError reports a native pointer with the wrong nullness.
type PointerError struct {
	sealedError

	// Name identifies the pointer.
	Name string

	// WantNull is true if the pointer should have been null.
	WantNull bool
}

func (e *PointerError) Error() string {
	if e.WantNull {
		return fmt.Sprintf("%q should be a null pointer", e.Name)
	}
	return fmt.Sprintf("%q should not be a null pointer", e.Name)
}

// Category returns CategoryInternal.
func (e *PointerError) Category() Category { return CategoryInternal }

func (e *PointerError) Is(target error) bool { return target == ErrInternal }

// DownloadError reports a failed model download.
type DownloadError struct {
	sealedError

	Err *FetchError
}

func newDownloadError(err *FetchError) *DownloadError {
	return &DownloadError{Err: err}
}

func (e *DownloadError) Error() string {
	return "failed to download model: " + e.Err.Error()
}

// Category returns CategoryDownload.
func (e *DownloadError) Category() Category { return CategoryDownload }

func (e *DownloadError) Is(target error) bool { return target == ErrDownload }

func (e *DownloadError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

var (
	_ Error = (*CallError)(nil)
	_ Error = (*StringDecodeError)(nil)
	_ Error = (*StringConversionError)(nil)
	_ Error = (*UTF8Error)(nil)
	_ Error = (*NulByteError)(nil)
	_ Error = (*FileNotFoundError)(nil)
	_ Error = (*NonUTF8PathError)(nil)
	_ Error = (*DynamicLoadError)(nil)
	_ Error = (*PathError)(nil)
	_ Error = (*PointerError)(nil)
	_ Error = (*DownloadError)(nil)
)
