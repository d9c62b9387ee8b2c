package ort

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// Status is an opaque status handle returned by a native runtime call.
// A nil Status means success. A non-nil Status owns a message and native
// memory that must be released exactly once.
type Status unsafe.Pointer

// CString is a pointer to a NUL-terminated string owned by the native layer.
type CString unsafe.Pointer

// NativeAPI is the subset of the native runtime used to inspect and release
// status handles. The cgo binding (build tag ort_cgo) implements it against
// the ONNX Runtime C API; tests use a fake.
type NativeAPI interface {
	// GetErrorMessage returns the message held by status.
	// The result is valid only until status is released.
	GetErrorMessage(status Status) CString

	// ReleaseStatus frees status. Releasing a nil status is a no-op.
	// Calling it twice on the same handle is undefined.
	ReleaseStatus(status Status)
}

// noCopy may be embedded into structs which must not be copied after first
// use. See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// statusGuard owns exactly one status handle and releases it once.
type statusGuard struct {
	noCopy noCopy

	// api releases the handle.
	api NativeAPI

	// status is the owned handle, nil after release.
	status Status

	// released is set by the first release call.
	released bool
}

// newStatusGuard takes ownership of status, which may be nil.
func newStatusGuard(api NativeAPI, status Status) *statusGuard {
	return &statusGuard{api: api, status: status}
}

// Status returns the owned handle without transferring ownership.
func (g *statusGuard) Status() Status {
	return g.status
}

// release hands the handle back to the native layer. Only the first call
// has an effect. A nil handle is still passed through.
func (g *statusGuard) release() {
	if g.released {
		return
	}
	g.released = true
	g.api.ReleaseStatus(g.status)
	g.status = nil
}

// translateStatus converts a status handle into nil on success or an
// ErrorDetail on failure. The handle is always released before returning,
// including when decoding panics.
func translateStatus(api NativeAPI, status Status) *ErrorDetail {
	guard := newStatusGuard(api, status)
	defer guard.release()

	if guard.Status() == nil {
		return nil
	}

	msg := api.GetErrorMessage(guard.Status())
	if msg == nil {
		panic(fmt.Sprintf("ort: native layer returned a null message for non-null status %p", unsafe.Pointer(guard.Status())))
	}

	// decodeCString copies, so the text outlives the release below.
	text, err := decodeCString(msg)
	if err != nil {
		return decodeFailureDetail(err)
	}
	return messageDetail(text)
}

// StatusToResult translates and releases status.
// Returns nil for a nil status, otherwise an *ErrorDetail.
func StatusToResult(api NativeAPI, status Status) error {
	if detail := translateStatus(api, status); detail != nil {
		return detail
	}
	return nil
}

// cStringBytes returns the bytes of a NUL-terminated string, without the
// terminator. The slice aliases native memory.
func cStringBytes(p CString) []byte {
	base := unsafe.Pointer(p)
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return unsafe.Slice((*byte)(base), n)
}

// decodeCString copies a native string into an owned Go string.
func decodeCString(p CString) (string, *StringDecodeError) {
	b := cStringBytes(p)
	if off := invalidUTF8Offset(b); off >= 0 {
		return "", &StringDecodeError{Offset: off}
	}
	return string(b), nil
}

// DecodeCString copies a native string into an owned Go string.
func DecodeCString(p CString) (string, error) {
	if p == nil {
		return "", &PointerError{Name: "native string"}
	}
	s, err := decodeCString(p)
	if err != nil {
		return "", &StringConversionError{Err: err}
	}
	return s, nil
}

// DecodeUTF8 converts a byte sequence read from the runtime into text.
func DecodeUTF8(b []byte) (string, error) {
	if off := invalidUTF8Offset(b); off >= 0 {
		return "", &UTF8Error{Offset: off}
	}
	return string(b), nil
}

// NativeString returns s as a NUL-terminated byte slice suitable for
// passing to the native layer.
func NativeString(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return nil, &NulByteError{Offset: i}
		}
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, nil
}

// invalidUTF8Offset returns the index of the first byte that is not part of
// a valid UTF-8 sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// CheckNull returns a *PointerError if p is not nil.
func CheckNull(p unsafe.Pointer, name string) error {
	if p != nil {
		return &PointerError{Name: name, WantNull: true}
	}
	return nil
}

// CheckNonNull returns a *PointerError if p is nil.
func CheckNonNull(p unsafe.Pointer, name string) error {
	if p == nil {
		return &PointerError{Name: name}
	}
	return nil
}
