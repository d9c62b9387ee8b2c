package ort

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrNativeCall", ErrNativeCall, "ort: native call failed"},
		{"ErrEncoding", ErrEncoding, "ort: text encoding error"},
		{"ErrValidation", ErrValidation, "ort: data validation failed"},
		{"ErrResource", ErrResource, "ort: resource error"},
		{"ErrDevice", ErrDevice, "ort: device error"},
		{"ErrProvider", ErrProvider, "ort: execution provider not registered"},
		{"ErrDownload", ErrDownload, "ort: model download failed"},
		{"ErrInternal", ErrInternal, "ort: internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()

			if !strings.HasPrefix(got, "ort: ") {
				t.Errorf("%s: message %q does not have 'ort: ' prefix", tt.name, got)
			}
			if got != tt.wantMsg {
				t.Errorf("%s: got %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestVariantCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      Error
		category Category
	}{
		{"CallError", newCallError(OpSessionRun, messageDetail("boom")), CategoryNativeCall},
		{"StringDecodeError", &StringDecodeError{Offset: 1}, CategoryEncoding},
		{"StringConversionError", &StringConversionError{Err: &StringDecodeError{}}, CategoryEncoding},
		{"UTF8Error", &UTF8Error{Offset: 2}, CategoryEncoding},
		{"NulByteError", &NulByteError{Offset: 3}, CategoryEncoding},
		{"FileNotFoundError", &FileNotFoundError{Path: "model.onnx"}, CategoryResource},
		{"NonUTF8PathError", &NonUTF8PathError{Path: "x"}, CategoryResource},
		{"DynamicLoadError", &DynamicLoadError{Symbol: "OrtGetApiBase", Err: errors.New("missing")}, CategoryResource},
		{"PathError", &PathError{Op: "stat", Path: "model.onnx", Err: errors.New("denied")}, CategoryResource},
		{"PointerError", &PointerError{Name: "session"}, CategoryInternal},
		{"DownloadError", newDownloadError(&FetchError{Kind: FetchIO, Err: errors.New("reset")}), CategoryDownload},
		{"ElementTypeMismatchError", &ElementTypeMismatchError{}, CategoryValidation},
		{"ExtractTypeMismatchError", &ExtractTypeMismatchError{}, CategoryValidation},
		{"DimensionsMismatchError", &DimensionsMismatchError{}, CategoryValidation},
		{"UndefinedElementTypeError", &UndefinedElementTypeError{}, CategoryValidation},
		{"StringTensorAllocatorError", &StringTensorAllocatorError{}, CategoryValidation},
		{"UnknownAllocationDeviceError", &UnknownAllocationDeviceError{Device: "TPU"}, CategoryDevice},
		{"TensorNotOnCPUError", &TensorNotOnCPUError{Device: DeviceCUDA}, CategoryDevice},
		{"ProviderNotRegisteredError", &ProviderNotRegisteredError{Name: "CUDAExecutionProvider"}, CategoryProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Category(); got != tt.category {
				t.Errorf("Category() = %v, want %v", got, tt.category)
			}

			// Wrap to ensure the chain is followed
			wrapped := fmt.Errorf("outer context: %w", tt.err)
			if !errors.Is(wrapped, tt.category.Sentinel()) {
				t.Errorf("errors.Is(wrapped, %v) = false, want true", tt.category.Sentinel())
			}

			got, ok := CategoryOf(wrapped)
			if !ok || got != tt.category {
				t.Errorf("CategoryOf() = %v, %v, want %v, true", got, ok, tt.category)
			}

			// A variant matches only its own category
			for c := CategoryNativeCall; c <= CategoryInternal; c++ {
				if c == tt.category {
					continue
				}
				if errors.Is(tt.err, c.Sentinel()) {
					t.Errorf("errors.Is(%s, %v) = true, want false", tt.name, c.Sentinel())
				}
			}
		})
	}
}

func TestCategoryOfNonTaxonomyError(t *testing.T) {
	if _, ok := CategoryOf(errors.New("plain")); ok {
		t.Error("CategoryOf(plain error) ok = true, want false")
	}
	if _, ok := CategoryOf(nil); ok {
		t.Error("CategoryOf(nil) ok = true, want false")
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{CategoryNativeCall, "native_call"},
		{CategoryEncoding, "encoding"},
		{CategoryValidation, "validation"},
		{CategoryResource, "resource"},
		{CategoryDevice, "device"},
		{CategoryProvider, "provider"},
		{CategoryDownload, "download"},
		{CategoryInternal, "internal"},
		{Category(42), "category(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	if Category(-1).Sentinel() != ErrInternal {
		t.Error("Sentinel() of an invalid category should be ErrInternal")
	}
}

func TestCallErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		err    *CallError
		want   string
		wantIs error
	}{
		{
			name: "session run",
			err:  newCallError(OpSessionRun, messageDetail("invalid input shape")),
			want: "failed to run inference on model: invalid input shape",
		},
		{
			name: "create session",
			err:  newCallError(OpCreateSession, messageDetail("no such file")),
			want: "failed to create ONNX Runtime session: no such file",
		},
		{
			name: "execution provider renders message alone",
			err:  newCallError(OpExecutionProvider, messageDetail("CUDA failure 100")),
			want: "CUDA failure 100",
		},
		{
			name:   "decode failure",
			err:    newCallError(OpGetInputName, decodeFailureDetail(&StringDecodeError{Offset: 0})),
			want:   "failed to get input name: an error occurred, but the runtime failed to convert the error message to UTF-8",
			wantIs: ErrEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if tt.wantIs != nil && !errors.Is(tt.err, tt.wantIs) {
				t.Errorf("errors.Is(err, %v) = false, want true", tt.wantIs)
			}

			var detail *ErrorDetail
			if !errors.As(tt.err, &detail) {
				t.Fatal("errors.As(*ErrorDetail) = false, want true")
			}
			if detail != tt.err.Detail {
				t.Error("unwrapped detail differs from CallError.Detail")
			}
		})
	}
}

func TestErrorDetail(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		d := messageDetail("invalid input shape")
		msg, ok := d.Message()
		if !ok || msg != "invalid input shape" {
			t.Errorf("Message() = %q, %v, want %q, true", msg, ok, "invalid input shape")
		}
		if d.DecodeErr() != nil {
			t.Errorf("DecodeErr() = %v, want nil", d.DecodeErr())
		}
		if d.Unwrap() != nil {
			t.Errorf("Unwrap() = %v, want nil", d.Unwrap())
		}
	})

	t.Run("decode failure", func(t *testing.T) {
		decodeErr := &StringDecodeError{Offset: 4}
		d := decodeFailureDetail(decodeErr)
		if _, ok := d.Message(); ok {
			t.Error("Message() ok = true, want false")
		}
		if d.DecodeErr() != decodeErr {
			t.Errorf("DecodeErr() = %v, want %v", d.DecodeErr(), decodeErr)
		}

		var got *StringDecodeError
		if !errors.As(d, &got) || got.Offset != 4 {
			t.Errorf("errors.As(*StringDecodeError) = %v, want offset 4", got)
		}
	})
}

func TestVariantMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "file not found",
			err:  &FileNotFoundError{Path: "/models/a.onnx"},
			want: `file "/models/a.onnx" does not exist`,
		},
		{
			name: "pointer should be null",
			err:  &PointerError{Name: "output", WantNull: true},
			want: `"output" should be a null pointer`,
		},
		{
			name: "pointer should not be null",
			err:  &PointerError{Name: "session"},
			want: `"session" should not be a null pointer`,
		},
		{
			name: "dynamic load",
			err:  &DynamicLoadError{Symbol: "OrtGetApiBase", Err: errors.New("not found")},
			want: `error trying to load symbol "OrtGetApiBase" from dynamic library: not found`,
		},
		{
			name: "utf8",
			err:  &UTF8Error{Offset: 7},
			want: "data was not UTF-8: invalid byte at offset 7",
		},
		{
			name: "download copy size",
			err:  newDownloadError(&FetchError{Kind: FetchCopySize, Expected: 2048, Written: 1000}),
			want: "failed to download model: error copying data to file: expected 2048 length, but got 1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDownloadErrorUnwrapsFetchError(t *testing.T) {
	cause := errors.New("connection reset")
	err := newDownloadError(&FetchError{Kind: FetchIO, URL: "http://x/m.onnx", Err: cause})

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As(*FetchError) = false, want true")
	}
	if fe.Kind != FetchIO {
		t.Errorf("Kind = %v, want %v", fe.Kind, FetchIO)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}
