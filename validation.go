package ort

import (
	"fmt"
	"unsafe"
)

// TensorElementType is the element type of a tensor, numbered as in the
// ONNX Runtime C API.
type TensorElementType int

const (
	TensorElementTypeUndefined TensorElementType = iota
	TensorElementTypeFloat32
	TensorElementTypeUint8
	TensorElementTypeInt8
	TensorElementTypeUint16
	TensorElementTypeInt16
	TensorElementTypeInt32
	TensorElementTypeInt64
	TensorElementTypeString
	TensorElementTypeBool
	TensorElementTypeFloat16
	TensorElementTypeFloat64
	TensorElementTypeUint32
	TensorElementTypeUint64
	TensorElementTypeComplex64
	TensorElementTypeComplex128
	TensorElementTypeBfloat16
)

var tensorElementTypeNames = [...]string{
	TensorElementTypeUndefined:  "undefined",
	TensorElementTypeFloat32:    "float32",
	TensorElementTypeUint8:      "uint8",
	TensorElementTypeInt8:       "int8",
	TensorElementTypeUint16:     "uint16",
	TensorElementTypeInt16:      "int16",
	TensorElementTypeInt32:      "int32",
	TensorElementTypeInt64:      "int64",
	TensorElementTypeString:     "string",
	TensorElementTypeBool:       "bool",
	TensorElementTypeFloat16:    "float16",
	TensorElementTypeFloat64:    "float64",
	TensorElementTypeUint32:     "uint32",
	TensorElementTypeUint64:     "uint64",
	TensorElementTypeComplex64:  "complex64",
	TensorElementTypeComplex128: "complex128",
	TensorElementTypeBfloat16:   "bfloat16",
}

func (t TensorElementType) String() string {
	if t < 0 || int(t) >= len(tensorElementTypeNames) {
		return fmt.Sprintf("TensorElementType(%d)", int(t))
	}
	return tensorElementTypeNames[t]
}

// ElementTypeMismatchError reports input data whose element type differs
// from the one the model declares.
type ElementTypeMismatchError struct {
	sealedError

	// Expected is the type declared by the model.
	Expected TensorElementType

	// Actual is the type of the provided input.
	Actual TensorElementType
}

func (e *ElementTypeMismatchError) Error() string {
	return fmt.Sprintf("data types do not match: expected %s, got %s", e.Expected, e.Actual)
}

// Category returns CategoryValidation.
func (e *ElementTypeMismatchError) Category() Category { return CategoryValidation }

func (e *ElementTypeMismatchError) Is(target error) bool { return target == ErrValidation }

// ExtractTypeMismatchError reports an attempt to read a tensor as a type
// other than its own.
type ExtractTypeMismatchError struct {
	sealedError

	// Actual is the element type of the tensor.
	Actual TensorElementType

	// Requested is the element type the caller asked for.
	Requested TensorElementType
}

func (e *ExtractTypeMismatchError) Error() string {
	return fmt.Sprintf("data type mismatch: was %s, tried to convert to %s", e.Actual, e.Requested)
}

// Category returns CategoryValidation.
func (e *ExtractTypeMismatchError) Category() Category { return CategoryValidation }

func (e *ExtractTypeMismatchError) Is(target error) bool { return target == ErrValidation }

// DimensionsMismatchKind distinguishes the two ways input shapes can disagree
// with the model.
type DimensionsMismatchKind int

const (
	// InputsCount means the number of inputs differs.
	InputsCount DimensionsMismatchKind = iota

	// InputsLength means an input's shape differs.
	InputsLength
)

// DimensionsMismatchError reports input shapes that do not match the model.
// Model dimensions of -1 are dynamic.
type DimensionsMismatchError struct {
	sealedError

	Kind DimensionsMismatchKind

	// ModelInputs holds the shape of every model input.
	ModelInputs [][]int64

	// InferenceInputs holds the shape of every provided input.
	InferenceInputs [][]int64
}

func (e *DimensionsMismatchError) Error() string {
	if e.Kind == InputsCount {
		return fmt.Sprintf("dimensions do not match: non-matching number of inputs: %d provided vs %d for model (inputs: %v, model: %v)",
			len(e.InferenceInputs), len(e.ModelInputs), e.InferenceInputs, e.ModelInputs)
	}
	return fmt.Sprintf("dimensions do not match: different input lengths; expected input: %v, received input: %v",
		e.ModelInputs, e.InferenceInputs)
}

// Category returns CategoryValidation.
func (e *DimensionsMismatchError) Category() Category { return CategoryValidation }

func (e *DimensionsMismatchError) Is(target error) bool { return target == ErrValidation }

// UndefinedElementTypeError reports a runtime value whose element type is
// undefined.
type UndefinedElementTypeError struct {
	sealedError
}

func (e *UndefinedElementTypeError) Error() string { return "undefined tensor element type" }

// Category returns CategoryValidation.
func (e *UndefinedElementTypeError) Category() Category { return CategoryValidation }

func (e *UndefinedElementTypeError) Is(target error) bool { return target == ErrValidation }

// StringTensorAllocatorError reports a string tensor created without the
// session's allocator.
type StringTensorAllocatorError struct {
	sealedError
}

func (e *StringTensorAllocatorError) Error() string {
	return "string tensors require the session's allocator"
}

// Category returns CategoryValidation.
func (e *StringTensorAllocatorError) Category() Category { return CategoryValidation }

func (e *StringTensorAllocatorError) Is(target error) bool { return target == ErrValidation }

// CheckStringTensorAllocator verifies that a tensor of type elem has the
// allocator it needs. String tensors must be created with the session's
// allocator; other element types ignore it.
func CheckStringTensorAllocator(elem TensorElementType, allocator unsafe.Pointer) error {
	if elem == TensorElementTypeString && allocator == nil {
		return &StringTensorAllocatorError{}
	}
	return nil
}

// CheckElementType verifies that an input of type actual can feed a model
// input of type expected.
func CheckElementType(expected, actual TensorElementType) error {
	if expected == TensorElementTypeUndefined || actual == TensorElementTypeUndefined {
		return &UndefinedElementTypeError{}
	}
	if expected != actual {
		return &ElementTypeMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// CheckExtractType verifies that a tensor of type actual can be read as
// requested.
func CheckExtractType(actual, requested TensorElementType) error {
	if actual == TensorElementTypeUndefined {
		return &UndefinedElementTypeError{}
	}
	if actual != requested {
		return &ExtractTypeMismatchError{Actual: actual, Requested: requested}
	}
	return nil
}

// ValidateInputShapes checks provided input shapes against the model's.
// The input count is checked first, then each input's rank and dimensions.
// The returned error holds copies of both shape lists.
func ValidateInputShapes(model, inputs [][]int64) error {
	if len(model) != len(inputs) {
		return &DimensionsMismatchError{
			Kind:            InputsCount,
			ModelInputs:     cloneShapes(model),
			InferenceInputs: cloneShapes(inputs),
		}
	}

	for i := range model {
		if !shapeMatches(model[i], inputs[i]) {
			return &DimensionsMismatchError{
				Kind:            InputsLength,
				ModelInputs:     cloneShapes(model),
				InferenceInputs: cloneShapes(inputs),
			}
		}
	}
	return nil
}

func shapeMatches(model, input []int64) bool {
	if len(model) != len(input) {
		return false
	}
	for i, dim := range model {
		if dim >= 0 && dim != input[i] {
			return false
		}
	}
	return true
}

func cloneShapes(shapes [][]int64) [][]int64 {
	out := make([][]int64, len(shapes))
	for i, s := range shapes {
		out[i] = append([]int64(nil), s...)
	}
	return out
}

var (
	_ Error = (*ElementTypeMismatchError)(nil)
	_ Error = (*ExtractTypeMismatchError)(nil)
	_ Error = (*DimensionsMismatchError)(nil)
	_ Error = (*UndefinedElementTypeError)(nil)
	_ Error = (*StringTensorAllocatorError)(nil)
)
