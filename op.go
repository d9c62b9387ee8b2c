package ort

import "fmt"

// Op identifies a native call site.
// A CallError carries the Op of the call that failed.
type Op int

const (
	OpCreateEnvironment Op = iota
	OpCreateSessionOptions
	OpCreateSession
	OpCreateIoBinding
	OpGetInOutCount
	OpGetInputName
	OpGetTypeInfo
	OpGetOnnxTypeFromTypeInfo
	OpCastTypeInfoToTensorInfo
	OpCastTypeInfoToSequenceTypeInfo
	OpCastTypeInfoToMapTypeInfo
	OpGetMapKeyType
	OpGetMapValueType
	OpGetSequenceElementType
	OpGetTensorElementType
	OpGetDimensionsCount
	OpGetDimensions
	OpGetStringTensorDataLength
	OpGetTensorShapeElementCount
	OpCreateTensor
	OpCreateTensorWithData
	OpFillStringTensor
	OpFailedTensorCheck
	OpGetTensorTypeAndShape
	OpSessionRun
	OpSessionRunWithIoBinding
	OpGetTensorMutableData
	OpGetStringTensorContent
	OpGetModelMetadata
	OpCreateMemoryInfo
	OpGetAllocationDevice
	OpGetAvailableProviders
	OpBindInput
	OpBindOutput
	OpClearBinding
	OpGetBoundOutputs

	// OpExecutionProvider covers provider registration calls. Its failures
	// render the runtime message alone.
	OpExecutionProvider

	opCount
)

var opInfo = [opCount]struct {
	name    string
	failure string
}{
	OpCreateEnvironment:              {"CreateEnvironment", "failed to create ONNX Runtime environment"},
	OpCreateSessionOptions:           {"CreateSessionOptions", "failed to create ONNX Runtime session options"},
	OpCreateSession:                  {"CreateSession", "failed to create ONNX Runtime session"},
	OpCreateIoBinding:                {"CreateIoBinding", "failed to create IO binding"},
	OpGetInOutCount:                  {"GetInOutCount", "failed to get input or output count"},
	OpGetInputName:                   {"GetInputName", "failed to get input name"},
	OpGetTypeInfo:                    {"GetTypeInfo", "failed to get type info"},
	OpGetOnnxTypeFromTypeInfo:        {"GetOnnxTypeFromTypeInfo", "failed to get onnx type from type info"},
	OpCastTypeInfoToTensorInfo:       {"CastTypeInfoToTensorInfo", "failed to cast type info to tensor info"},
	OpCastTypeInfoToSequenceTypeInfo: {"CastTypeInfoToSequenceTypeInfo", "failed to cast type info to sequence type info"},
	OpCastTypeInfoToMapTypeInfo:      {"CastTypeInfoToMapTypeInfo", "failed to cast type info to map type info"},
	OpGetMapKeyType:                  {"GetMapKeyType", "failed to get map key type"},
	OpGetMapValueType:                {"GetMapValueType", "failed to get map value type"},
	OpGetSequenceElementType:         {"GetSequenceElementType", "failed to get sequence element type"},
	OpGetTensorElementType:           {"GetTensorElementType", "failed to get tensor element type"},
	OpGetDimensionsCount:             {"GetDimensionsCount", "failed to get dimensions count"},
	OpGetDimensions:                  {"GetDimensions", "failed to get dimensions"},
	OpGetStringTensorDataLength:      {"GetStringTensorDataLength", "failed to get string tensor length"},
	OpGetTensorShapeElementCount:     {"GetTensorShapeElementCount", "failed to get tensor element count"},
	OpCreateTensor:                   {"CreateTensor", "failed to create tensor"},
	OpCreateTensorWithData:           {"CreateTensorWithData", "failed to create tensor with data"},
	OpFillStringTensor:               {"FillStringTensor", "failed to fill string tensor"},
	OpFailedTensorCheck:              {"FailedTensorCheck", "failed to check if tensor is a tensor or was properly initialized"},
	OpGetTensorTypeAndShape:          {"GetTensorTypeAndShape", "failed to get tensor type and shape"},
	OpSessionRun:                     {"SessionRun", "failed to run inference on model"},
	OpSessionRunWithIoBinding:        {"SessionRunWithIoBinding", "failed to run inference on model with IoBinding"},
	OpGetTensorMutableData:           {"GetTensorMutableData", "failed to get tensor data"},
	OpGetStringTensorContent:         {"GetStringTensorContent", "failed to get tensor string data"},
	OpGetModelMetadata:               {"GetModelMetadata", "failed to retrieve model metadata"},
	OpCreateMemoryInfo:               {"CreateMemoryInfo", "failed to create memory info"},
	OpGetAllocationDevice:            {"GetAllocationDevice", "could not get allocation device from memory info"},
	OpGetAvailableProviders:          {"GetAvailableProviders", "failed to get available execution providers"},
	OpBindInput:                      {"BindInput", "error when binding input"},
	OpBindOutput:                     {"BindOutput", "error when binding output"},
	OpClearBinding:                   {"ClearBinding", "failed to clear IO binding"},
	OpGetBoundOutputs:                {"GetBoundOutputs", "error when retrieving session outputs from IoBinding"},
	OpExecutionProvider:              {"ExecutionProvider", "execution provider error"},
}

func (o Op) valid() bool {
	return o >= 0 && o < opCount
}

// String returns the native call name, e.g. "CreateSession".
func (o Op) String() string {
	if !o.valid() {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opInfo[o].name
}

// failureText returns the diagnostic prefix used when the call fails.
func (o Op) failureText() string {
	if !o.valid() {
		return fmt.Sprintf("native call %d failed", int(o))
	}
	return opInfo[o].failure
}
