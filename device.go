package ort

import (
	"fmt"
	"slices"
)

// AllocationDevice names the device a tensor's memory lives on, using the
// runtime's device names.
type AllocationDevice string

const (
	DeviceCPU         AllocationDevice = "Cpu"
	DeviceCUDA        AllocationDevice = "Cuda"
	DeviceCUDAPinned  AllocationDevice = "CudaPinned"
	DeviceCANN        AllocationDevice = "Cann"
	DeviceCANNPinned  AllocationDevice = "CannPinned"
	DeviceDirectML    AllocationDevice = "DML"
	DeviceHIP         AllocationDevice = "Hip"
	DeviceHIPPinned   AllocationDevice = "HipPinned"
	DeviceOpenVINOCPU AllocationDevice = "OpenVINO_CPU"
	DeviceOpenVINOGPU AllocationDevice = "OpenVINO_GPU"
)

var knownDevices = []AllocationDevice{
	DeviceCPU,
	DeviceCUDA,
	DeviceCUDAPinned,
	DeviceCANN,
	DeviceCANNPinned,
	DeviceDirectML,
	DeviceHIP,
	DeviceHIPPinned,
	DeviceOpenVINOCPU,
	DeviceOpenVINOGPU,
}

// UnknownAllocationDeviceError reports a device name the runtime returned
// that this package does not know.
type UnknownAllocationDeviceError struct {
	sealedError

	Device string
}

func (e *UnknownAllocationDeviceError) Error() string {
	return fmt.Sprintf("unknown allocation device %q", e.Device)
}

// Category returns CategoryDevice.
func (e *UnknownAllocationDeviceError) Category() Category { return CategoryDevice }

func (e *UnknownAllocationDeviceError) Is(target error) bool { return target == ErrDevice }

// TensorNotOnCPUError reports an attempt to read tensor data that is not in
// CPU memory.
type TensorNotOnCPUError struct {
	sealedError

	Device AllocationDevice
}

func (e *TensorNotOnCPUError) Error() string {
	return fmt.Sprintf("expected tensor to be on CPU in order to get data, but had allocation device %q", string(e.Device))
}

// Category returns CategoryDevice.
func (e *TensorNotOnCPUError) Category() Category { return CategoryDevice }

func (e *TensorNotOnCPUError) Is(target error) bool { return target == ErrDevice }

// ProviderNotRegisteredError reports an execution provider that was
// requested but is not compiled into the runtime build.
type ProviderNotRegisteredError struct {
	sealedError

	Name string
}

func (e *ProviderNotRegisteredError) Error() string {
	return fmt.Sprintf("execution provider %q was not registered because it is not available in this build", e.Name)
}

// Category returns CategoryProvider.
func (e *ProviderNotRegisteredError) Category() Category { return CategoryProvider }

func (e *ProviderNotRegisteredError) Is(target error) bool { return target == ErrProvider }

// ParseAllocationDevice maps a runtime device name to an AllocationDevice.
func ParseAllocationDevice(name string) (AllocationDevice, error) {
	d := AllocationDevice(name)
	if !slices.Contains(knownDevices, d) {
		return "", &UnknownAllocationDeviceError{Device: name}
	}
	return d, nil
}

// RequireCPU returns a *TensorNotOnCPUError unless d is DeviceCPU.
func RequireCPU(d AllocationDevice) error {
	if d != DeviceCPU {
		return &TensorNotOnCPUError{Device: d}
	}
	return nil
}

// RequireProvider returns a *ProviderNotRegisteredError unless name is one
// of the available providers.
func RequireProvider(available []string, name string) error {
	if !slices.Contains(available, name) {
		return &ProviderNotRegisteredError{Name: name}
	}
	return nil
}

var (
	_ Error = (*UnknownAllocationDeviceError)(nil)
	_ Error = (*TensorNotOnCPUError)(nil)
	_ Error = (*ProviderNotRegisteredError)(nil)
)
