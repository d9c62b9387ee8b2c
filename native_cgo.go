//go:build ort_cgo

package ort

/*
#cgo LDFLAGS: -lonnxruntime
#include <stdlib.h>
#include <onnxruntime_c_api.h>

static const OrtApi* ort_api(void) {
	const OrtApiBase* base = OrtGetApiBase();
	if (base == NULL) {
		return NULL;
	}
	return base->GetApi(ORT_API_VERSION);
}

static const char* ort_get_error_message(const OrtApi* api, OrtStatus* status) {
	return api->GetErrorMessage(status);
}

static void ort_release_status(const OrtApi* api, OrtStatus* status) {
	api->ReleaseStatus(status);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// CAPI implements NativeAPI against the ONNX Runtime C API function table of
// the linked library.
type CAPI struct {
	api *C.OrtApi
}

// NewCAPI loads the C API function table.
// Returns a *DynamicLoadError if the linked library does not provide the
// API version this package was built against.
func NewCAPI() (*CAPI, error) {
	api := C.ort_api()
	if api == nil {
		return nil, &DynamicLoadError{
			Symbol: "OrtGetApiBase",
			Err:    fmt.Errorf("API version %d not supported by the linked library", int(C.ORT_API_VERSION)),
		}
	}
	return &CAPI{api: api}, nil
}

func (c *CAPI) GetErrorMessage(status Status) CString {
	return CString(unsafe.Pointer(C.ort_get_error_message(c.api, (*C.OrtStatus)(unsafe.Pointer(status)))))
}

func (c *CAPI) ReleaseStatus(status Status) {
	C.ort_release_status(c.api, (*C.OrtStatus)(unsafe.Pointer(status)))
}

var _ NativeAPI = (*CAPI)(nil)
