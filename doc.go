// Package ort is the error and resource-safety boundary between Go code and
// the ONNX Runtime native library.
//
// The package serves three use cases:
//
//  1. Native status translation via Runtime - every native call returns an
//     opaque Status handle. Runtime.Call translates it into nil or a
//     *CallError and releases the handle exactly once, on every path,
//     including panics while the message is decoded.
//
//  2. A closed error taxonomy - every failure this package reports
//     implements Error and matches one category sentinel (ErrNativeCall,
//     ErrEncoding, ErrValidation, ...) with errors.Is. Concrete variants
//     carry their context and are read with errors.As.
//
//  3. Model fetching via Fetcher and NewCommand - Fetch downloads a model
//     artifact and checks the bytes written against the declared
//     Content-Length. Parent CLI tools can attach the "models" subcommand
//     tree to their Cobra root command.
//
// # Thread Safety
//
// Runtime and Fetcher are safe for concurrent use. A single Status handle
// must be translated by one goroutine only.
//
// # Native Binding
//
// The ONNX Runtime C API binding is compiled with the ort_cgo build tag.
// Without it, callers supply their own NativeAPI.
//
// # Storage
//
// Materialized models are stored in platform-appropriate directories:
//   - Linux: $XDG_DATA_HOME/<app>/models/ or ~/.local/share/<app>/models/
//   - macOS: ~/Library/Application Support/<app>/models/
//   - Windows: %APPDATA%\<app>\models\
//
// The location can be overridden via Config.CacheDir or the
// <APPNAME>_MODELS_DIR environment variable.
package ort
