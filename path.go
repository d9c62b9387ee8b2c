package ort

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"
)

// NativePath prepares a model file path for the native loader.
// It returns the path as a NUL-terminated byte slice.
//
// Errors:
//   - *FileNotFoundError if nothing exists at path
//   - *PathError if path cannot be inspected for another reason
//   - *NonUTF8PathError if path is not valid UTF-8
//   - *NulByteError if path contains a NUL byte
func NativePath(path string) ([]byte, error) {
	if !utf8.ValidString(path) {
		return nil, &NonUTF8PathError{Path: path}
	}

	b, err := NativeString(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, &PathError{Op: "stat", Path: path, Err: err}
	}
	return b, nil
}
