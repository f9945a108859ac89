package fsx

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var fsxErrors = errx.NewRegistry("FSX")

var (
	ErrNotFound = fsxErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	ErrRead     = fsxErrors.Register("READ", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	ErrWrite    = fsxErrors.Register("WRITE", errx.TypeInternal, http.StatusInternalServerError, "Failed to write file")
	ErrDelete   = fsxErrors.Register("DELETE", errx.TypeInternal, http.StatusInternalServerError, "Failed to delete file")
	ErrList     = fsxErrors.Register("LIST", errx.TypeInternal, http.StatusInternalServerError, "Failed to list files")
	ErrInit     = fsxErrors.Register("INIT", errx.TypeInternal, http.StatusInternalServerError, "Failed to initialize file system")
)

// NotFound builds the error every implementation returns for missing paths.
func NotFound(path string) *errx.Error {
	return fsxErrors.New(ErrNotFound).WithDetail("path", path)
}

// IsNotFound reports whether err means the path does not exist.
func IsNotFound(err error) bool {
	return errx.HasCode(err, ErrNotFound)
}

// Fail wraps a backend failure under code.
func Fail(code *errx.ErrorCode, err error, path string) *errx.Error {
	return fsxErrors.NewWithCause(code, err).WithDetail("path", path)
}
