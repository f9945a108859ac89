package jobxsql

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var sqlErrors = errx.NewRegistry("JOBX_SQL")

var (
	ErrSchema    = sqlErrors.Register("SCHEMA", errx.TypeInternal, http.StatusInternalServerError, "Failed to create job table")
	ErrPut       = sqlErrors.Register("PUT", errx.TypeExternal, http.StatusInternalServerError, "Failed to write job record")
	ErrGet       = sqlErrors.Register("GET", errx.TypeExternal, http.StatusInternalServerError, "Failed to read job record")
	ErrDelete    = sqlErrors.Register("DELETE", errx.TypeExternal, http.StatusInternalServerError, "Failed to delete job record")
	ErrPurge     = sqlErrors.Register("PURGE", errx.TypeExternal, http.StatusInternalServerError, "Failed to purge expired job records")
	ErrMarshal   = sqlErrors.Register("MARSHAL", errx.TypeInternal, http.StatusInternalServerError, "Failed to marshal job record")
	ErrUnmarshal = sqlErrors.Register("UNMARSHAL", errx.TypeInternal, http.StatusInternalServerError, "Failed to unmarshal job record")
)
