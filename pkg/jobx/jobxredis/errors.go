package jobxredis

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var redisErrors = errx.NewRegistry("JOBX_REDIS")

var (
	ErrPut       = redisErrors.Register("PUT", errx.TypeExternal, http.StatusInternalServerError, "Redis write failed")
	ErrGet       = redisErrors.Register("GET", errx.TypeExternal, http.StatusInternalServerError, "Redis read failed")
	ErrDelete    = redisErrors.Register("DELETE", errx.TypeExternal, http.StatusInternalServerError, "Redis delete failed")
	ErrMarshal   = redisErrors.Register("MARSHAL", errx.TypeInternal, http.StatusInternalServerError, "Failed to marshal job record")
	ErrUnmarshal = redisErrors.Register("UNMARSHAL", errx.TypeInternal, http.StatusInternalServerError, "Failed to unmarshal job record")
)
