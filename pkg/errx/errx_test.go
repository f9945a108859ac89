package errx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testErrors = errx.NewRegistry("TEST")

var (
	errThrottled = testErrors.Register("THROTTLED", errx.TypeRateLimit, 0, "Too many requests")
	errMissing   = testErrors.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Missing")
)

func TestRegistry_DefaultsStatusFromType(t *testing.T) {
	err := testErrors.New(errThrottled)

	assert.Equal(t, "TEST_THROTTLED", err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus)
	assert.Equal(t, errx.TypeRateLimit, err.Type)
}

func TestStatusOf_WalksWrappedChain(t *testing.T) {
	inner := testErrors.New(errThrottled)
	outer := fmt.Errorf("calling upstream: %w", inner)

	assert.Equal(t, http.StatusTooManyRequests, errx.StatusOf(outer))
	assert.Equal(t, errx.TypeRateLimit, errx.TypeOf(outer))
	assert.Equal(t, http.StatusInternalServerError, errx.StatusOf(errors.New("plain")))
	assert.Equal(t, errx.TypeInternal, errx.TypeOf(errors.New("plain")))
}

func TestWrap_PreservesCodeAndStatus(t *testing.T) {
	base := testErrors.New(errMissing).WithDetail("job_id", "abc")
	wrapped := errx.Wrap(base, "lookup failed", errx.TypeInternal)

	require.NotNil(t, wrapped)
	assert.Equal(t, "TEST_MISSING", wrapped.Code)
	assert.Equal(t, http.StatusNotFound, wrapped.HTTPStatus)
	assert.Equal(t, "abc", wrapped.Details["job_id"])
	assert.True(t, errx.HasCode(wrapped, errMissing))
	assert.False(t, errx.HasCode(wrapped, errThrottled))
	assert.Nil(t, errx.Wrap(nil, "nothing", errx.TypeInternal))
}

func TestToResponse(t *testing.T) {
	cause := errors.New("connection refused")
	err := testErrors.NewWithCause(errMissing, cause)

	resp := errx.ToResponse(err, "req-1", false)
	assert.Equal(t, "Missing", resp.Error)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Empty(t, resp.Cause)

	debug := errx.ToResponse(err, "req-1", true)
	assert.Equal(t, "connection refused", debug.Cause)

	plain := errx.ToResponse(errors.New("boom"), "", false)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, "INTERNAL", plain.Type)
}
