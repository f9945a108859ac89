package aianthropic

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/anthropics/anthropic-sdk-go"
)

// statusOverloaded is returned by the API when capacity is exhausted.
const statusOverloaded = 529

var (
	errorRegistry = errx.NewRegistry("ANTHROPIC")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Anthropic API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing Anthropic API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeRateLimit,
		http.StatusTooManyRequests,
		"Anthropic API rate limit exceeded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"MODEL_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Requested model not found",
	)

	ErrInvalidRequest = errorRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid request parameters",
	)

	ErrEmptyMessages = errorRegistry.Register(
		"EMPTY_MESSAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Messages array cannot be empty",
	)

	ErrUnsupportedRole = errorRegistry.Register(
		"UNSUPPORTED_ROLE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Unsupported message role",
	)

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Anthropic API key not provided",
	)
)

// ParseAnthropicError maps an Anthropic SDK error to an errx.Error.
// Overloaded (529) counts as throttling.
func ParseAnthropicError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		var code *errx.ErrorCode
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = ErrAPIUnauthorized
		case http.StatusTooManyRequests, statusOverloaded:
			code = ErrAPIRateLimit
		case http.StatusNotFound:
			code = ErrModelNotFound
		case http.StatusBadRequest:
			code = ErrInvalidRequest
		default:
			code = ErrAPIRequest
		}
		return errorRegistry.NewWithCause(code, err).WithDetail("status_code", apiErr.StatusCode)
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid x-api-key") ||
		strings.Contains(errLower, "authentication"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "rate_limit") ||
		strings.Contains(errLower, "overloaded"):
		baseErr = ErrAPIRateLimit
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
