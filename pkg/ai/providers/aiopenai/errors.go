package aiopenai

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/openai/openai-go/v3"
)

var (
	// Error registry for OpenAI provider
	errorRegistry = errx.NewRegistry("OPENAI")

	// API Errors
	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to OpenAI API",
	)

	ErrAPIResponse = errorRegistry.Register(
		"API_RESPONSE_INVALID",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Invalid response from OpenAI API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing OpenAI API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeRateLimit,
		http.StatusTooManyRequests,
		"OpenAI API rate limit exceeded",
	)

	ErrAPIQuotaExceeded = errorRegistry.Register(
		"API_QUOTA_EXCEEDED",
		errx.TypeExternal,
		http.StatusForbidden,
		"OpenAI API quota exceeded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"MODEL_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Requested model not found or not accessible",
	)

	ErrContextLengthExceeded = errorRegistry.Register(
		"CONTEXT_LENGTH_EXCEEDED",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Context length exceeds model maximum",
	)

	ErrInvalidRequest = errorRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid request parameters",
	)

	// Input Validation Errors
	ErrEmptyMessages = errorRegistry.Register(
		"EMPTY_MESSAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Messages array cannot be empty",
	)

	ErrInvalidMessage = errorRegistry.Register(
		"INVALID_MESSAGE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid message format",
	)

	ErrUnsupportedRole = errorRegistry.Register(
		"UNSUPPORTED_ROLE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Unsupported message role",
	)

	// Response Errors
	ErrNoChoicesInResponse = errorRegistry.Register(
		"NO_CHOICES_IN_RESPONSE",
		errx.TypeExternal,
		http.StatusInternalServerError,
		"No choices returned in API response",
	)

	// Configuration Errors
	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"OpenAI API key not provided",
	)
)

// ParseOpenAIError maps an SDK error to an errx.Error. HTTP status wins
// when the SDK exposes one; otherwise the message is inspected.
func ParseOpenAIError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return errorRegistry.NewWithCause(codeForStatus(apiErr.StatusCode, err.Error()), err).
			WithDetail("status_code", apiErr.StatusCode)
	}

	return errorRegistry.NewWithCause(codeForMessage(err.Error()), err)
}

func codeForStatus(status int, msg string) *errx.ErrorCode {
	lower := strings.ToLower(msg)
	switch status {
	case http.StatusUnauthorized:
		return ErrAPIUnauthorized
	case http.StatusForbidden:
		if strings.Contains(lower, "quota") {
			return ErrAPIQuotaExceeded
		}
		return ErrAPIUnauthorized
	case http.StatusTooManyRequests:
		return ErrAPIRateLimit
	case http.StatusNotFound:
		if strings.Contains(lower, "model") {
			return ErrModelNotFound
		}
		return ErrAPIRequest
	case http.StatusBadRequest:
		if strings.Contains(lower, "context") {
			return ErrContextLengthExceeded
		}
		return ErrInvalidRequest
	}
	if status >= 500 {
		return ErrAPIResponse
	}
	return ErrAPIRequest
}

func codeForMessage(msg string) *errx.ErrorCode {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") ||
		strings.Contains(lower, "incorrect api key"):
		return ErrAPIUnauthorized
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "rate_limit"):
		return ErrAPIRateLimit
	case strings.Contains(lower, "quota") || strings.Contains(lower, "insufficient_quota"):
		return ErrAPIQuotaExceeded
	case strings.Contains(lower, "model") && strings.Contains(lower, "not found"):
		return ErrModelNotFound
	case strings.Contains(lower, "context length") || strings.Contains(lower, "maximum context"):
		return ErrContextLengthExceeded
	default:
		return ErrAPIRequest
	}
}

// WrapError wraps a standard error with appropriate OpenAI error code
func WrapError(err error, code *errx.ErrorCode) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	return errorRegistry.NewWithCause(code, err)
}
