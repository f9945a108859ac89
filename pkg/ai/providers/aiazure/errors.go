package aiazure

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/openai/openai-go/v3"
)

var (
	errorRegistry = errx.NewRegistry("AZURE_OPENAI")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Azure OpenAI",
	)

	ErrAPIResponse = errorRegistry.Register(
		"API_RESPONSE_INVALID",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Invalid response from Azure OpenAI",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid Azure OpenAI credentials",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeRateLimit,
		http.StatusTooManyRequests,
		"Azure OpenAI rate limit exceeded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"DEPLOYMENT_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Deployment not found",
	)

	ErrEmptyMessages = errorRegistry.Register(
		"EMPTY_MESSAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Messages array cannot be empty",
	)

	ErrMissingEndpoint = errorRegistry.Register(
		"MISSING_ENDPOINT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Azure OpenAI endpoint not provided",
	)
)

// ParseAzureError maps an Azure OpenAI SDK error to an errx.Error
func ParseAzureError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		var code *errx.ErrorCode
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = ErrAPIUnauthorized
		case http.StatusTooManyRequests:
			code = ErrAPIRateLimit
		case http.StatusNotFound:
			code = ErrModelNotFound
		default:
			code = ErrAPIRequest
		}
		return errorRegistry.NewWithCause(code, err).WithDetail("status_code", apiErr.StatusCode)
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid api key") ||
		strings.Contains(errLower, "access denied"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "deployment") && strings.Contains(errLower, "not found"):
		baseErr = ErrModelNotFound
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}

// WrapError wraps a standard error with an Azure OpenAI error code
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
