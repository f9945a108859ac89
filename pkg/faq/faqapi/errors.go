package faqapi

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var apiErrors = errx.NewRegistry("FAQAPI")

var (
	ErrInvalidBody   = apiErrors.Register("INVALID_BODY", errx.TypeValidation, http.StatusBadRequest, "Request body must be a JSON object")
	ErrUnauthorized  = apiErrors.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Missing bearer token")
	ErrInvalidToken  = apiErrors.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	ErrAdminDisabled = apiErrors.Register("ADMIN_DISABLED", errx.TypeAuthorization, http.StatusForbidden, "Admin routes are disabled")
	ErrTokenIssue    = apiErrors.Register("TOKEN_ISSUE", errx.TypeInternal, http.StatusInternalServerError, "Failed to sign token")
)
