package faq

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var faqErrors = errx.NewRegistry("FAQ")

var (
	ErrMissingURL      = faqErrors.Register("MISSING_URL", errx.TypeValidation, http.StatusBadRequest, "URL and platform are required")
	ErrInvalidURL      = faqErrors.Register("INVALID_URL", errx.TypeValidation, http.StatusBadRequest, "URL must be an absolute http or https address")
	ErrInvalidPlatform = faqErrors.Register("INVALID_PLATFORM", errx.TypeValidation, http.StatusBadRequest, "Invalid platform. Choose from fb, ig, x, df")
	ErrInvalidCount    = faqErrors.Register("INVALID_COUNT", errx.TypeValidation, http.StatusBadRequest, "FAQ count must be an integer between 1 and 50")
	ErrInvalidEmail    = faqErrors.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "notify_email is not a valid e-mail address")
)

// MissingURL is returned when url or platform is absent.
func MissingURL() error {
	return faqErrors.New(ErrMissingURL)
}
