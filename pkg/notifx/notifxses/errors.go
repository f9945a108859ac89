package notifxses

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var sesErrors = errx.NewRegistry("NOTIFX_SES")

var (
	ErrSendFailed = sesErrors.Register("SEND_FAILED", errx.TypeExternal, http.StatusBadGateway, "SES send email failed")
	ErrThrottled  = sesErrors.Register("THROTTLED", errx.TypeRateLimit, http.StatusTooManyRequests, "SES sending rate exceeded")
)
