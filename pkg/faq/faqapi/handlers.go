package faqapi

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqsrv"
	"github.com/Abraxas-365/faqgen/pkg/kernel"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// SubmitRequest is the body of POST /api/v1/jobs and POST /generate.
// faq_count is kept raw so "5" and 5 are both accepted.
type SubmitRequest struct {
	URL         string          `json:"url"`
	Platform    string          `json:"platform"`
	Language    string          `json:"language"`
	FAQCount    json.RawMessage `json:"faq_count"`
	NotifyEmail string          `json:"notify_email"`
}

// ToRequest validates the body.
func (r SubmitRequest) ToRequest() (faq.Request, error) {
	if r.URL == "" || r.Platform == "" {
		return faq.Request{}, faq.MissingURL()
	}
	count, err := faq.ParseCount(r.FAQCount)
	if err != nil {
		return faq.Request{}, err
	}
	return faq.NewRequest(r.URL, r.Platform, r.Language, count, r.NotifyEmail)
}

type SubmitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status,omitempty"`
}

type Handlers struct {
	orchestrator *faqsrv.Orchestrator
	query        *faqsrv.QueryService
}

func NewHandlers(orchestrator *faqsrv.Orchestrator, query *faqsrv.QueryService) *Handlers {
	return &Handlers{orchestrator: orchestrator, query: query}
}

// RegisterRoutes mounts the versioned API, the legacy routes and the
// health check. admin guards destructive routes.
func (h *Handlers) RegisterRoutes(app fiber.Router, admin *AdminAuth) {
	v1 := app.Group("/api/v1/jobs")
	v1.Post("/", h.Submit)
	v1.Get("/:id", h.Status)
	v1.Delete("/:id", admin.Middleware(), h.Delete)

	app.Post("/generate", h.Generate)
	app.Get("/status/:id", h.Status)
	app.Get("/result/:id", h.Result)

	app.Get("/health", h.Health)
}

func (h *Handlers) submit(c *fiber.Ctx) (string, error) {
	var body SubmitRequest
	if err := c.BodyParser(&body); err != nil {
		return "", apiErrors.NewWithCause(ErrInvalidBody, err)
	}
	req, err := body.ToRequest()
	if err != nil {
		return "", err
	}
	return h.orchestrator.Submit(requestContext(c), req)
}

// Submit handles POST /api/v1/jobs.
func (h *Handlers) Submit(c *fiber.Ctx) error {
	id, err := h.submit(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(SubmitResponse{JobID: id})
}

// Generate handles the legacy POST /generate.
func (h *Handlers) Generate(c *fiber.Ctx) error {
	id, err := h.submit(c)
	if err != nil {
		return err
	}
	return c.JSON(SubmitResponse{JobID: id, Status: "processing"})
}

// Status returns the stored job as is.
func (h *Handlers) Status(c *fiber.Ctx) error {
	job, err := h.query.GetStatus(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(job)
}

// Result returns the Markdown document of a completed job and the job
// state otherwise.
func (h *Handlers) Result(c *fiber.Ctx) error {
	job, result, ok, err := h.query.GetResult(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(job)
	}
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.SendString(result.FAQContent)
}

func (h *Handlers) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.orchestrator.Delete(requestContext(c), id); err != nil {
		return err
	}
	logx.WithContext(requestContext(c)).
		WithField("subject", c.Locals(string(kernel.SubjectKey))).
		Infof("job %s deleted", id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	health := fiber.Map{"status": "healthy", "store": "healthy"}
	if err := h.query.Ping(requestContext(c)); err != nil {
		health["status"] = "degraded"
		health["store"] = "unhealthy"
		health["store_error"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(health)
	}
	return c.JSON(health)
}

// requestContext carries the request id into services and logs.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		ctx = kernel.WithRequestID(ctx, id)
	}
	return ctx
}

// ErrorHandler renders every error returned by a handler with
// errx.ToResponse.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)

		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(errx.Response{
				Error:     e.Message,
				Code:      "FIBER_ERROR",
				Type:      errx.TypeInternal.String(),
				Status:    e.Code,
				RequestID: requestID,
			})
		}

		resp := errx.ToResponse(err, requestID, debug)
		entry := logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": requestID,
			"status":     resp.Status,
		})
		if resp.Status >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("request failed")
		} else {
			entry.Debugf("request rejected: %v", err)
		}
		return c.Status(resp.Status).JSON(resp)
	}
}
