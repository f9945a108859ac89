package faqapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/faq/capture"
	"github.com/Abraxas-365/faqgen/pkg/faq/extract"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqapi"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqsrv"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqtest"
	"github.com/Abraxas-365/faqgen/pkg/faq/pipeline"
	"github.com/Abraxas-365/faqgen/pkg/faq/synth"
	"github.com/Abraxas-365/faqgen/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxmemory"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type server struct {
	app    *fiber.App
	runner *jobx.Runner
	store  jobx.Store
	admin  *faqapi.AdminAuth
}

type failingPinger struct {
	jobx.Store
}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newServer(t *testing.T, store jobx.Store) *server {
	if store == nil {
		store = jobxmemory.NewMemoryStore()
	}
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	sleeper := &faqtest.Sleeper{}
	p := pipeline.New(
		capture.NewStage(&faqtest.Renderer{}),
		extract.NewStage(&faqtest.Extractor{}, time.Second),
		synth.NewStage(&faqtest.Synthesizer{Reply: faqtest.Items(5)}, time.Second),
		pipeline.WithStageDelay(0),
		pipeline.WithSleep(sleeper.Sleep),
	)

	s := &server{
		runner: jobx.NewRunner(),
		store:  store,
		admin:  faqapi.NewAdminAuth(secret, "faqgen-test"),
	}
	orch := faqsrv.NewOrchestrator(store, s.runner, p, fs, nil)
	h := faqapi.NewHandlers(orch, faqsrv.NewQueryService(store))

	s.app = fiber.New(fiber.Config{ErrorHandler: faqapi.ErrorHandler(false)})
	s.app.Use(requestid.New())
	h.RegisterRoutes(s.app, s.admin)
	return s
}

func (s *server) do(t *testing.T, method, path, body string, headers ...string) (int, []byte, http.Header) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data, resp.Header
}

func decode(t *testing.T, data []byte) map[string]any {
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m), string(data))
	return m
}

func TestSubmitAndPoll(t *testing.T) {
	s := newServer(t, nil)

	code, body, _ := s.do(t, http.MethodPost, "/api/v1/jobs",
		`{"url":"https://x.com/sample","platform":"x","language":"en","faq_count":5}`)
	require.Equal(t, http.StatusAccepted, code, string(body))
	id, _ := decode(t, body)["job_id"].(string)
	require.NotEmpty(t, id)

	require.NoError(t, s.runner.Shutdown(context.Background()))

	code, body, _ = s.do(t, http.MethodGet, "/api/v1/jobs/"+id, "")
	require.Equal(t, http.StatusOK, code)
	job := decode(t, body)
	assert.Equal(t, id, job["job_id"])
	assert.Equal(t, "completed", job["status"])
	assert.EqualValues(t, 100, job["progress"])
	assert.Nil(t, job["error"])

	data := job["data"].(map[string]any)
	assert.EqualValues(t, 5, data["faq_count"])
	assert.Equal(t, "x", data["platform"])
	assert.Equal(t, 5, strings.Count(data["faq_content"].(string), "**Q"))
}

func TestSubmitValidation(t *testing.T) {
	s := newServer(t, nil)
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing url", `{"platform":"x"}`, "URL and platform are required"},
		{"bad platform", `{"url":"https://x.com/a","platform":"myspace"}`, "Invalid platform. Choose from fb, ig, x, df"},
		{"count too large", `{"url":"https://x.com/a","platform":"x","faq_count":100}`, "FAQ count must be an integer between 1 and 50"},
		{"count not integer", `{"url":"https://x.com/a","platform":"x","faq_count":"many"}`, "FAQ count must be an integer"},
		{"relative url", `{"url":"x.com/a","platform":"x"}`, "URL must be an absolute http or https address"},
		{"not json", `url=x`, "Request body must be a JSON object"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body, _ := s.do(t, http.MethodPost, "/api/v1/jobs", tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			m := decode(t, body)
			assert.Equal(t, tc.want, m["error"])
			assert.Nil(t, m["job_id"])
		})
	}
	require.NoError(t, s.runner.Shutdown(context.Background()))
	assert.Zero(t, s.store.(*jobxmemory.MemoryStore).Len())
}

func TestUnknownJob(t *testing.T) {
	s := newServer(t, nil)
	for _, path := range []string{"/api/v1/jobs/nope", "/status/nope", "/result/nope"} {
		code, body, _ := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Invalid job ID", decode(t, body)["error"], path)
	}
}

func TestLegacyRoutes(t *testing.T) {
	s := newServer(t, nil)

	code, body, _ := s.do(t, http.MethodPost, "/generate",
		`{"url":"https://www.facebook.com/club","platform":"fb","faq_count":"3"}`)
	require.Equal(t, http.StatusOK, code, string(body))
	m := decode(t, body)
	assert.Equal(t, "processing", m["status"])
	id := m["job_id"].(string)

	require.NoError(t, s.runner.Shutdown(context.Background()))

	code, body, _ = s.do(t, http.MethodGet, "/status/"+id, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", decode(t, body)["status"])

	code, body, hdr := s.do(t, http.MethodGet, "/result/"+id, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, hdr.Get("Content-Type"), "text/markdown")
	assert.True(t, strings.HasPrefix(string(body), "### Frequently Asked Questions"))
	assert.Equal(t, 3, strings.Count(string(body), "**Q"))
}

func TestResultOfRunningJobIsJSON(t *testing.T) {
	s := newServer(t, nil)
	job := jobx.NewJob("running-1", time.Now())
	require.NoError(t, job.Start(25, "Extracting structured data...", time.Now()))
	require.NoError(t, s.store.Put(context.Background(), job))

	code, body, _ := s.do(t, http.MethodGet, "/result/running-1", "")
	require.Equal(t, http.StatusOK, code)
	m := decode(t, body)
	assert.Equal(t, "running", m["status"])
	assert.Nil(t, m["data"])
}

func finishedJob(t *testing.T, id string) *jobx.Job {
	job := jobx.NewJob(id, time.Now())
	require.NoError(t, job.Start(5, "Starting FAQ generation...", time.Now()))
	require.NoError(t, job.Fail("capture failed (capture_failed): timeout", "FAQ generation failed.", time.Now()))
	return job
}

func TestDeleteRequiresToken(t *testing.T) {
	s := newServer(t, nil)
	require.NoError(t, s.store.Put(context.Background(), finishedJob(t, "j1")))

	code, _, _ := s.do(t, http.MethodDelete, "/api/v1/jobs/j1", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = s.do(t, http.MethodDelete, "/api/v1/jobs/j1", "", "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, code)

	other := faqapi.NewAdminAuth("another-secret", "faqgen-test")
	forged, err := other.IssueToken("mallory", time.Minute)
	require.NoError(t, err)
	code, _, _ = s.do(t, http.MethodDelete, "/api/v1/jobs/j1", "", "Authorization", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, code)

	token, err := s.admin.IssueToken("ops", time.Minute)
	require.NoError(t, err)
	code, _, _ = s.do(t, http.MethodDelete, "/api/v1/jobs/j1", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, code)

	code, _, _ = s.do(t, http.MethodGet, "/api/v1/jobs/j1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteRunningJobConflicts(t *testing.T) {
	s := newServer(t, nil)
	job := jobx.NewJob("busy", time.Now())
	require.NoError(t, job.Start(50, "Generating FAQ...", time.Now()))
	require.NoError(t, s.store.Put(context.Background(), job))

	token, err := s.admin.IssueToken("ops", time.Minute)
	require.NoError(t, err)
	code, body, _ := s.do(t, http.MethodDelete, "/api/v1/jobs/busy", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "JOBX_JOB_ACTIVE", decode(t, body)["code"])

	code, body, _ = s.do(t, http.MethodGet, "/api/v1/jobs/busy", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", decode(t, body)["status"])
}

func TestDeleteDisabledWithoutSecret(t *testing.T) {
	s := newServer(t, nil)
	require.NoError(t, s.store.Put(context.Background(), finishedJob(t, "j1")))

	app := fiber.New(fiber.Config{ErrorHandler: faqapi.ErrorHandler(false)})
	orch := faqsrv.NewOrchestrator(s.store, s.runner, nil, nil, nil)
	faqapi.NewHandlers(orch, faqsrv.NewQueryService(s.store)).RegisterRoutes(app, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/j1", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, err = s.store.Get(context.Background(), "j1")
	assert.NoError(t, err)
}

func TestAdminAuth(t *testing.T) {
	assert.Nil(t, faqapi.NewAdminAuth("", ""))

	a := faqapi.NewAdminAuth(secret, "")
	token, err := a.IssueToken("ops", time.Minute)
	require.NoError(t, err)
	sub, err := a.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)

	expired, err := a.IssueToken("ops", -time.Minute)
	require.NoError(t, err)
	_, err = a.Validate(expired)
	assert.Error(t, err)

	wrongIssuer, err := faqapi.NewAdminAuth(secret, "someone-else").IssueToken("ops", time.Minute)
	require.NoError(t, err)
	_, err = a.Validate(wrongIssuer)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newServer(t, nil)
	code, body, _ := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", decode(t, body)["status"])

	down := newServer(t, failingPinger{Store: jobxmemory.NewMemoryStore()})
	code, body, _ = down.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	m := decode(t, body)
	assert.Equal(t, "degraded", m["status"])
	assert.Equal(t, "connection refused", m["store_error"])
}

func TestErrorHandlerCarriesRequestID(t *testing.T) {
	s := newServer(t, nil)
	code, body, hdr := s.do(t, http.MethodGet, "/status/missing", "")
	require.Equal(t, http.StatusNotFound, code)
	m := decode(t, body)
	assert.Equal(t, hdr.Get(fiber.HeaderXRequestID), m["request_id"])
	assert.Equal(t, "JOBX_JOB_NOT_FOUND", m["code"])
}
