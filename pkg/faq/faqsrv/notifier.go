package faqsrv

import (
	"context"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/notifx"
	"github.com/Abraxas-365/faqgen/pkg/ptrx"
)

const outcomeTemplate = "faq_job_outcome"

const outcomeHTML = `<html><body>
<h2>{{if eq .Status "completed"}}Your FAQ is ready{{else}}FAQ generation failed{{end}}</h2>
<p>Job <code>{{.JobID}}</code> finished with status <strong>{{upper .Status}}</strong>.</p>
{{if .URL}}<p>Source: {{.URL}}</p>{{end}}
{{if .ResultURL}}<p>Result: <a href="{{.ResultURL}}">{{.ResultURL}}</a></p>{{end}}
{{if .Error}}<p>Reason: {{.Error}}</p>{{end}}
{{if .Preview}}<pre>{{truncate 2000 .Preview}}</pre>{{end}}
</body></html>`

// EmailNotifier sends a job outcome e-mail through notifx.
type EmailNotifier struct {
	client  *notifx.Client
	baseURL string
}

var _ faq.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier registers the outcome template on client. baseURL,
// when set, is used to link to GET /result/:id.
func NewEmailNotifier(client *notifx.Client, baseURL string) (*EmailNotifier, error) {
	if err := client.RegisterTemplate(outcomeTemplate, outcomeHTML); err != nil {
		return nil, err
	}
	return &EmailNotifier{client: client, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

type outcomeData struct {
	JobID     string
	Status    string
	URL       string
	ResultURL string
	Error     string
	Preview   string
}

func (n *EmailNotifier) NotifyJob(ctx context.Context, to string, job *jobx.Job) error {
	data := outcomeData{JobID: job.ID, Status: job.Status.String()}
	subject := "FAQ generation failed"

	switch job.Status {
	case jobx.StatusCompleted:
		subject = "Your FAQ is ready"
		var r faq.Result
		if err := job.DecodeData(&r); err == nil {
			data.URL = r.URL
			data.Preview = r.FAQContent
		}
		if n.baseURL != "" {
			data.ResultURL = n.baseURL + "/result/" + job.ID
		}
	case jobx.StatusFailed:
		data.Error = ptrx.Value(job.Error)
	}

	return n.client.SendTemplatedEmail(ctx, outcomeTemplate, data, notifx.EmailMessage{
		To:       []string{to},
		Subject:  subject,
		TextBody: subject + ": " + job.Message,
	}, notifx.WithTag("job_id", job.ID), notifx.WithTag("status", job.Status.String()))
}
