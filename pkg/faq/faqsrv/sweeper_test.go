package faqsrv_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/faq/faqsrv"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxmemory"
	"github.com/Abraxas-365/faqgen/pkg/notifx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSweeper_PurgesExpired(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := jobxmemory.NewMemoryStore(jobx.WithClock(c.Now))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, jobx.NewJob("old", c.Now())))
	c.Add(20 * time.Hour)
	require.NoError(t, store.Put(ctx, jobx.NewJob("fresh", c.Now())))
	c.Add(5 * time.Hour)

	sw := faqsrv.NewSweeper(store, "")
	require.NotNil(t, sw)

	n, err := sw.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())
}

func TestSweeper_NilForNativeExpiry(t *testing.T) {
	var store struct{ jobx.Store }
	store.Store = jobxmemory.NewMemoryStore()
	assert.Nil(t, faqsrv.NewSweeper(store, "@every 1m"))
}

func TestSweeper_RejectsBadSchedule(t *testing.T) {
	sw := faqsrv.NewSweeper(jobxmemory.NewMemoryStore(), "every now and then")
	require.NotNil(t, sw)
	assert.Error(t, sw.Start(context.Background()))
}

func TestSweeper_StartStop(t *testing.T) {
	sw := faqsrv.NewSweeper(jobxmemory.NewMemoryStore(), "@every 1h")
	require.NoError(t, sw.Start(context.Background()))
	sw.Stop()
}

type capturedEmail struct {
	msg  notifx.EmailMessage
	opts notifx.SendOptions
}

type fakeSender struct {
	sent []capturedEmail
}

func (f *fakeSender) SendEmail(_ context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	f.sent = append(f.sent, capturedEmail{msg: msg, opts: notifx.ApplySendOptions(opts)})
	return nil
}

func TestEmailNotifier_Completed(t *testing.T) {
	sender := &fakeSender{}
	n, err := faqsrv.NewEmailNotifier(notifx.NewClient(sender, "faq@example.com"), "https://faq.example.com/")
	require.NoError(t, err)

	job := jobx.NewJob("job-7", time.Now())
	require.NoError(t, job.Start(5, "go", time.Now()))
	require.NoError(t, job.Complete(map[string]any{
		"faq_content": "### Frequently Asked Questions\n\n**Q1. <b>Hi</b>?**\n\nHello.",
		"url":         "https://x.com/sample",
	}, faqsrv.MessageCompleted, time.Now()))

	require.NoError(t, n.NotifyJob(context.Background(), "owner@example.com", job))
	require.Len(t, sender.sent, 1)

	got := sender.sent[0]
	assert.Equal(t, "faq@example.com", got.msg.From)
	assert.Equal(t, []string{"owner@example.com"}, got.msg.To)
	assert.Equal(t, "Your FAQ is ready", got.msg.Subject)
	assert.Contains(t, got.msg.HTMLBody, "https://faq.example.com/result/job-7")
	assert.Contains(t, got.msg.HTMLBody, "COMPLETED")
	assert.Contains(t, got.msg.HTMLBody, "&lt;b&gt;Hi&lt;/b&gt;")
	assert.Equal(t, "job-7", got.opts.Tags["job_id"])
	assert.Equal(t, "completed", got.opts.Tags["status"])
}

func TestEmailNotifier_Failed(t *testing.T) {
	sender := &fakeSender{}
	n, err := faqsrv.NewEmailNotifier(notifx.NewClient(sender, "faq@example.com"), "")
	require.NoError(t, err)

	job := jobx.NewJob("job-8", time.Now())
	require.NoError(t, job.Fail("capture failed (upstream_unavailable): timeout", faqsrv.MessageFailed, time.Now()))

	require.NoError(t, n.NotifyJob(context.Background(), "owner@example.com", job))
	got := sender.sent[0]
	assert.Equal(t, "FAQ generation failed", got.msg.Subject)
	assert.Contains(t, got.msg.HTMLBody, "capture failed (upstream_unavailable): timeout")
	assert.NotContains(t, got.msg.HTMLBody, "/result/")
}
