package captureinfra

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromeRenderer_ReportsEachSubPath(t *testing.T) {
	r := NewChromeRenderer(Options{Headless: true, PageTimeout: time.Second})

	var mu sync.Mutex
	var visited []string
	r.render = func(_ context.Context, _ context.Context, url string) (string, error) {
		mu.Lock()
		visited = append(visited, url)
		mu.Unlock()
		if url == "https://example.com/page/about" {
			return "", errors.New("net::ERR_NAME_NOT_RESOLVED")
		}
		return "<html>" + url + "</html>", nil
	}

	out, err := r.Render(context.Background(), "https://example.com/page/", []string{"", "/about"})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.True(t, out[""].OK())
	assert.Equal(t, "https://example.com/page", out[""].URL)
	assert.Equal(t, "<html>https://example.com/page</html>", out[""].HTML)
	assert.False(t, out["/about"].OK())
	assert.Equal(t, []string{"https://example.com/page", "https://example.com/page/about"}, visited)
}

func TestChromeRenderer_PageTimeout(t *testing.T) {
	r := NewChromeRenderer(Options{PageTimeout: 20 * time.Millisecond})
	r.render = func(ctx context.Context, _ context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}

	out, err := r.Render(context.Background(), "https://example.com", []string{""})
	require.NoError(t, err)
	assert.ErrorIs(t, out[""].Err, context.DeadlineExceeded)
}

func TestChromeRenderer_PacesPages(t *testing.T) {
	r := NewChromeRenderer(Options{PageTimeout: time.Second, PageDelay: 30 * time.Millisecond})
	r.render = func(context.Context, context.Context, string) (string, error) {
		return "<html></html>", nil
	}

	start := time.Now()
	_, err := r.Render(context.Background(), "https://example.com", []string{"", "/a", "/b"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}

func TestChromeRenderer_Defaults(t *testing.T) {
	r := NewChromeRenderer(Options{SettleWait: 20 * time.Second})
	assert.Equal(t, 60*time.Second, r.opts.NavTimeout)
	assert.Equal(t, 95*time.Second, r.opts.PageTimeout)
}
