package capture_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/capture"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/fsx/fsxlocal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	fail     map[string]error
	missing  map[string]bool
	err      error
	requests [][]string
}

func (f *fakeRenderer) Render(_ context.Context, baseURL string, subPaths []string) (map[string]faq.PageOutcome, error) {
	f.requests = append(f.requests, subPaths)
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]faq.PageOutcome{}
	for _, sp := range subPaths {
		if f.missing[sp] {
			continue
		}
		o := faq.PageOutcome{SubPath: sp, URL: faq.PageURL(baseURL, sp)}
		if err := f.fail[sp]; err != nil {
			o.Err = err
		} else {
			o.HTML = "<html><body>" + sp + "</body></html>"
		}
		out[sp] = o
	}
	return out, nil
}

func newWorkspace(t *testing.T) (*fsx.Workspace, fsx.FileSystem) {
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)
	return fsx.NewWorkspace(fs, "jobs/test"), fs
}

func request(t *testing.T, platform string) faq.Request {
	req, err := faq.NewRequest("https://www.facebook.com/mancity", platform, "en", 10, "")
	require.NoError(t, err)
	return req
}

func TestStage_CapturesAllFacebookPages(t *testing.T) {
	r := &fakeRenderer{}
	ws, fs := newWorkspace(t)

	pages, err := capture.NewStage(r).Run(context.Background(), request(t, "fb"), ws)
	require.NoError(t, err)

	require.Len(t, pages, 4)
	assert.Equal(t, []string{"main", "about", "about_profile_transparency", "about_details"},
		[]string{pages[0].Name, pages[1].Name, pages[2].Name, pages[3].Name})
	assert.Equal(t, "https://www.facebook.com/mancity/about", pages[1].URL)

	data, err := fs.ReadFile(context.Background(), pages[1].Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/about")
}

func TestStage_SinglePagePlatforms(t *testing.T) {
	r := &fakeRenderer{}
	ws, _ := newWorkspace(t)

	pages, err := capture.NewStage(r).Run(context.Background(), request(t, "x"), ws)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "main", pages[0].Name)
	assert.Equal(t, [][]string{{""}}, r.requests)
}

func TestStage_PartialCaptureFails(t *testing.T) {
	timeout := context.DeadlineExceeded
	r := &fakeRenderer{fail: map[string]error{"/about_details": timeout}}
	ws, fs := newWorkspace(t)

	_, err := capture.NewStage(r).Run(context.Background(), request(t, "fb"), ws)
	require.Error(t, err)
	assert.Equal(t, faq.KindUpstreamUnavailable, faq.KindOf(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), "about_details")

	exists, err := fs.Exists(context.Background(), ws.Path("main.html"))
	require.NoError(t, err)
	assert.False(t, exists, "nothing is stored when capture is partial")
}

func TestStage_MissingOutcomeFails(t *testing.T) {
	r := &fakeRenderer{missing: map[string]bool{"/about": true}}
	ws, _ := newWorkspace(t)

	_, err := capture.NewStage(r).Run(context.Background(), request(t, "fb"), ws)
	assert.Equal(t, faq.KindUpstreamUnavailable, faq.KindOf(err))
}

func TestStage_RendererError(t *testing.T) {
	r := &fakeRenderer{err: errors.New("chrome not found")}
	ws, _ := newWorkspace(t)

	_, err := capture.NewStage(r).Run(context.Background(), request(t, "ig"), ws)
	assert.Equal(t, faq.KindUpstreamUnavailable, faq.KindOf(err))
}

func TestStage_InvalidInput(t *testing.T) {
	_, err := capture.NewStage(&fakeRenderer{}).Run(context.Background(), faq.Request{}, nil)
	assert.Equal(t, faq.KindInvalidInput, faq.KindOf(err))
}
