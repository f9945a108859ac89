package extract_test

import (
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/faq/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize(t *testing.T) {
	doc := `<!DOCTYPE html>
<html>
  <head><title>  Man   City </title><style>.a{}</style></head>
  <body>
    <!-- tracking -->
    <div class="x1 y2" data-pagelet="bio" style="color:red">
      <h1>Manchester   City</h1>
      <a href="https://mancity.com" target="_blank">Website</a>
      <span aria-hidden="true">icon</span>
      <img src="data:image/png;base64,xx">
      <div class="empty"></div>
      <noscript>enable js</noscript>
    </div>
    <script>track()</script>
  </body>
</html>`

	title, body, err := extract.Minimize(doc)
	require.NoError(t, err)
	assert.Equal(t, "Man City", title)
	assert.Equal(t, `<div><h1>Manchester City</h1><a href="https://mancity.com">Website</a><img/></div>`, body)
}

func TestMinimize_NoBody(t *testing.T) {
	title, body, err := extract.Minimize("")
	require.NoError(t, err)
	assert.Empty(t, title)
	assert.Empty(t, body)
}
