package readability_test

import (
	"testing"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractContent("")

	require.Error(t, err)
	assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
}

func TestExtractor_ExtractsArticleText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Article Heading</h1>
<p>The article body holds the text a reader came for, long enough to be scored as content.</p>
<p>More sentences follow so the readability scorer prefers this container over the navigation.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	content, err := ext.ExtractContent(html)

	require.NoError(t, err)
	assert.Contains(t, content, "The article body holds the text")
}
