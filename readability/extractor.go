// Package readability implements waio.ContentExtractor with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/waio"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements waio.ContentExtractor at compile time.
var _ waio.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content as plain text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the main text content of the page.
func (e *Extractor) ExtractContent(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", waio.Errorf(waio.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(article.TextContent), nil
}
