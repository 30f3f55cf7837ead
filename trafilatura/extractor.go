// Package trafilatura implements waio.ContentExtractor with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/waio"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements waio.ContentExtractor at compile time.
var _ waio.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content as plain text.
// Extraction favors precision, keeps tables and drops comment sections.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			Focus:           trafilatura.FavorPrecision,
			ExcludeComments: true,
			ExcludeTables:   false,
		},
	}
}

// ExtractContent returns the main text content of the page.
// A page with no detectable content yields an empty string.
func (e *Extractor) ExtractContent(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", waio.Errorf(waio.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	return strings.TrimSpace(result.ContentText), nil
}
