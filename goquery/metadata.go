// Package goquery implements waio.MetadataReader with goquery CSS selection.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/waio"
)

// Ensure MetadataReader implements waio.MetadataReader at compile time.
var _ waio.MetadataReader = (*MetadataReader)(nil)

// source reads one candidate value from a document.
type source func(doc *goquery.Document) string

// titleSources are tried in order until one yields a value.
var titleSources = []source{
	metaContent(`meta[property="og:title"]`),
	metaContent(`meta[name="twitter:title"]`),
	firstText("title"),
	firstText("h1"),
}

// descriptionSources are tried in order until one yields a value.
var descriptionSources = []source{
	metaContent(`meta[property="og:description"]`),
	metaContent(`meta[name="description"]`),
}

// MetadataReader reads page title and description from meta tags and
// headings.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata returns the first non-empty title and description found.
func (r *MetadataReader) ReadMetadata(html string) (*waio.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, waio.Errorf(waio.EINVALID, "failed to parse HTML: %v", err)
	}

	return &waio.Metadata{
		Title:       firstOf(doc, titleSources),
		Description: firstOf(doc, descriptionSources),
	}, nil
}

func firstOf(doc *goquery.Document, sources []source) string {
	for _, src := range sources {
		if v := src(doc); v != "" {
			return v
		}
	}
	return ""
}

// metaContent reads the content attribute of the first matching meta tag.
func metaContent(selector string) source {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}
}

// firstText reads the text of the first matching element.
func firstText(selector string) source {
	return func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}
}
