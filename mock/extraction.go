package mock

import (
	"time"

	"github.com/fwojciec/waio"
)

var _ waio.MarkerScanner = (*MarkerScanner)(nil)

// MarkerScanner is a mock implementation of waio.MarkerScanner.
type MarkerScanner struct {
	DetectFn func(html string) (bool, error)
	ScanFn   func(html string) ([]waio.AnnotatedElement, error)
}

func (s *MarkerScanner) Detect(html string) (bool, error) {
	return s.DetectFn(html)
}

func (s *MarkerScanner) Scan(html string) ([]waio.AnnotatedElement, error) {
	return s.ScanFn(html)
}

var _ waio.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of waio.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (string, error)
}

func (e *ContentExtractor) ExtractContent(html string) (string, error) {
	return e.ExtractContentFn(html)
}

var _ waio.MetadataReader = (*MetadataReader)(nil)

// MetadataReader is a mock implementation of waio.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(html string) (*waio.Metadata, error)
}

func (r *MetadataReader) ReadMetadata(html string) (*waio.Metadata, error) {
	return r.ReadMetadataFn(html)
}

var _ waio.HeuristicExtractor = (*HeuristicExtractor)(nil)

// HeuristicExtractor is a mock implementation of waio.HeuristicExtractor.
type HeuristicExtractor struct {
	ExtractFn func(html string) (*waio.ExtractionResult, time.Duration, error)
}

func (e *HeuristicExtractor) Extract(html string) (*waio.ExtractionResult, time.Duration, error) {
	return e.ExtractFn(html)
}

var _ waio.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor is a mock implementation of waio.StructuredExtractor.
type StructuredExtractor struct {
	ExtractFn func(html string, params waio.StructuredParams) (*waio.ExtractionResult, time.Duration, error)
}

func (e *StructuredExtractor) Extract(html string, params waio.StructuredParams) (*waio.ExtractionResult, time.Duration, error) {
	return e.ExtractFn(html, params)
}

var _ waio.ComparisonService = (*ComparisonService)(nil)

// ComparisonService is a mock implementation of waio.ComparisonService.
type ComparisonService struct {
	CompareFn func(page *waio.Page, bot waio.Bot, mode waio.ComparisonMode) (*waio.Comparison, error)
}

func (s *ComparisonService) Compare(page *waio.Page, bot waio.Bot, mode waio.ComparisonMode) (*waio.Comparison, error) {
	return s.CompareFn(page, bot, mode)
}
