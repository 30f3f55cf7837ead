package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/waio"
)

// Ensure LoggingContentExtractor implements waio.ContentExtractor.
var _ waio.ContentExtractor = (*LoggingContentExtractor)(nil)

// LoggingContentExtractor wraps a ContentExtractor with debug logging.
// Failures are logged here because the heuristic extractor treats them as
// missing content.
type LoggingContentExtractor struct {
	next   waio.ContentExtractor
	engine string
	logger *slog.Logger
}

// NewLoggingContentExtractor creates a new LoggingContentExtractor.
func NewLoggingContentExtractor(next waio.ContentExtractor, engine string, logger *slog.Logger) *LoggingContentExtractor {
	return &LoggingContentExtractor{next: next, engine: engine, logger: logger}
}

// ExtractContent delegates to the wrapped extractor and logs the outcome.
func (e *LoggingContentExtractor) ExtractContent(html string) (content string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		e.logger.Log(context.Background(), level, "extract content",
			"engine", e.engine,
			"chars", utf8.RuneCountInString(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractContent(html)
}
