package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/waio"
)

// Ensure LoggingComparisonService implements waio.ComparisonService.
var _ waio.ComparisonService = (*LoggingComparisonService)(nil)

// LoggingComparisonService wraps a ComparisonService with logging.
type LoggingComparisonService struct {
	next   waio.ComparisonService
	logger *slog.Logger
}

// NewLoggingComparisonService creates a new LoggingComparisonService.
func NewLoggingComparisonService(next waio.ComparisonService, logger *slog.Logger) *LoggingComparisonService {
	return &LoggingComparisonService{next: next, logger: logger}
}

// Compare delegates to the wrapped service and logs the outcome.
func (s *LoggingComparisonService) Compare(page *waio.Page, bot waio.Bot, mode waio.ComparisonMode) (c *waio.Comparison, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bot", string(bot),
			"mode", string(mode),
			"duration", time.Since(begin),
		}
		if page != nil {
			attrs = append(attrs, "url", page.URL)
		}
		if c != nil {
			attrs = append(attrs, "speedup", c.Speedup())
			if c.Structured.Result != nil {
				attrs = append(attrs, "integrity", c.Structured.Result.IntegrityScore())
			}
		}
		attrs = append(attrs, "err", err)
		s.logger.Info("compare", attrs...)
	}(time.Now())
	return s.next.Compare(page, bot, mode)
}
