package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/waio"
)

// Ensure LoggingReportService implements waio.ReportService.
var _ waio.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with debug logging.
type LoggingReportService struct {
	next   waio.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next waio.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// CreateReport delegates to the wrapped service and logs the stored ID.
func (s *LoggingReportService) CreateReport(ctx context.Context, report *waio.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create report",
			"id", report.ID,
			"url", report.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, report)
}

// FindReportByID delegates to the wrapped service.
func (s *LoggingReportService) FindReportByID(ctx context.Context, id string) (*waio.Report, error) {
	return s.next.FindReportByID(ctx, id)
}

// FindReports delegates to the wrapped service and logs the result count.
func (s *LoggingReportService) FindReports(ctx context.Context, filter waio.ReportFilter) (reports []*waio.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find reports",
			"count", len(reports),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}
