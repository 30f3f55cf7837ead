package mock

import (
	"context"

	"github.com/fwojciec/waio"
)

var _ waio.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of waio.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, r *waio.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*waio.Report, error)
	FindReportsFn    func(ctx context.Context, filter waio.ReportFilter) ([]*waio.Report, error)
}

func (s *ReportService) CreateReport(ctx context.Context, r *waio.Report) error {
	return s.CreateReportFn(ctx, r)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*waio.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter waio.ReportFilter) ([]*waio.Report, error) {
	return s.FindReportsFn(ctx, filter)
}
