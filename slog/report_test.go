package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/mock"
	waioslog "github.com/fwojciec/waio/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingReportService(t *testing.T) {
	t.Parallel()

	t.Run("logs created report id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ReportService{
			CreateReportFn: func(ctx context.Context, r *waio.Report) error {
				r.ID = "abc"
				return nil
			},
		}

		svc := waioslog.NewLoggingReportService(inner, logger)
		err := svc.CreateReport(context.Background(), &waio.Report{URL: "https://example.com/"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "id=abc")
	})

	t.Run("logs found report count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ReportService{
			FindReportsFn: func(ctx context.Context, filter waio.ReportFilter) ([]*waio.Report, error) {
				return []*waio.Report{{ID: "a"}, {ID: "b"}}, nil
			},
		}

		svc := waioslog.NewLoggingReportService(inner, logger)
		reports, err := svc.FindReports(context.Background(), waio.ReportFilter{})

		require.NoError(t, err)
		assert.Len(t, reports, 2)
		assert.Contains(t, buf.String(), "count=2")
	})
}
