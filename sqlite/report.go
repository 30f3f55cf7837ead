package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/waio"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ waio.ReportService = (*ReportService)(nil)

// ReportService implements waio.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

const reportColumns = `id, url, bot, mode, content_hash, network_ns, parse_ns,
	heuristic_ns, structured_ns, speedup, gain_percent, integrity_score,
	markers_detected, created_at`

// CreateReport stores a new report with a generated ID and timestamp.
func (s *ReportService) CreateReport(ctx context.Context, r *waio.Report) error {
	if err := r.Validate(); err != nil {
		return err
	}

	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.URL, string(r.Bot), string(r.Mode), r.ContentHash,
		int64(r.NetworkTime), int64(r.ParseTime),
		int64(r.HeuristicCognitive), int64(r.StructuredCognitive),
		r.Speedup, r.GainPercent, r.IntegrityScore,
		r.MarkersDetected, r.CreatedAt.Format(time.RFC3339))

	return err
}

// FindReportByID retrieves a report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*waio.Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, waio.Errorf(waio.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter waio.ReportFilter) ([]*waio.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + reportColumns + ` FROM reports WHERE 1=1`)

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Bot != nil {
		query.WriteString(" AND bot = ?")
		args = append(args, string(*filter.Bot))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*waio.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*waio.Report, error) {
	var r waio.Report
	var bot, mode, createdAt string
	var network, parse, heuristic, structured int64

	if err := row.Scan(&r.ID, &r.URL, &bot, &mode, &r.ContentHash,
		&network, &parse, &heuristic, &structured,
		&r.Speedup, &r.GainPercent, &r.IntegrityScore,
		&r.MarkersDetected, &createdAt); err != nil {
		return nil, err
	}

	r.Bot = waio.Bot(bot)
	r.Mode = waio.ComparisonMode(mode)
	r.NetworkTime = time.Duration(network)
	r.ParseTime = time.Duration(parse)
	r.HeuristicCognitive = time.Duration(heuristic)
	r.StructuredCognitive = time.Duration(structured)

	var err error
	r.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &r, nil
}
