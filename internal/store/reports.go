package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report not found")

type Report struct {
	ID         string    `json:"id"`
	ReportType string    `json:"report_type"`
	Subject    string    `json:"subject"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
	Bytes      int64     `json:"bytes"`
}

// InsertReport catalogs a written report file and returns its generated ID.
func InsertReport(ctx context.Context, db *sql.DB, rep Report) (Report, error) {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO reports(id, report_type, subject, filename, created_at, bytes)
VALUES(?,?,?,?,?,?)
ON CONFLICT(filename) DO UPDATE SET
  report_type=excluded.report_type,
  subject=excluded.subject,
  created_at=excluded.created_at,
  bytes=excluded.bytes;`,
		rep.ID, rep.ReportType, rep.Subject, rep.Filename,
		rep.CreatedAt.Format(time.RFC3339), rep.Bytes)
	if err != nil {
		return Report{}, err
	}
	return rep, nil
}

// GetReportByFilename looks up one catalog row; ErrNotFound when absent.
func GetReportByFilename(ctx context.Context, db *sql.DB, filename string) (Report, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, report_type, subject, filename, created_at, bytes
FROM reports WHERE filename = ? LIMIT 1;`, filename)

	rep, err := scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	return rep, err
}

// ListReports returns catalog rows newest first.
func ListReports(ctx context.Context, db *sql.DB, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, report_type, subject, filename, created_at, bytes
FROM reports ORDER BY created_at DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		rep, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanReport(scan func(...any) error) (Report, error) {
	var rep Report
	var createdStr string
	if err := scan(&rep.ID, &rep.ReportType, &rep.Subject, &rep.Filename, &createdStr, &rep.Bytes); err != nil {
		return Report{}, err
	}
	rep.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return rep, nil
}
