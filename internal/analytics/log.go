package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const FileName = "report_analytics.csv"

var header = []string{"timestamp", "report_type", "company_name", "file_path", "success", "processing_time"}

// Record is one generation attempt, success or not.
type Record struct {
	Timestamp      time.Time
	ReportType     string
	CompanyName    string
	FilePath       string
	Success        bool
	ProcessingTime time.Duration
}

// Log appends attempt records to a CSV, one row per attempt. The mutex
// serializes writers inside this process; the file lock covers a second
// process (the CLI mode) appending to the same log.
type Log struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func NewLog(dir string) *Log {
	path := filepath.Join(dir, FileName)
	return &Log{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (l *Log) Path() string { return l.path }

// Append writes one record, creating the file with its header on first use.
func (l *Log) Append(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	if err := l.lock.Lock(); err != nil {
		return fmt.Errorf("analytics lock: %w", err)
	}
	defer l.lock.Unlock()

	writeHeader := false
	if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		rec.Timestamp.Format(time.RFC3339),
		rec.ReportType,
		rec.CompanyName,
		rec.FilePath,
		strconv.FormatBool(rec.Success),
		strconv.FormatFloat(rec.ProcessingTime.Seconds(), 'f', 3, 64),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Tail returns up to n most recent records, oldest first. A missing file is
// an empty log, not an error.
func (l *Log) Tail(n int) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err := l.lock.RLock(); err != nil {
		return nil, fmt.Errorf("analytics lock: %w", err)
	}
	defer l.lock.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	rows = rows[1:] // header

	if n > 0 && len(rows) > n {
		rows = rows[len(rows)-n:]
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		var rec Record
		rec.Timestamp, _ = time.Parse(time.RFC3339, row[0])
		rec.ReportType = row[1]
		rec.CompanyName = row[2]
		rec.FilePath = row[3]
		rec.Success, _ = strconv.ParseBool(row[4])
		if secs, err := strconv.ParseFloat(row[5], 64); err == nil {
			rec.ProcessingTime = time.Duration(secs * float64(time.Second))
		}
		out = append(out, rec)
	}
	return out, nil
}
