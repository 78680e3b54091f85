package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WeeklyFilename is deterministic for a company and day, so a rerun on the
// same day overwrites rather than piling up duplicates.
func WeeklyFilename(company string, now time.Time) string {
	return fmt.Sprintf("Weekly_Report_%s_%s.md", sanitizeSubject(company), now.Format("20060102"))
}

// MonthlyFilename is deterministic for a sector and month.
func MonthlyFilename(sector string, now time.Time) string {
	if strings.TrimSpace(sector) == "" {
		sector = "all"
	}
	return fmt.Sprintf("Monthly_Report_%s_%s.md", sanitizeSubject(sector), now.Format("200601"))
}

func sanitizeSubject(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "Unknown"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '/' || r == '\\' || r == ':' || r == '.' || r == '"':
			// drop path-hostile runes
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteMarkdown persists a report with its title preamble and returns the
// written size.
func WriteMarkdown(dir, filename, title, content string, now time.Time) (int64, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.Format("02-01-2006 15:04"))
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 0, err
	}
	return int64(b.Len()), nil
}
