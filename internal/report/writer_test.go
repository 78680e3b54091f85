package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)

func TestWeeklyFilenameDeterministic(t *testing.T) {
	a := WeeklyFilename("Acme BV", fixedNow)
	b := WeeklyFilename("Acme BV", fixedNow)
	if a != b {
		t.Fatalf("filename not deterministic: %q vs %q", a, b)
	}
	if a != "Weekly_Report_Acme_BV_20260309.md" {
		t.Fatalf("unexpected filename %q", a)
	}
}

func TestWeeklyFilenameSanitizesSubject(t *testing.T) {
	got := WeeklyFilename(`Acme / "Sons" B.V.`, fixedNow)
	if strings.ContainsAny(got, `/\:"`) {
		t.Fatalf("filename contains hostile runes: %q", got)
	}
	if got != "Weekly_Report_Acme__Sons_BV_20260309.md" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestMonthlyFilename(t *testing.T) {
	if got := MonthlyFilename("finance", fixedNow); got != "Monthly_Report_finance_202603.md" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := MonthlyFilename("", fixedNow); got != "Monthly_Report_all_202603.md" {
		t.Fatalf("empty sector should fall back to all, got %q", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()

	size, err := WriteMarkdown(dir, "out.md", "Weekly Recruitment Report - Acme BV", "Rapportinhoud.", fixedNow)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if size <= 0 {
		t.Fatalf("size = %d", size)
	}

	b, err := os.ReadFile(filepath.Join(dir, "out.md"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(b)
	if !strings.HasPrefix(content, "# Weekly Recruitment Report - Acme BV\n\n") {
		t.Fatalf("missing title preamble:\n%s", content)
	}
	if !strings.Contains(content, "**Generated:** 09-03-2026 14:30") {
		t.Fatalf("missing generated stamp:\n%s", content)
	}
	if !strings.HasSuffix(content, "Rapportinhoud.\n") {
		t.Fatalf("missing body:\n%s", content)
	}
	if int64(len(b)) != size {
		t.Fatalf("reported size %d, file has %d", size, len(b))
	}
}
