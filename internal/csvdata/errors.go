package csvdata

import (
	"fmt"
	"strings"
)

// MissingColumnError reports required columns absent from a CSV header.
type MissingColumnError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Columns, ", "))
}

// MalformedValueError reports a cell that must be numeric but isn't.
type MalformedValueError struct {
	Path   string
	Column string
	Row    int // 1-based data row, header not counted
	Value  string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("%s: row %d: column %q: malformed value %q", e.Path, e.Row, e.Column, e.Value)
}
