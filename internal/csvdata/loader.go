package csvdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"recruitin-engine/internal/domain"
)

var prospectColumns = []string{
	"company_name", "industry", "company_size", "location",
	"job_title", "function_area", "seniority",
	"salary_min", "salary_max", "days_open",
	"contact_name", "contact_title", "email", "tier_score",
}

var marketColumns = []string{
	"sector", "average_salary", "open_positions",
	"growth_percentage", "shortage_level", "top_skills", "market_trend",
}

// table is a parsed CSV with a header-index map, like the audit tools use.
type table struct {
	path string
	cols map[string]int
	rows [][]string
}

func readTable(path string, required []string) (*table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%s: file is not valid UTF-8", path)
	}

	r := csv.NewReader(strings.NewReader(string(b)))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, header row required", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Path: path, Columns: missing}
	}

	return &table{path: path, cols: cols, rows: records[1:]}, nil
}

func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) getInt(row []string, col string, rowNum int) (int, error) {
	s := t.get(row, col)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// salaries sometimes arrive as "55000.0" from sheet exports
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, &MalformedValueError{Path: t.path, Column: col, Row: rowNum, Value: s}
		}
		return int(f), nil
	}
	return n, nil
}

func (t *table) getFloat(row []string, col string, rowNum int) (float64, error) {
	s := t.get(row, col)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedValueError{Path: t.path, Column: col, Row: rowNum, Value: s}
	}
	return f, nil
}

// ReadProspects loads and types the prospects CSV. Rows come back in file
// order; ranking is the caller's business.
func ReadProspects(path string) ([]domain.Prospect, error) {
	t, err := readTable(path, prospectColumns)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Prospect, 0, len(t.rows))
	for i, row := range t.rows {
		n := i + 1
		p := domain.Prospect{
			CompanyName:  t.get(row, "company_name"),
			Industry:     t.get(row, "industry"),
			CompanySize:  t.get(row, "company_size"),
			Location:     t.get(row, "location"),
			JobTitle:     t.get(row, "job_title"),
			FunctionArea: t.get(row, "function_area"),
			Seniority:    t.get(row, "seniority"),
			ContactName:  t.get(row, "contact_name"),
			ContactTitle: t.get(row, "contact_title"),
			Email:        t.get(row, "email"),
			Website:      t.get(row, "website"),
		}
		if p.SalaryMin, err = t.getInt(row, "salary_min", n); err != nil {
			return nil, err
		}
		if p.SalaryMax, err = t.getInt(row, "salary_max", n); err != nil {
			return nil, err
		}
		if p.DaysOpen, err = t.getInt(row, "days_open", n); err != nil {
			return nil, err
		}
		if p.TierScore, err = t.getFloat(row, "tier_score", n); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ReadMarket loads and types the market data CSV.
func ReadMarket(path string) ([]domain.MarketRow, error) {
	t, err := readTable(path, marketColumns)
	if err != nil {
		return nil, err
	}

	out := make([]domain.MarketRow, 0, len(t.rows))
	for i, row := range t.rows {
		n := i + 1
		m := domain.MarketRow{
			Sector:        t.get(row, "sector"),
			ShortageLevel: t.get(row, "shortage_level"),
			TopSkills:     t.get(row, "top_skills"),
			MarketTrend:   t.get(row, "market_trend"),
		}
		if m.AverageSalary, err = t.getInt(row, "average_salary", n); err != nil {
			return nil, err
		}
		if m.OpenPositions, err = t.getInt(row, "open_positions", n); err != nil {
			return nil, err
		}
		if m.GrowthPercentage, err = t.getFloat(row, "growth_percentage", n); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
