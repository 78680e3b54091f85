package domain

import "fmt"

// Prospect is one lead row from the prospects CSV.
type Prospect struct {
	CompanyName  string
	Industry     string
	CompanySize  string
	Location     string
	JobTitle     string
	FunctionArea string
	Seniority    string
	SalaryMin    int
	SalaryMax    int
	DaysOpen     int
	ContactName  string
	ContactTitle string
	Email        string
	TierScore    float64
	Website      string // optional, used for enrichment when present
}

// SalaryRange formats the salary band the way reports present it.
func (p Prospect) SalaryRange() string {
	return fmt.Sprintf("€%d - €%d", p.SalaryMin, p.SalaryMax)
}
