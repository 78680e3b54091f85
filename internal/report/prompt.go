package report

import (
	"fmt"
	"strings"

	"recruitin-engine/internal/domain"
	"recruitin-engine/internal/enrich"
)

// The report prose is Dutch; the prompts ship with the engine rather than
// living in user config so output structure stays predictable.
const weeklyPrompt = `Schrijf een professionele Nederlandse recruitment markt analyse voor dit bedrijf.

STRUCTUUR:
1. Executive Summary (2-3 zinnen)
2. Bedrijfsanalyse (positie in de markt)
3. Functie-analyse (specifieke rol details)
4. Marktcontext (salary benchmarks, groei trends)
5. Recruitment strategie aanbevelingen
6. Actie items

Schrijf in professionele maar toegankelijke Nederlandse taal.
Gebruik concrete cijfers en data waar beschikbaar.
Houd het beknopt maar informatief (max 800 woorden).`

const monthlyPrompt = `Schrijf een uitgebreide Nederlandse sector analyse rapport.

STRUCTUUR:
1. Sector Overview
2. Markt Trends & Ontwikkelingen
3. Salary Benchmarks
4. Skills Gap Analyse
5. Growth Opportunities
6. Strategic Recommendations
7. Forecast & Outlook

Schrijf een diepgaand rapport van 1500-2000 woorden.
Gebruik alle beschikbare marktdata.
Focus op actionable insights voor recruitment professionals.`

// BuildWeeklyPrompt renders the full prompt for one prospect: template, the
// prospect's fields, market rows matching its industry, and any enrichment.
func BuildWeeklyPrompt(p domain.Prospect, market []domain.MarketRow, sum enrich.Summary) string {
	var b strings.Builder
	b.WriteString(weeklyPrompt)
	b.WriteString("\n\nPROSPECT DATA:\n")
	fmt.Fprintf(&b, "Company: %s\n", orNA(p.CompanyName))
	fmt.Fprintf(&b, "Industry: %s\n", orNA(p.Industry))
	fmt.Fprintf(&b, "Size: %s\n", orNA(p.CompanySize))
	fmt.Fprintf(&b, "Location: %s\n", orNA(p.Location))
	fmt.Fprintf(&b, "Role: %s\n", orNA(p.JobTitle))
	fmt.Fprintf(&b, "Salary Range: %s\n", p.SalaryRange())
	fmt.Fprintf(&b, "Days Open: %d\n", p.DaysOpen)
	fmt.Fprintf(&b, "Contact: %s (%s)\n", orNA(p.ContactName), orNA(p.ContactTitle))
	fmt.Fprintf(&b, "Tier Score: %.0f/100\n", p.TierScore)

	b.WriteString("\nMARKET CONTEXT:\n")
	for _, m := range market {
		if !strings.Contains(strings.ToLower(p.Industry), strings.ToLower(m.Sector)) {
			continue
		}
		writeMarketBlock(&b, m)
	}

	if !sum.Empty() {
		b.WriteString("\nCOMPANY WEBSITE:\n")
		if sum.Title != "" {
			fmt.Fprintf(&b, "Title: %s\n", sum.Title)
		}
		if sum.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", sum.Description)
		}
		if len(sum.Headings) > 0 {
			fmt.Fprintf(&b, "Highlights: %s\n", strings.Join(sum.Headings, "; "))
		}
	}

	return b.String()
}

// MonthlyContext carries the aggregates computed over the filtered sector.
type MonthlyContext struct {
	Sector         string
	TotalProspects int
	MarketSegments int
	AvgSalary      int
	TotalPositions int
}

// BuildMonthlyContext aggregates the sector-filtered sets the way the monthly
// report presents them.
func BuildMonthlyContext(sector string, prospects []domain.Prospect, market []domain.MarketRow) MonthlyContext {
	ctx := MonthlyContext{
		Sector:         sector,
		TotalProspects: len(prospects),
		MarketSegments: len(market),
	}
	for _, m := range market {
		ctx.AvgSalary += m.AverageSalary
		ctx.TotalPositions += m.OpenPositions
	}
	if len(market) > 0 {
		ctx.AvgSalary /= len(market)
	}
	return ctx
}

// BuildMonthlyPrompt renders the sector analysis prompt.
func BuildMonthlyPrompt(mc MonthlyContext, market []domain.MarketRow) string {
	var b strings.Builder
	b.WriteString(monthlyPrompt)
	b.WriteString("\n\nSECTOR DATA:\n")
	fmt.Fprintf(&b, "Sector: %s\n", orNA(mc.Sector))
	fmt.Fprintf(&b, "Total Prospects: %d\n", mc.TotalProspects)
	fmt.Fprintf(&b, "Market Segments: %d\n", mc.MarketSegments)
	fmt.Fprintf(&b, "Average Salary: €%d\n", mc.AvgSalary)
	fmt.Fprintf(&b, "Total Open Positions: %d\n", mc.TotalPositions)

	b.WriteString("\nMARKET CONTEXT:\n")
	for _, m := range market {
		writeMarketBlock(&b, m)
	}

	return b.String()
}

func writeMarketBlock(b *strings.Builder, m domain.MarketRow) {
	fmt.Fprintf(b, "\nSector: %s\n", m.Sector)
	fmt.Fprintf(b, "Average Salary: €%d\n", m.AverageSalary)
	fmt.Fprintf(b, "Open Positions: %d\n", m.OpenPositions)
	fmt.Fprintf(b, "Growth: %.1f%%\n", m.GrowthPercentage)
	fmt.Fprintf(b, "Skills in Demand: %s\n", orNA(m.TopSkills))
	fmt.Fprintf(b, "Market Trend: %s\n", orNA(m.MarketTrend))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
