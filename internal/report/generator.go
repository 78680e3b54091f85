package report

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"recruitin-engine/internal/analytics"
	"recruitin-engine/internal/csvdata"
	"recruitin-engine/internal/domain"
	"recruitin-engine/internal/enrich"
	"recruitin-engine/internal/metrics"
	"recruitin-engine/internal/rank"
	"recruitin-engine/internal/store"
)

// TextGenerator is the upstream model call. Satisfied by llm.Client; tests
// swap in fakes.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Enricher pulls optional company-page context. Nil disables enrichment.
type Enricher interface {
	Fetch(ctx context.Context, rawURL string) (enrich.Summary, error)
}

type Generator struct {
	LLM       TextGenerator
	Enricher  Enricher
	Analytics *analytics.Log
	DB        *sql.DB
	Metrics   *metrics.Metrics

	ReportsDir   string
	ProspectsCSV string
	MarketCSV    string
	MaxParallel  int

	Now func() time.Time // test seam; nil means time.Now
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

type WeeklyItem struct {
	Company string `json:"company"`
	File    string `json:"file,omitempty"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

type WeeklyResult struct {
	Count   int          `json:"count"`
	Reports []WeeklyItem `json:"reports"`
}

// Weekly generates one report per top-N prospect. A prospect failing never
// aborts the rest; every attempt lands in the analytics log either way.
func (g *Generator) Weekly(ctx context.Context, prospectsCount int) (WeeklyResult, error) {
	prospects, err := csvdata.ReadProspects(g.ProspectsCSV)
	if err != nil {
		return WeeklyResult{}, err
	}
	market, err := csvdata.ReadMarket(g.MarketCSV)
	if err != nil {
		return WeeklyResult{}, err
	}

	selected := rank.TopProspects(prospects, prospectsCount)
	items := make([]WeeklyItem, len(selected))

	var eg errgroup.Group
	limit := g.MaxParallel
	if limit <= 0 {
		limit = 1
	}
	eg.SetLimit(limit)

	for i, p := range selected {
		eg.Go(func() error {
			items[i] = g.weeklyOne(ctx, p, market)
			return nil
		})
	}
	_ = eg.Wait()

	res := WeeklyResult{Reports: items}
	for _, it := range items {
		if it.OK {
			res.Count++
		}
	}
	log.Printf("[report] weekly done: requested=%d generated=%d", len(selected), res.Count)
	return res, nil
}

func (g *Generator) weeklyOne(ctx context.Context, p domain.Prospect, market []domain.MarketRow) WeeklyItem {
	start := g.now()
	item := WeeklyItem{Company: p.CompanyName}

	var sum enrich.Summary
	if g.Enricher != nil && p.Website != "" {
		s, err := g.Enricher.Fetch(ctx, p.Website)
		if err != nil {
			// enrichment is best-effort
			log.Printf("[report] enrich %s: %v", p.CompanyName, err)
		} else {
			sum = s
		}
	}

	prompt := BuildWeeklyPrompt(p, market, sum)
	content, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		item.Error = err.Error()
		g.record("weekly", p.CompanyName, "", false, start)
		return item
	}

	filename := WeeklyFilename(p.CompanyName, start)
	title := fmt.Sprintf("Weekly Recruitment Report - %s", p.CompanyName)
	size, err := WriteMarkdown(g.ReportsDir, filename, title, content, start)
	if err != nil {
		item.Error = err.Error()
		g.record("weekly", p.CompanyName, "", false, start)
		return item
	}

	g.catalog(ctx, "weekly", p.CompanyName, filename, size, start)
	g.record("weekly", p.CompanyName, filename, true, start)
	item.File = filename
	item.OK = true
	return item
}

type MonthlyResult struct {
	Sector string `json:"sector"`
	File   string `json:"file"`
}

// Monthly generates one aggregated sector report.
func (g *Generator) Monthly(ctx context.Context, sector string) (MonthlyResult, error) {
	start := g.now()
	subject := sector
	if subject == "" {
		subject = "all"
	}

	prospects, err := csvdata.ReadProspects(g.ProspectsCSV)
	if err != nil {
		return MonthlyResult{}, err
	}
	market, err := csvdata.ReadMarket(g.MarketCSV)
	if err != nil {
		return MonthlyResult{}, err
	}

	market = rank.FilterMarketBySector(market, sector)
	prospects = rank.FilterProspectsByIndustry(prospects, sector)

	mc := BuildMonthlyContext(subject, prospects, market)
	prompt := BuildMonthlyPrompt(mc, market)

	content, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		g.record("monthly", "Sector_"+subject, "", false, start)
		return MonthlyResult{}, err
	}

	filename := MonthlyFilename(subject, start)
	title := fmt.Sprintf("Monthly Sector Report - %s", subject)
	size, err := WriteMarkdown(g.ReportsDir, filename, title, content, start)
	if err != nil {
		g.record("monthly", "Sector_"+subject, "", false, start)
		return MonthlyResult{}, err
	}

	g.catalog(ctx, "monthly", subject, filename, size, start)
	g.record("monthly", "Sector_"+subject, filename, true, start)
	return MonthlyResult{Sector: subject, File: filename}, nil
}

func (g *Generator) record(typ, company, filename string, ok bool, start time.Time) {
	elapsed := g.now().Sub(start)
	if g.Metrics != nil {
		g.Metrics.Observe(typ, ok, elapsed.Seconds())
	}
	if g.Analytics == nil {
		return
	}
	path := ""
	if filename != "" {
		path = filepath.Join(g.ReportsDir, filename)
	}
	if err := g.Analytics.Append(analytics.Record{
		Timestamp:      start,
		ReportType:     typ,
		CompanyName:    company,
		FilePath:       path,
		Success:        ok,
		ProcessingTime: elapsed,
	}); err != nil {
		log.Printf("[report] analytics append: %v", err)
	}
}

func (g *Generator) catalog(ctx context.Context, typ, subject, filename string, size int64, created time.Time) {
	if g.DB == nil {
		return
	}
	if _, err := store.InsertReport(ctx, g.DB, store.Report{
		ReportType: typ,
		Subject:    subject,
		Filename:   filename,
		CreatedAt:  created.UTC(),
		Bytes:      size,
	}); err != nil {
		log.Printf("[report] catalog insert: %v", err)
	}
}
