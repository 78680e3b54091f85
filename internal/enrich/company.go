package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Summary is what a company page contributes to a report prompt.
type Summary struct {
	Title       string
	Description string
	Headings    []string
}

func (s Summary) Empty() bool {
	return s.Title == "" && s.Description == "" && len(s.Headings) == 0
}

// Fetcher pulls a light-weight summary off a prospect's website. Failures are
// the caller's to ignore; a report never depends on enrichment succeeding.
type Fetcher struct {
	hc  *http.Client
	lim *rate.Limiter
}

func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		hc: &http.Client{Timeout: timeout},
		// one page a second is plenty for a handful of prospects per run
		lim: rate.NewLimiter(rate.Limit(1.0), 2),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Summary, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	if err := f.lim.Wait(ctx); err != nil {
		return Summary{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		// CSV website values are free text; a bad one is just a failed enrich
		return Summary{}, fmt.Errorf("enrich build request: %w", err)
	}
	req.Header.Set("User-Agent", "RecruitinEngine/1.0 (+local)")

	res, err := f.hc.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("enrich get page: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return Summary{}, fmt.Errorf("enrich page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return Summary{}, fmt.Errorf("enrich parse html: %w", err)
	}

	var sum Summary
	sum.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		sum.Description = strings.TrimSpace(desc)
	}

	seen := map[string]bool{}
	doc.Find("h1, h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := strings.Join(strings.Fields(h.Text()), " ")
		if text == "" || len(text) > 120 || seen[strings.ToLower(text)] {
			return true
		}
		seen[strings.ToLower(text)] = true
		sum.Headings = append(sum.Headings, text)
		return len(sum.Headings) < 6
	})

	return sum, nil
}
