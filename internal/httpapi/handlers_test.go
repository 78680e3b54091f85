package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitin-engine/internal/analytics"
	"recruitin-engine/internal/config"
	"recruitin-engine/internal/csvdata"
	"recruitin-engine/internal/llm"
	"recruitin-engine/internal/report"
	"recruitin-engine/internal/store"
)

type testEnv struct {
	mux        *http.ServeMux
	db         *store.DB
	reportsDir string
	deps       *Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reportsDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(reportsDir, 0o755))

	cfg := config.Default()
	cfg.CSV.ProspectsPath = filepath.Join(dir, "prospects.csv")
	cfg.CSV.MarketDataPath = filepath.Join(dir, "market.csv")

	var cfgVal, genStatus atomic.Value
	cfgVal.Store(cfg)
	genStatus.Store(GenStatus{})

	deps := &Deps{
		DB:         db.Pool,
		Analytics:  analytics.NewLog(reportsDir),
		CfgVal:     &cfgVal,
		GenStatus:  &genStatus,
		ReportsDir: reportsDir,
		RunWeekly: func(ctx context.Context, cfg config.Config, prospects int) (report.WeeklyResult, error) {
			return report.WeeklyResult{
				Count: 1,
				Reports: []report.WeeklyItem{
					{Company: "Acme BV", File: "Weekly_Report_Acme_BV_20260309.md", OK: true},
				},
			}, nil
		},
		RunMonthly: func(ctx context.Context, cfg config.Config, sector string) (report.MonthlyResult, error) {
			return report.MonthlyResult{Sector: sector, File: "Monthly_Report_" + sector + "_202603.md"}, nil
		},
	}

	return &testEnv{mux: NewMux(*deps), db: db, reportsDir: reportsDir, deps: deps}
}

func (e *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestHealthAlways200(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string          `json:"status"`
		CSVFiles map[string]bool `json:"csv_files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	// the CSVs don't exist in this env; health still answers 200
	assert.False(t, body.CSVFiles["prospects"])
	assert.False(t, body.CSVFiles["market_data"])
}

func TestWeeklyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/weekly?prospects=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                `json:"success"`
		Count   int                 `json:"count"`
		Reports []report.WeeklyItem `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Reports, 1)
	assert.Equal(t, "Acme BV", body.Reports[0].Company)
}

func TestWeeklyBadProspectsParam(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"prospects=abc", "prospects=-2", "prospects=0"} {
		rec := env.do(t, http.MethodPost, "/weekly?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestWeeklyMissingColumnMapsTo422(t *testing.T) {
	env := newTestEnv(t)
	env.deps.RunWeekly = func(ctx context.Context, cfg config.Config, prospects int) (report.WeeklyResult, error) {
		return report.WeeklyResult{}, &csvdata.MissingColumnError{Path: "prospects.csv", Columns: []string{"tier_score"}}
	}
	env.mux = NewMux(*env.deps)

	rec := env.do(t, http.MethodPost, "/weekly")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "missing_column", apiErr.Error.Code)
	assert.Contains(t, apiErr.Error.Message, "tier_score")
}

func TestMonthlyGenerationFailureMapsTo502(t *testing.T) {
	env := newTestEnv(t)
	env.deps.RunMonthly = func(ctx context.Context, cfg config.Config, sector string) (report.MonthlyResult, error) {
		return report.MonthlyResult{}, &llm.GenerationError{Err: errors.New("upstream timeout")}
	}
	env.mux = NewMux(*env.deps)

	rec := env.do(t, http.MethodPost, "/monthly?sector=finance")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "generation_failed", apiErr.Error.Code)

	st := env.deps.GenStatus.Load().(GenStatus)
	assert.False(t, st.Running)
	assert.Contains(t, st.LastError, "upstream timeout")
}

func TestMonthlyDefaultsSectorToAll(t *testing.T) {
	env := newTestEnv(t)
	var gotSector string
	env.deps.RunMonthly = func(ctx context.Context, cfg config.Config, sector string) (report.MonthlyResult, error) {
		gotSector = sector
		return report.MonthlyResult{Sector: sector, File: "f.md"}, nil
	}
	env.mux = NewMux(*env.deps)

	rec := env.do(t, http.MethodPost, "/monthly")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", gotSector)
}

func TestStatusReflectsLastRun(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var st GenStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.Running)
	assert.Empty(t, st.LastRunAt)

	_ = env.do(t, http.MethodPost, "/weekly")

	rec = env.do(t, http.MethodGet, "/status")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "weekly", st.LastType)
	assert.Equal(t, 1, st.LastCount)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestDownloadServesCatalogedReport(t *testing.T) {
	env := newTestEnv(t)

	const name = "Weekly_Report_Acme_BV_20260309.md"
	content := "# Weekly Recruitment Report - Acme BV\n\ninhoud\n"
	require.NoError(t, os.WriteFile(filepath.Join(env.reportsDir, name), []byte(content), 0o644))
	_, err := store.InsertReport(context.Background(), env.db.Pool, store.Report{
		ReportType: "weekly", Subject: "Acme BV", Filename: name,
		CreatedAt: time.Now().UTC(), Bytes: int64(len(content)),
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/download/"+name)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), name)
}

func TestDownloadUnknownIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/download/nope.md")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "not_found", apiErr.Error.Code)
}

func TestDownloadRefusesTraversal(t *testing.T) {
	env := newTestEnv(t)

	// hit the handler directly; the mux would 301-clean the path first
	h := DownloadHandler{DB: env.db.Pool, ReportsDir: env.reportsDir}
	req := httptest.NewRequest(http.MethodGet, "/download/x", nil)
	req.URL.Path = "/download/../config.yml"
	rec := httptest.NewRecorder()
	h.GetByPath(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsListEndpoint(t *testing.T) {
	env := newTestEnv(t)

	_, err := store.InsertReport(context.Background(), env.db.Pool, store.Report{
		ReportType: "monthly", Subject: "finance", Filename: "m.md",
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/reports")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int            `json:"count"`
		Reports []store.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Reports, 1)
	assert.Equal(t, "m.md", body.Reports[0].Filename)
}

func TestAnalyticsTailEndpoint(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.deps.Analytics.Append(analytics.Record{
		Timestamp: time.Now(), ReportType: "weekly", CompanyName: "Acme BV",
		Success: true, ProcessingTime: 2 * time.Second,
	}))

	rec := env.do(t, http.MethodGet, "/analytics?limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count   int `json:"count"`
		Records []struct {
			CompanyName    string  `json:"company_name"`
			Success        bool    `json:"success"`
			ProcessingTime float64 `json:"processing_time"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Acme BV", body.Records[0].CompanyName)
	assert.True(t, body.Records[0].Success)
	assert.Equal(t, 2.0, body.Records[0].ProcessingTime)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/weekly")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = env.do(t, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDMiddlewarePropagates(t *testing.T) {
	env := newTestEnv(t)
	handler := Chain(env.mux, RequestID, Recover)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	env := newTestEnv(t)
	handler := Chain(env.mux, RequestID)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := rec.Header().Get("X-Request-ID")
	assert.Len(t, id, 32)
	assert.False(t, strings.Contains(id, " "))
}
