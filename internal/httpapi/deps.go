package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"

	"recruitin-engine/internal/analytics"
	"recruitin-engine/internal/config"
	"recruitin-engine/internal/report"
)

type Deps struct {
	DB        *sql.DB
	Analytics *analytics.Log

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	GenStatus *atomic.Value // stores httpapi.GenStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	ReportsDir string

	// Generation entrypoints (inject for testability)
	RunWeekly  func(ctx context.Context, cfg config.Config, prospects int) (report.WeeklyResult, error)
	RunMonthly func(ctx context.Context, cfg config.Config, sector string) (report.MonthlyResult, error)

	MetricsHandler http.Handler
}
