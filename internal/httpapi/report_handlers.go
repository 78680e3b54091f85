package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"recruitin-engine/internal/config"
	"recruitin-engine/internal/report"
)

type ReportsHandler struct {
	CfgVal     *atomic.Value // config.Config
	GenStatus  *atomic.Value // httpapi.GenStatus
	RunWeekly  func(ctx context.Context, cfg config.Config, prospects int) (report.WeeklyResult, error)
	RunMonthly func(ctx context.Context, cfg config.Config, sector string) (report.MonthlyResult, error)
}

// Weekly runs the full pipeline synchronously; the webhook caller wants the
// per-report outcomes in the response body.
func (h ReportsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	prospects := 10
	if v := r.URL.Query().Get("prospects"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "prospects must be a positive integer")
			return
		}
		prospects = n
	}

	cfg := h.CfgVal.Load().(config.Config)
	h.begin("weekly")

	res, err := h.RunWeekly(r.Context(), cfg, prospects)
	if err != nil {
		h.finish("weekly", 0, err)
		WriteDomainError(w, r, err)
		return
	}
	h.finish("weekly", res.Count, nil)

	writeJSON(w, map[string]any{
		"success": true,
		"count":   res.Count,
		"reports": res.Reports,
		"message": fmt.Sprintf("Generated %d weekly reports", res.Count),
	})
}

func (h ReportsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	if sector == "" {
		sector = "all"
	}

	cfg := h.CfgVal.Load().(config.Config)
	h.begin("monthly")

	res, err := h.RunMonthly(r.Context(), cfg, sector)
	if err != nil {
		h.finish("monthly", 0, err)
		WriteDomainError(w, r, err)
		return
	}
	h.finish("monthly", 1, nil)

	writeJSON(w, map[string]any{
		"success": true,
		"report":  res.File,
		"message": fmt.Sprintf("Generated monthly report for %s", res.Sector),
	})
}

func (h ReportsHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.GenStatus.Load().(GenStatus)
	writeJSON(w, st)
}

func (h ReportsHandler) begin(typ string) {
	st := h.GenStatus.Load().(GenStatus)
	st.Running = true
	st.LastType = typ
	st.LastRunAt = time.Now().Format(time.RFC3339)
	st.LastError = ""
	h.GenStatus.Store(st)
}

func (h ReportsHandler) finish(typ string, count int, err error) {
	now := time.Now().Format(time.RFC3339)
	st := h.GenStatus.Load().(GenStatus)
	st.Running = false
	st.LastType = typ
	st.LastCount = count
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastError = ""
		st.LastOkAt = now
	}
	h.GenStatus.Store(st)
}
