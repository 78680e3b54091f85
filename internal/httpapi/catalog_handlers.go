package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"recruitin-engine/internal/analytics"
	"recruitin-engine/internal/store"
)

type CatalogHandler struct {
	DB        *sql.DB
	Analytics *analytics.Log
}

func (h CatalogHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	reports, err := store.ListReports(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if reports == nil {
		reports = []store.Report{}
	}
	writeJSON(w, map[string]any{"reports": reports, "count": len(reports)})
}

type analyticsRow struct {
	Timestamp      string  `json:"timestamp"`
	ReportType     string  `json:"report_type"`
	CompanyName    string  `json:"company_name"`
	FilePath       string  `json:"file_path"`
	Success        bool    `json:"success"`
	ProcessingTime float64 `json:"processing_time"`
}

func (h CatalogHandler) AnalyticsTail(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := h.Analytics.Tail(limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	rows := make([]analyticsRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, analyticsRow{
			Timestamp:      rec.Timestamp.Format(time.RFC3339),
			ReportType:     rec.ReportType,
			CompanyName:    rec.CompanyName,
			FilePath:       rec.FilePath,
			Success:        rec.Success,
			ProcessingTime: rec.ProcessingTime.Seconds(),
		})
	}
	writeJSON(w, map[string]any{"records": rows, "count": len(rows)})
}
