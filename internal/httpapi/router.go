package httpapi

import "net/http"

// NewMux wires every endpoint; main() wraps it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Liveness
	hh := HealthHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Generation webhooks. Zapier fires GET or POST depending on the step
	// type, so both are accepted.
	rh := ReportsHandler{
		CfgVal:     d.CfgVal,
		GenStatus:  d.GenStatus,
		RunWeekly:  d.RunWeekly,
		RunMonthly: d.RunMonthly,
	}
	mux.HandleFunc("/weekly", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  rh.Weekly,
		http.MethodPost: rh.Weekly,
	}))
	mux.HandleFunc("/monthly", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  rh.Monthly,
		http.MethodPost: rh.Monthly,
	}))
	mux.HandleFunc("/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))

	// Generated files
	dh := DownloadHandler{DB: d.DB, ReportsDir: d.ReportsDir}
	mux.HandleFunc("/download/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.GetByPath,
	}))

	ch := CatalogHandler{DB: d.DB, Analytics: d.Analytics}
	mux.HandleFunc("/reports", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.ListReports,
	}))
	mux.HandleFunc("/analytics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.AnalyticsTail,
	}))

	// Config
	cfgh := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Get,
		http.MethodPut: cfgh.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Path,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/claude", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetClaudeKey,
		http.MethodDelete: sh.DeleteClaudeKey,
	}))

	if d.MetricsHandler != nil {
		mux.Handle("/metrics", d.MetricsHandler)
	}

	return mux
}
