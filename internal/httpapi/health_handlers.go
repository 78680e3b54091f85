package httpapi

import (
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"recruitin-engine/internal/config"
)

type HealthHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

// Health reports liveness plus whether the input CSVs are where config says.
// It never touches the generation API, so it answers 200 even when that is down.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	exists := func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	writeJSON(w, map[string]any{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"csv_files": map[string]bool{
			"prospects":   exists(cfg.CSV.ProspectsPath),
			"market_data": exists(cfg.CSV.MarketDataPath),
		},
	})
}
