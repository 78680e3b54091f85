// config/overlay.go
package config

import (
	"os"
	"strconv"
)

// OverlayEnv applies the environment variables the original deployment
// documented (PORT, CSV paths, output dir) on top of the file config.
// Unset or unparsable values leave the file value alone.
func OverlayEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := os.Getenv("PROSPECTS_CSV"); v != "" {
		cfg.CSV.ProspectsPath = v
	}
	if v := os.Getenv("MARKET_DATA_CSV"); v != "" {
		cfg.CSV.MarketDataPath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.App.ReportsDir = v
	}
	if v := os.Getenv("CLAUDE_MODEL"); v != "" {
		cfg.Generation.Model = v
	}
}
