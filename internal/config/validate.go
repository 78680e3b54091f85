package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus the validation result.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.DataDir = strings.TrimSpace(out.App.DataDir)
	out.App.ReportsDir = strings.TrimSpace(out.App.ReportsDir)
	out.CSV.ProspectsPath = strings.TrimSpace(out.CSV.ProspectsPath)
	out.CSV.MarketDataPath = strings.TrimSpace(out.CSV.MarketDataPath)
	out.Generation.Model = strings.TrimSpace(out.Generation.Model)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.ReportsDir == "" {
		res.addErr("app.reports_dir is required")
	}
	if out.CSV.ProspectsPath == "" {
		res.addErr("csv.prospects_path is required")
	}
	if out.CSV.MarketDataPath == "" {
		res.addErr("csv.market_data_path is required")
	}

	if out.Generation.Model == "" {
		res.addErr("generation.model is required")
	}
	if out.Generation.MaxTokens <= 0 {
		res.addErr("generation.max_tokens must be > 0")
	}
	if out.Generation.TimeoutSeconds <= 0 {
		res.addErr("generation.timeout_seconds must be > 0")
	} else if out.Generation.TimeoutSeconds < 15 {
		res.addWarn("generation.timeout_seconds is very low (%d); long reports will time out.", out.Generation.TimeoutSeconds)
	}
	if out.Generation.MaxParallel <= 0 {
		out.Generation.MaxParallel = 1
	}
	if out.Generation.MaxParallel > 8 {
		res.addWarn("generation.max_parallel is high (%d); watch API rate limits.", out.Generation.MaxParallel)
	}
	if out.Generation.RequestsPerMinute <= 0 {
		res.addErr("generation.requests_per_minute must be > 0")
	}

	if out.Enrichment.Enabled && out.Enrichment.TimeoutSeconds <= 0 {
		res.addErr("enrichment.timeout_seconds must be > 0 when enrichment.enabled=true")
	}

	return out, res
}
