// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port       int    `yaml:"port"`
		DataDir    string `yaml:"data_dir"`
		ReportsDir string `yaml:"reports_dir"`
	} `yaml:"app"`

	CSV struct {
		ProspectsPath  string `yaml:"prospects_path"`
		MarketDataPath string `yaml:"market_data_path"`
	} `yaml:"csv"`

	Generation struct {
		Model             string  `yaml:"model"`
		MaxTokens         int     `yaml:"max_tokens"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		MaxParallel       int     `yaml:"max_parallel"`
		RequestsPerMinute float64 `yaml:"requests_per_minute"`
	} `yaml:"generation"`

	Enrichment struct {
		Enabled        bool `yaml:"enabled"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"enrichment"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default is the config written on first run when no file exists yet.
func Default() Config {
	var cfg Config
	cfg.App.Port = 5000
	cfg.App.DataDir = "."
	cfg.App.ReportsDir = "generated_reports"
	cfg.CSV.ProspectsPath = "prospects_sample.csv"
	cfg.CSV.MarketDataPath = "market_data_sample.csv"
	cfg.Generation.Model = "claude-sonnet-4-20250514"
	cfg.Generation.MaxTokens = 4000
	cfg.Generation.TimeoutSeconds = 120
	cfg.Generation.MaxParallel = 1
	cfg.Generation.RequestsPerMinute = 20
	cfg.Enrichment.Enabled = false
	cfg.Enrichment.TimeoutSeconds = 10
	return cfg
}
