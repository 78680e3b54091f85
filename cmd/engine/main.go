package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"recruitin-engine/internal/analytics"
	"recruitin-engine/internal/config"
	"recruitin-engine/internal/csvdata"
	"recruitin-engine/internal/enrich"
	"recruitin-engine/internal/httpapi"
	"recruitin-engine/internal/llm"
	"recruitin-engine/internal/metrics"
	"recruitin-engine/internal/report"
	"recruitin-engine/internal/secrets"
	"recruitin-engine/internal/store"
)

func main() {
	// .env is how the original deployment carried its key and paths locally.
	_ = godotenv.Load()

	dataDir := os.Getenv("RECRUITIN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		config.OverlayEnv(&cfg)
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if _, vr := config.NormalizeAndValidate(cfg); !vr.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, vr.Errors)
	}
	cfgVal.Store(cfg)

	if err := os.MkdirAll(cfg.App.ReportsDir, 0o755); err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(filepath.Join(dataDir, "recruitin.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	alog := analytics.NewLog(cfg.App.ReportsDir)
	m := metrics.New()

	newGenerator := func(cfg config.Config) (*report.Generator, error) {
		apiKey, err := secrets.GetAPIKey()
		if err != nil {
			return nil, err
		}
		var enricher report.Enricher
		if cfg.Enrichment.Enabled {
			enricher = enrich.New(time.Duration(cfg.Enrichment.TimeoutSeconds) * time.Second)
		}
		return &report.Generator{
			LLM: llm.New(llm.Config{
				APIKey:            apiKey,
				Model:             cfg.Generation.Model,
				MaxTokens:         cfg.Generation.MaxTokens,
				Timeout:           time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
				RequestsPerMinute: cfg.Generation.RequestsPerMinute,
			}),
			Enricher:     enricher,
			Analytics:    alog,
			DB:           db.Pool,
			Metrics:      m,
			ReportsDir:   cfg.App.ReportsDir,
			ProspectsCSV: cfg.CSV.ProspectsPath,
			MarketCSV:    cfg.CSV.MarketDataPath,
			MaxParallel:  cfg.Generation.MaxParallel,
		}, nil
	}

	// One-shot CLI mode, matching the original script's commands.
	if len(os.Args) > 1 {
		runCommand(os.Args[1], os.Args[2:], cfg, newGenerator)
		return
	}

	var genStatus atomic.Value
	genStatus.Store(httpapi.GenStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Analytics:   alog,
		CfgVal:      &cfgVal,
		GenStatus:   &genStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		ReportsDir:  cfg.App.ReportsDir,
		RunWeekly: func(ctx context.Context, cfg config.Config, prospects int) (report.WeeklyResult, error) {
			g, err := newGenerator(cfg)
			if err != nil {
				return report.WeeklyResult{}, err
			}
			return g.Weekly(ctx, prospects)
		},
		RunMonthly: func(ctx context.Context, cfg config.Config, sector string) (report.MonthlyResult, error) {
			g, err := newGenerator(cfg)
			if err != nil {
				return report.MonthlyResult{}, err
			}
			return g.Monthly(ctx, sector)
		},
		MetricsHandler: m.Handler(),
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://0.0.0.0%s (reports=%s)", addr, cfg.App.ReportsDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

func runCommand(cmd string, args []string, cfg config.Config, newGenerator func(config.Config) (*report.Generator, error)) {
	ctx := context.Background()

	switch cmd {
	case "weekly":
		fs := flag.NewFlagSet("weekly", flag.ExitOnError)
		prospects := fs.Int("prospects", 10, "number of prospects for weekly reports")
		_ = fs.Parse(args)

		g, err := newGenerator(cfg)
		if err != nil {
			log.Fatal(err)
		}
		res, err := g.Weekly(ctx, *prospects)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Generated %d weekly reports:\n", res.Count)
		for i, item := range res.Reports {
			if item.OK {
				fmt.Printf("%d. %s\n", i+1, filepath.Join(cfg.App.ReportsDir, item.File))
			} else {
				fmt.Printf("%d. %s: FAILED: %s\n", i+1, item.Company, item.Error)
			}
		}

	case "monthly":
		fs := flag.NewFlagSet("monthly", flag.ExitOnError)
		sector := fs.String("sector", "all", "sector for monthly report")
		_ = fs.Parse(args)

		g, err := newGenerator(cfg)
		if err != nil {
			log.Fatal(err)
		}
		res, err := g.Monthly(ctx, *sector)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Monthly report generated:\n   %s\n", filepath.Join(cfg.App.ReportsDir, res.File))

	case "test":
		ok := true
		if rows, err := csvdata.ReadProspects(cfg.CSV.ProspectsPath); err != nil {
			fmt.Printf("prospects CSV: FAILED: %v\n", err)
			ok = false
		} else {
			fmt.Printf("prospects CSV: %d records found\n", len(rows))
		}
		if rows, err := csvdata.ReadMarket(cfg.CSV.MarketDataPath); err != nil {
			fmt.Printf("market data CSV: FAILED: %v\n", err)
			ok = false
		} else {
			fmt.Printf("market data CSV: %d sectors found\n", len(rows))
		}
		if _, err := secrets.GetAPIKey(); err != nil {
			fmt.Printf("Claude API key: FAILED: %v\n", err)
			ok = false
		} else {
			fmt.Println("Claude API key: OK")
		}
		fmt.Printf("output directory: %s\n", cfg.App.ReportsDir)
		if !ok {
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want weekly, monthly or test)\n", cmd)
		os.Exit(2)
	}
}
