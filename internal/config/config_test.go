package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	if !res.OK() {
		t.Fatalf("default config invalid: %v", res.Errors)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Generation.MaxTokens = -1
	cfg.Generation.Model = "  "

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected validation errors")
	}
	if len(res.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", res.Errors)
	}
}

func TestNormalizeDefaultsMaxParallel(t *testing.T) {
	cfg := Default()
	cfg.Generation.MaxParallel = 0

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if out.Generation.MaxParallel != 1 {
		t.Fatalf("max_parallel not defaulted, got %d", out.Generation.MaxParallel)
	}
}

func TestLowTimeoutWarns(t *testing.T) {
	cfg := Default()
	cfg.Generation.TimeoutSeconds = 5

	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("warning should not be an error: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the low timeout")
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.App.Port = 8080

	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.App.Port != 8080 {
		t.Fatalf("port round trip: %d", got.App.Port)
	}
	if got.Generation.Model != cfg.Generation.Model {
		t.Fatalf("model round trip: %q", got.Generation.Model)
	}
}

func TestEnsureUserConfigBootstraps(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load bootstrapped config: %v", err)
	}
	if cfg.App.Port != Default().App.Port {
		t.Fatalf("bootstrapped config differs from defaults")
	}

	// second call must reuse, not overwrite
	again, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if again != path {
		t.Fatalf("path changed across calls: %q vs %q", again, path)
	}
}
