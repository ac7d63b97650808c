package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arlan-hq/meridian/pkg/catalog"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default configuration should validate, got: %v", err)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	first := *cfg
	ApplyDefaults(cfg)

	if cfg.Benefit.ScaleFactor != first.Benefit.ScaleFactor {
		t.Error("ApplyDefaults should be idempotent for scale factor")
	}
	if cfg.Selector.WarmupDecisions != first.Selector.WarmupDecisions {
		t.Error("ApplyDefaults should be idempotent for warmup decisions")
	}
}

func TestApplyDefaults_FillsMissingFloors(t *testing.T) {
	cfg := &Config{}
	cfg.Benefit.Floors = map[string]float64{
		string(catalog.TravelCard): 7.5,
	}
	ApplyDefaults(cfg)

	if cfg.Benefit.Floors[string(catalog.TravelCard)] != 7.5 {
		t.Error("explicit floor should be preserved")
	}
	for _, p := range catalog.All() {
		if cfg.Benefit.Floors[string(p)] <= 0 {
			t.Errorf("product %q should have a positive default floor", p)
		}
	}
}

func TestValidate_RejectsBadQuotaTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quota.Targets["travel_card"] = 1.5

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for quota target > 1")
	}
	if !strings.Contains(err.Error(), "quota.targets.travel_card") {
		t.Errorf("error should name the offending field, got: %v", err)
	}
}

func TestValidate_RejectsUnknownProduct(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quota.Targets["mortgage"] = 0.1

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for unknown catalog product")
	}
}

func TestValidate_RejectsQuotaWeightAboveBenefitWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selector.QuotaWeight = 0.95

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error when quota weight dominates benefit weight")
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.ClientsPath = ""
	cfg.Store.Backend = "postgres"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) < 2 {
		t.Errorf("expected at least 2 field errors, got %d", len(verr.Errors))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
data:
  clients_path: /tmp/clients.csv
selector:
  warmup_decisions: 30
quota:
  default_target: 0.12
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Data.ClientsPath != "/tmp/clients.csv" {
		t.Errorf("clients_path = %q, want override", cfg.Data.ClientsPath)
	}
	if cfg.Selector.WarmupDecisions != 30 {
		t.Errorf("warmup_decisions = %d, want 30", cfg.Selector.WarmupDecisions)
	}
	if cfg.Quota.DefaultTarget != 0.12 {
		t.Errorf("default_target = %v, want 0.12", cfg.Quota.DefaultTarget)
	}
	// Unset fields fall back to defaults.
	if cfg.Selector.NearTieMargin != DefaultNearTieMargin {
		t.Errorf("near_tie_margin = %v, want default", cfg.Selector.NearTieMargin)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MERIDIAN_SELECTOR_WARMUP_DECISIONS", "50")
	t.Setenv("MERIDIAN_STORE_BACKEND", "sqlite")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}
	if cfg.Selector.WarmupDecisions != 50 {
		t.Errorf("warmup_decisions = %d, want 50 from env", cfg.Selector.WarmupDecisions)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("store backend = %q, want sqlite from env", cfg.Store.Backend)
	}
}
