package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// MERIDIAN_SECTION_FIELD (e.g., MERIDIAN_DATA_CLIENTS_PATH) and always take
// precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format MERIDIAN_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Data overrides
	setString("MERIDIAN_DATA_CLIENTS_PATH", &cfg.Data.ClientsPath)
	setString("MERIDIAN_DATA_TRANSACTIONS_PATH", &cfg.Data.TransactionsPath)
	setString("MERIDIAN_DATA_TRANSFERS_PATH", &cfg.Data.TransfersPath)
	setString("MERIDIAN_DATA_OUTPUT_PATH", &cfg.Data.OutputPath)
	setString("MERIDIAN_DATA_DIAGNOSTICS_PATH", &cfg.Data.DiagnosticsPath)
	setString("MERIDIAN_DATA_BASE_CURRENCY", &cfg.Data.BaseCurrency)

	// Benefit overrides
	setInt("MERIDIAN_BENEFIT_WINDOW_MONTHS", &cfg.Benefit.WindowMonths)
	setFloat("MERIDIAN_BENEFIT_SCALE_FACTOR", &cfg.Benefit.ScaleFactor)
	setFloat("MERIDIAN_BENEFIT_HIGH_BALANCE", &cfg.Benefit.HighBalance)

	// Rules overrides
	setFloat("MERIDIAN_RULES_FX_VOLUME_THRESHOLD", &cfg.Rules.FXVolumeThreshold)
	setFloat("MERIDIAN_RULES_CASH_DEFICIT_THRESHOLD", &cfg.Rules.CashDeficitThreshold)
	setFloat("MERIDIAN_RULES_LOW_BALANCE", &cfg.Rules.LowBalance)

	// Quota overrides
	setFloat("MERIDIAN_QUOTA_DEFAULT_TARGET", &cfg.Quota.DefaultTarget)
	setFloat("MERIDIAN_QUOTA_MIN_SHARE", &cfg.Quota.MinShare)

	// Selector overrides
	setFloat("MERIDIAN_SELECTOR_BENEFIT_WEIGHT", &cfg.Selector.BenefitWeight)
	setFloat("MERIDIAN_SELECTOR_QUOTA_WEIGHT", &cfg.Selector.QuotaWeight)
	setInt("MERIDIAN_SELECTOR_WARMUP_DECISIONS", &cfg.Selector.WarmupDecisions)

	// Notify overrides
	setInt("MERIDIAN_NOTIFY_MAX_LENGTH", &cfg.Notify.MaxLength)
	setString("MERIDIAN_NOTIFY_TEMPLATE_DIR", &cfg.Notify.TemplateDir)

	// Store overrides
	setString("MERIDIAN_STORE_BACKEND", &cfg.Store.Backend)
	setString("MERIDIAN_STORE_SQLITE_PATH", &cfg.Store.SQLitePath)

	// Pipeline overrides
	setString("MERIDIAN_PIPELINE_SCHEDULE", &cfg.Pipeline.Schedule)
	if val := os.Getenv("MERIDIAN_PIPELINE_WATCH"); val != "" {
		cfg.Pipeline.Watch = isTruthy(val)
	}

	// Telemetry overrides
	setString("MERIDIAN_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	setString("MERIDIAN_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	setString("MERIDIAN_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	if val := os.Getenv("MERIDIAN_METRICS_ENABLED"); val != "" {
		cfg.Telemetry.Metrics.Enabled = isTruthy(val)
	}
}

func setString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func setFloat(key string, dst *float64) {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = f
		}
	}
}

func isTruthy(val string) bool {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
