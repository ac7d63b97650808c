package config

import (
	"fmt"
	"strings"

	"arlan-hq/meridian/pkg/catalog"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "quota.targets").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
//
// An empty product catalog or malformed quota targets are configuration
// errors rejected here, never at decision time.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateData(&cfg.Data)...)
	errs = append(errs, validateBenefit(&cfg.Benefit)...)
	errs = append(errs, validateRules(&cfg.Rules)...)
	errs = append(errs, validateQuota(&cfg.Quota)...)
	errs = append(errs, validateSelector(&cfg.Selector)...)
	errs = append(errs, validateSegment(&cfg.Segment)...)
	errs = append(errs, validateNotify(&cfg.Notify)...)
	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateData(cfg *DataConfig) []FieldError {
	var errs []FieldError

	if cfg.ClientsPath == "" {
		errs = append(errs, FieldError{
			Field:   "data.clients_path",
			Message: "clients path is required",
		})
	}
	if cfg.TransactionsPath == "" {
		errs = append(errs, FieldError{
			Field:   "data.transactions_path",
			Message: "transactions path is required",
		})
	}
	if cfg.TransfersPath == "" {
		errs = append(errs, FieldError{
			Field:   "data.transfers_path",
			Message: "transfers path is required",
		})
	}
	if rate, ok := cfg.CurrencyRates[cfg.BaseCurrency]; !ok || rate != 1.0 {
		errs = append(errs, FieldError{
			Field:   "data.currency_rates",
			Message: fmt.Sprintf("base currency %q must be present with rate 1", cfg.BaseCurrency),
		})
	}
	for code, rate := range cfg.CurrencyRates {
		if rate <= 0 {
			errs = append(errs, FieldError{
				Field:   "data.currency_rates." + code,
				Message: "currency rate must be positive",
			})
		}
	}

	return errs
}

func validateBenefit(cfg *BenefitConfig) []FieldError {
	var errs []FieldError

	if cfg.WindowMonths <= 0 {
		errs = append(errs, FieldError{
			Field:   "benefit.window_months",
			Message: "observation window must be at least one month",
		})
	}
	if cfg.ScaleFactor <= 0 {
		errs = append(errs, FieldError{
			Field:   "benefit.scale_factor",
			Message: "scale factor must be positive",
		})
	}

	rates := map[string]float64{
		"benefit.travel_cashback_rate": cfg.TravelCashbackRate,
		"benefit.credit_cashback_rate": cfg.CreditCashbackRate,
		"benefit.fx_spread_rate":       cfg.FXSpreadRate,
		"benefit.loan_rate_advantage":  cfg.LoanRateAdvantage,
		"benefit.savings_rate":         cfg.SavingsRate,
		"benefit.accumulation_rate":    cfg.AccumulationRate,
		"benefit.multicurrency_rate":   cfg.MulticurrencyRate,
		"benefit.investment_return":    cfg.InvestmentReturn,
		"benefit.gold_return":          cfg.GoldReturn,
	}
	for field, rate := range rates {
		if rate <= 0 || rate >= 1 {
			errs = append(errs, FieldError{
				Field:   field,
				Message: "rate must be a fraction in (0, 1)",
			})
		}
	}

	if cfg.PremiumTier2Balance <= cfg.PremiumTier1Balance {
		errs = append(errs, FieldError{
			Field:   "benefit.premium_tier2_balance",
			Message: "tier 2 balance must exceed tier 1 balance",
		})
	}

	for product, floor := range cfg.Floors {
		if _, err := catalog.Parse(product); err != nil {
			errs = append(errs, FieldError{
				Field:   "benefit.floors." + product,
				Message: "not a catalog product",
			})
			continue
		}
		if floor <= 0 {
			errs = append(errs, FieldError{
				Field:   "benefit.floors." + product,
				Message: "floor must be strictly positive",
			})
		}
	}
	// Every catalog product needs a floor so a zero-activity client still
	// gets a positive score for it.
	for _, product := range catalog.All() {
		if _, ok := cfg.Floors[string(product)]; !ok {
			errs = append(errs, FieldError{
				Field:   "benefit.floors",
				Message: fmt.Sprintf("missing floor for product %q", product),
			})
		}
	}

	return errs
}

func validateRules(cfg *RulesConfig) []FieldError {
	var errs []FieldError

	if cfg.FXVolumeThreshold <= 0 {
		errs = append(errs, FieldError{
			Field:   "rules.fx_volume_threshold",
			Message: "threshold must be positive",
		})
	}
	if cfg.CashDeficitThreshold <= 0 {
		errs = append(errs, FieldError{
			Field:   "rules.cash_deficit_threshold",
			Message: "threshold must be positive",
		})
	}
	if cfg.MinBenefit < 0 {
		errs = append(errs, FieldError{
			Field:   "rules.min_benefit",
			Message: "sanity floor cannot be negative",
		})
	}

	return errs
}

func validateQuota(cfg *QuotaConfig) []FieldError {
	var errs []FieldError

	for product, target := range cfg.Targets {
		if _, err := catalog.Parse(product); err != nil {
			errs = append(errs, FieldError{
				Field:   "quota.targets." + product,
				Message: "not a catalog product",
			})
			continue
		}
		if target <= 0 || target > 1 {
			errs = append(errs, FieldError{
				Field:   "quota.targets." + product,
				Message: "target share must be in (0, 1]",
			})
		}
	}
	if cfg.DefaultTarget <= 0 || cfg.DefaultTarget > 1 {
		errs = append(errs, FieldError{
			Field:   "quota.default_target",
			Message: "default target must be in (0, 1]",
		})
	}
	if cfg.MinShare < 0 || cfg.MinShare >= 1 {
		errs = append(errs, FieldError{
			Field:   "quota.min_share",
			Message: "minimum share must be in [0, 1)",
		})
	}

	return errs
}

func validateSelector(cfg *SelectorConfig) []FieldError {
	var errs []FieldError

	if cfg.BenefitWeight <= 0 {
		errs = append(errs, FieldError{
			Field:   "selector.benefit_weight",
			Message: "benefit weight must be positive",
		})
	}
	if cfg.QuotaWeight < 0 {
		errs = append(errs, FieldError{
			Field:   "selector.quota_weight",
			Message: "quota weight cannot be negative",
		})
	}
	if cfg.QuotaWeight >= cfg.BenefitWeight {
		errs = append(errs, FieldError{
			Field:   "selector.quota_weight",
			Message: "quota weight must stay below the benefit weight",
		})
	}
	if cfg.NearTieMargin <= 0 || cfg.NearTieMargin > 1 {
		errs = append(errs, FieldError{
			Field:   "selector.near_tie_margin",
			Message: "near-tie margin must be in (0, 1]",
		})
	}
	if cfg.MonopolyShare <= 0 || cfg.MonopolyShare > 1 {
		errs = append(errs, FieldError{
			Field:   "selector.monopoly_share",
			Message: "monopoly share must be in (0, 1]",
		})
	}
	if cfg.OverageMultiple < 1 {
		errs = append(errs, FieldError{
			Field:   "selector.overage_multiple",
			Message: "overage multiple must be at least 1",
		})
	}
	if cfg.RunnerUpHeadroom < 1 {
		errs = append(errs, FieldError{
			Field:   "selector.runner_up_headroom",
			Message: "runner-up headroom must be at least 1",
		})
	}
	if cfg.ToleranceFactor < 1 {
		errs = append(errs, FieldError{
			Field:   "selector.tolerance_factor",
			Message: "tolerance factor must be at least 1",
		})
	}
	if cfg.WarmupDecisions < 0 {
		errs = append(errs, FieldError{
			Field:   "selector.warmup_decisions",
			Message: "warmup cannot be negative",
		})
	}

	return errs
}

func validateSegment(cfg *SegmentConfig) []FieldError {
	var errs []FieldError

	if cfg.Clusters < 1 {
		errs = append(errs, FieldError{
			Field:   "segment.clusters",
			Message: "at least one cluster is required",
		})
	}
	if cfg.MaxIterations < 1 {
		errs = append(errs, FieldError{
			Field:   "segment.max_iterations",
			Message: "at least one iteration is required",
		})
	}

	return errs
}

func validateNotify(cfg *NotifyConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxLength <= 0 {
		errs = append(errs, FieldError{
			Field:   "notify.max_length",
			Message: "maximum length must be positive",
		})
	}
	if cfg.MinLength > cfg.MaxLength {
		errs = append(errs, FieldError{
			Field:   "notify.min_length",
			Message: "minimum length cannot exceed maximum length",
		})
	}

	return errs
}

func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "store.backend",
			Message: fmt.Sprintf("unknown backend %q (expected \"memory\" or \"sqlite\")", cfg.Backend),
		})
	}
	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{
			Field:   "store.sqlite_path",
			Message: "sqlite path is required for the sqlite backend",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Logging.Level),
		})
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Logging.Format),
		})
	}

	return errs
}
