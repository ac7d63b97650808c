package config

import "arlan-hq/meridian/pkg/catalog"

// Default values for configuration fields.
const (
	// Data defaults
	DefaultClientsPath      = "data/clients.csv"
	DefaultTransactionsPath = "data/transactions.csv"
	DefaultTransfersPath    = "data/transfers.csv"
	DefaultOutputPath       = "data/output.csv"
	DefaultBaseCurrency     = "KZT"

	// Benefit defaults
	DefaultWindowMonths        = 3
	DefaultScaleFactor         = 100.0
	DefaultHighBalance         = 1_000_000.0
	DefaultTravelCashbackRate  = 0.04
	DefaultTravelMonthlyCap    = 10_000.0
	DefaultPremiumMonthlyCap   = 100_000.0
	DefaultPremiumTier1Balance = 1_000_000.0
	DefaultPremiumTier2Balance = 6_000_000.0
	DefaultCreditCashbackRate  = 0.10
	DefaultFXSpreadRate        = 0.005
	DefaultFXActivityMin       = 1_000.0
	DefaultLoanRateAdvantage   = 0.06
	DefaultSavingsRate         = 0.165
	DefaultAccumulationRate    = 0.155
	DefaultMulticurrencyRate   = 0.145
	DefaultInvestmentReturn    = 0.08
	DefaultGoldReturn          = 0.04

	// Rules defaults
	DefaultFXVolumeThreshold    = 50_000.0
	DefaultCashDeficitThreshold = 200_000.0
	DefaultLowBalance           = 500_000.0
	DefaultRuleMinBenefit       = 5.0

	// Quota defaults
	DefaultQuotaTarget = 0.10
	DefaultMinShare    = 0.05

	// Selector defaults
	DefaultBenefitWeight    = 0.90
	DefaultQuotaWeight      = 0.15
	DefaultUnderrepBonus    = 0.05
	DefaultMinViableBenefit = 1.0
	DefaultNearTieMargin    = 0.97
	DefaultMonopolyShare    = 0.50
	DefaultOverageMultiple  = 1.2
	DefaultRunnerUpHeadroom = 1.1
	DefaultToleranceFactor  = 1.5
	DefaultWarmupDecisions  = 20

	// Segment defaults
	DefaultClusters      = 4
	DefaultMaxIterations = 100
	DefaultSeed          = 42

	// Notify defaults
	DefaultMaxPushLength  = 220
	DefaultMinPushLength  = 180
	DefaultCurrencySymbol = "₸"

	// Store defaults
	DefaultStoreBackend = "memory"
	DefaultSQLitePath   = "data/decisions.db"
	DefaultMaxOpenConns = 10
	DefaultMaxIdleConns = 5

	// Pipeline defaults
	DefaultProgressInterval = 100
	DefaultDebounceMillis   = 500

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "meridian"
	DefaultMetricsSubsystem = "engine"
)

// defaultQuotaTargets holds the per-product target shares tuned for the
// reference catalog. Shares deliberately do not sum to 1.
var defaultQuotaTargets = map[string]float64{
	string(catalog.CreditCard):           0.20,
	string(catalog.SavingsDeposit):       0.15,
	string(catalog.PremiumCard):          0.12,
	string(catalog.TravelCard):           0.10,
	string(catalog.AccumulationDeposit):  0.10,
	string(catalog.FXExchange):           0.08,
	string(catalog.MulticurrencyDeposit): 0.08,
	string(catalog.Investments):          0.06,
	string(catalog.GoldBars):             0.06,
	string(catalog.CashLoan):             0.05,
}

// defaultFloors holds the minimum benefit per product, guaranteeing a
// strictly positive score even for a client with zero activity.
var defaultFloors = map[string]float64{
	string(catalog.TravelCard):           0.10,
	string(catalog.PremiumCard):          1.00,
	string(catalog.CreditCard):           2.00,
	string(catalog.FXExchange):           0.50,
	string(catalog.CashLoan):             0.50,
	string(catalog.MulticurrencyDeposit): 0.25,
	string(catalog.SavingsDeposit):       3.00,
	string(catalog.AccumulationDeposit):  2.00,
	string(catalog.Investments):          1.00,
	string(catalog.GoldBars):             2.00,
}

// DefaultQuotaTargets returns a copy of the built-in quota targets.
func DefaultQuotaTargets() map[string]float64 {
	out := make(map[string]float64, len(defaultQuotaTargets))
	for k, v := range defaultQuotaTargets {
		out[k] = v
	}
	return out
}

// DefaultFloors returns a copy of the built-in benefit floors.
func DefaultFloors() map[string]float64 {
	out := make(map[string]float64, len(defaultFloors))
	for k, v := range defaultFloors {
		out[k] = v
	}
	return out
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Data defaults
	if cfg.Data.ClientsPath == "" {
		cfg.Data.ClientsPath = DefaultClientsPath
	}
	if cfg.Data.TransactionsPath == "" {
		cfg.Data.TransactionsPath = DefaultTransactionsPath
	}
	if cfg.Data.TransfersPath == "" {
		cfg.Data.TransfersPath = DefaultTransfersPath
	}
	if cfg.Data.OutputPath == "" {
		cfg.Data.OutputPath = DefaultOutputPath
	}
	if cfg.Data.BaseCurrency == "" {
		cfg.Data.BaseCurrency = DefaultBaseCurrency
	}
	if cfg.Data.CurrencyRates == nil {
		cfg.Data.CurrencyRates = map[string]float64{
			"KZT": 1.0,
			"USD": 480.0,
			"EUR": 530.0,
		}
	}

	// Benefit defaults
	b := &cfg.Benefit
	if b.WindowMonths == 0 {
		b.WindowMonths = DefaultWindowMonths
	}
	if b.ScaleFactor == 0 {
		b.ScaleFactor = DefaultScaleFactor
	}
	if b.HighBalance == 0 {
		b.HighBalance = DefaultHighBalance
	}
	if b.TravelCashbackRate == 0 {
		b.TravelCashbackRate = DefaultTravelCashbackRate
	}
	if b.TravelMonthlyCap == 0 {
		b.TravelMonthlyCap = DefaultTravelMonthlyCap
	}
	if b.PremiumMonthlyCap == 0 {
		b.PremiumMonthlyCap = DefaultPremiumMonthlyCap
	}
	if b.PremiumTier1Balance == 0 {
		b.PremiumTier1Balance = DefaultPremiumTier1Balance
	}
	if b.PremiumTier2Balance == 0 {
		b.PremiumTier2Balance = DefaultPremiumTier2Balance
	}
	if b.CreditCashbackRate == 0 {
		b.CreditCashbackRate = DefaultCreditCashbackRate
	}
	if b.FXSpreadRate == 0 {
		b.FXSpreadRate = DefaultFXSpreadRate
	}
	if b.FXActivityMin == 0 {
		b.FXActivityMin = DefaultFXActivityMin
	}
	if b.LoanRateAdvantage == 0 {
		b.LoanRateAdvantage = DefaultLoanRateAdvantage
	}
	if b.SavingsRate == 0 {
		b.SavingsRate = DefaultSavingsRate
	}
	if b.AccumulationRate == 0 {
		b.AccumulationRate = DefaultAccumulationRate
	}
	if b.MulticurrencyRate == 0 {
		b.MulticurrencyRate = DefaultMulticurrencyRate
	}
	if b.InvestmentReturn == 0 {
		b.InvestmentReturn = DefaultInvestmentReturn
	}
	if b.GoldReturn == 0 {
		b.GoldReturn = DefaultGoldReturn
	}
	if b.Floors == nil {
		b.Floors = DefaultFloors()
	} else {
		// Fill in floors for any product the file left out.
		for product, floor := range defaultFloors {
			if _, ok := b.Floors[product]; !ok {
				b.Floors[product] = floor
			}
		}
	}

	// Rules defaults
	if cfg.Rules.FXVolumeThreshold == 0 {
		cfg.Rules.FXVolumeThreshold = DefaultFXVolumeThreshold
	}
	if cfg.Rules.CashDeficitThreshold == 0 {
		cfg.Rules.CashDeficitThreshold = DefaultCashDeficitThreshold
	}
	if cfg.Rules.LowBalance == 0 {
		cfg.Rules.LowBalance = DefaultLowBalance
	}
	if cfg.Rules.MinBenefit == 0 {
		cfg.Rules.MinBenefit = DefaultRuleMinBenefit
	}

	// Quota defaults
	if cfg.Quota.Targets == nil {
		cfg.Quota.Targets = DefaultQuotaTargets()
	}
	if cfg.Quota.DefaultTarget == 0 {
		cfg.Quota.DefaultTarget = DefaultQuotaTarget
	}
	if cfg.Quota.MinShare == 0 {
		cfg.Quota.MinShare = DefaultMinShare
	}

	// Selector defaults
	s := &cfg.Selector
	if s.BenefitWeight == 0 {
		s.BenefitWeight = DefaultBenefitWeight
	}
	if s.QuotaWeight == 0 {
		s.QuotaWeight = DefaultQuotaWeight
	}
	if s.UnderrepBonus == 0 {
		s.UnderrepBonus = DefaultUnderrepBonus
	}
	if s.MinViableBenefit == 0 {
		s.MinViableBenefit = DefaultMinViableBenefit
	}
	if s.NearTieMargin == 0 {
		s.NearTieMargin = DefaultNearTieMargin
	}
	if s.MonopolyShare == 0 {
		s.MonopolyShare = DefaultMonopolyShare
	}
	if s.OverageMultiple == 0 {
		s.OverageMultiple = DefaultOverageMultiple
	}
	if s.RunnerUpHeadroom == 0 {
		s.RunnerUpHeadroom = DefaultRunnerUpHeadroom
	}
	if s.ToleranceFactor == 0 {
		s.ToleranceFactor = DefaultToleranceFactor
	}
	if s.WarmupDecisions == 0 {
		s.WarmupDecisions = DefaultWarmupDecisions
	}

	// Segment defaults
	if cfg.Segment.Clusters == 0 {
		cfg.Segment.Clusters = DefaultClusters
	}
	if cfg.Segment.MaxIterations == 0 {
		cfg.Segment.MaxIterations = DefaultMaxIterations
	}
	if cfg.Segment.Seed == 0 {
		cfg.Segment.Seed = DefaultSeed
	}

	// Notify defaults
	if cfg.Notify.MaxLength == 0 {
		cfg.Notify.MaxLength = DefaultMaxPushLength
	}
	if cfg.Notify.MinLength == 0 {
		cfg.Notify.MinLength = DefaultMinPushLength
	}
	if cfg.Notify.CurrencySymbol == "" {
		cfg.Notify.CurrencySymbol = DefaultCurrencySymbol
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = DefaultSQLitePath
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Store.MaxIdleConns == 0 {
		cfg.Store.MaxIdleConns = DefaultMaxIdleConns
	}

	// Pipeline defaults
	if cfg.Pipeline.ProgressInterval == 0 {
		cfg.Pipeline.ProgressInterval = DefaultProgressInterval
	}
	if cfg.Pipeline.DebounceMillis == 0 {
		cfg.Pipeline.DebounceMillis = DefaultDebounceMillis
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = true
	cfg.Store.WALMode = true
	ApplyDefaults(cfg)
	return cfg
}
