package config

// Config is the root configuration structure for Meridian.
// It contains all configuration sections for data ingestion, the benefit
// model, mandatory rules, the quota-constrained selector, notification
// rendering, persistence, and telemetry.
type Config struct {
	// Data contains paths to the input CSV datasets and currency rates.
	Data DataConfig `yaml:"data"`

	// Benefit contains the benefit model's rates, caps, and floors.
	Benefit BenefitConfig `yaml:"benefit"`

	// Rules contains thresholds for the mandatory business rules that
	// bypass scored selection.
	Rules RulesConfig `yaml:"rules"`

	// Quota contains per-product target shares for the diversity quota.
	Quota QuotaConfig `yaml:"quota"`

	// Selector contains the weights and thresholds of the selection
	// state machine.
	Selector SelectorConfig `yaml:"selector"`

	// Segment contains RFM-D and clustering parameters.
	Segment SegmentConfig `yaml:"segment"`

	// Notify contains push notification rendering settings.
	Notify NotifyConfig `yaml:"notify"`

	// Store contains decision persistence configuration.
	Store StoreConfig `yaml:"store"`

	// Pipeline contains batch orchestration settings.
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DataConfig contains input dataset locations and currency conversion rates.
type DataConfig struct {
	// ClientsPath is the path to the clients CSV file.
	// Default: "data/clients.csv"
	ClientsPath string `yaml:"clients_path"`

	// TransactionsPath is the path to the transactions CSV file.
	// Default: "data/transactions.csv"
	TransactionsPath string `yaml:"transactions_path"`

	// TransfersPath is the path to the transfers CSV file.
	// Default: "data/transfers.csv"
	TransfersPath string `yaml:"transfers_path"`

	// OutputPath is the path the decision CSV is written to.
	// Default: "data/output.csv"
	OutputPath string `yaml:"output_path"`

	// DiagnosticsPath is an optional path for a JSON export carrying
	// the full decision diagnostics (score, reason, run ID). Empty
	// disables it.
	DiagnosticsPath string `yaml:"diagnostics_path"`

	// CurrencyRates maps ISO currency codes to their rate against the
	// base currency. The base currency itself must map to 1.
	// Default: {"KZT": 1, "USD": 480, "EUR": 530}
	CurrencyRates map[string]float64 `yaml:"currency_rates"`

	// BaseCurrency is the currency all amounts are converted into.
	// Default: "KZT"
	BaseCurrency string `yaml:"base_currency"`
}

// BenefitConfig contains the benefit model parameters.
//
// All cashback rates are fractions (0.04 means 4%), deposit and return
// rates are annual, caps are per-month amounts in the base currency, and
// floors are minimum scores guaranteeing every product a strictly
// positive benefit even for a client with zero activity.
type BenefitConfig struct {
	// WindowMonths is the observation window of the input aggregates.
	// Raw totals are divided by this to obtain monthly amounts.
	// Default: 3
	WindowMonths int `yaml:"window_months"`

	// ScaleFactor divides every score so products stay comparable in one
	// currency-rate unit. Selection is invariant to this value.
	// Default: 100
	ScaleFactor float64 `yaml:"scale_factor"`

	// HighBalance is the balance above which a client is treated as
	// affluent by several formulas.
	// Default: 1000000
	HighBalance float64 `yaml:"high_balance"`

	// TravelCashbackRate is the cashback rate on travel, hotel, and taxi
	// spend. Default: 0.04
	TravelCashbackRate float64 `yaml:"travel_cashback_rate"`

	// TravelMonthlyCap caps the travel card's monthly cashback.
	// Default: 10000
	TravelMonthlyCap float64 `yaml:"travel_monthly_cap"`

	// PremiumMonthlyCap caps the premium card's monthly cashback.
	// Default: 100000
	PremiumMonthlyCap float64 `yaml:"premium_monthly_cap"`

	// PremiumTier1Balance and PremiumTier2Balance are the balance
	// thresholds for the 3% and 4% premium cashback tiers; below the
	// first threshold the base 2% rate applies.
	// Defaults: 1000000 and 6000000.
	PremiumTier1Balance float64 `yaml:"premium_tier1_balance"`
	PremiumTier2Balance float64 `yaml:"premium_tier2_balance"`

	// CreditCashbackRate is the cashback rate on the client's top-3
	// categories and online services. Default: 0.10
	CreditCashbackRate float64 `yaml:"credit_cashback_rate"`

	// FXSpreadRate is the spread savings rate on exchange volume.
	// Default: 0.005
	FXSpreadRate float64 `yaml:"fx_spread_rate"`

	// FXActivityMin is the 3-month exchange volume below which the
	// exchange product earns only its floor. Default: 1000
	FXActivityMin float64 `yaml:"fx_activity_min"`

	// LoanRateAdvantage is the annual interest saved against market
	// alternatives when a cash loan covers a deficit. Default: 0.06
	LoanRateAdvantage float64 `yaml:"loan_rate_advantage"`

	// SavingsRate, AccumulationRate, and MulticurrencyRate are the
	// annual deposit rates. Defaults: 0.165, 0.155, 0.145.
	SavingsRate       float64 `yaml:"savings_rate"`
	AccumulationRate  float64 `yaml:"accumulation_rate"`
	MulticurrencyRate float64 `yaml:"multicurrency_rate"`

	// InvestmentReturn is the assumed conservative annual return on the
	// invested portion of the balance. Default: 0.08
	InvestmentReturn float64 `yaml:"investment_return"`

	// GoldReturn is the assumed annual appreciation on the gold
	// allocation. Default: 0.04
	GoldReturn float64 `yaml:"gold_return"`

	// Floors maps product identifiers to their minimum score. Every
	// catalog product receives a strictly positive default floor.
	Floors map[string]float64 `yaml:"floors"`
}

// RulesConfig contains thresholds for the mandatory-rule checker.
type RulesConfig struct {
	// FXVolumeThreshold is the 3-month exchange volume that forces the
	// currency exchange product. Default: 50000
	FXVolumeThreshold float64 `yaml:"fx_volume_threshold"`

	// CashDeficitThreshold is the 3-month transfer deficit that, combined
	// with a low balance, forces the cash loan product. Default: 200000
	CashDeficitThreshold float64 `yaml:"cash_deficit_threshold"`

	// LowBalance is the balance below which a deficit client is
	// considered credit-constrained. Default: 500000
	LowBalance float64 `yaml:"low_balance"`

	// MinBenefit is the sanity floor a forced product's own score must
	// clear before the rule may fire. Default: 5
	MinBenefit float64 `yaml:"min_benefit"`
}

// QuotaConfig contains per-product target shares of the decision stream.
//
// Targets are advisory ceilings, not a partition: they need not sum to 1
// and the selector still produces a decision when every quota is
// saturated.
type QuotaConfig struct {
	// Targets maps product identifiers to their target share in (0, 1].
	// Products without an entry use DefaultTarget.
	Targets map[string]float64 `yaml:"targets"`

	// DefaultTarget is the target share for products absent from Targets.
	// Default: 0.10
	DefaultTarget float64 `yaml:"default_target"`

	// MinShare is the floor share below which a product is considered
	// underrepresented. Default: 0.05
	MinShare float64 `yaml:"min_share"`
}

// SelectorConfig contains the weights and thresholds of the selection
// state machine. See pkg/selector for how each field is applied.
type SelectorConfig struct {
	// BenefitWeight scales the normalized benefit term. Default: 0.90
	BenefitWeight float64 `yaml:"benefit_weight"`

	// QuotaWeight scales the quota overage penalty. Default: 0.15
	QuotaWeight float64 `yaml:"quota_weight"`

	// UnderrepBonus scales the underrepresentation bonus. Default: 0.05
	UnderrepBonus float64 `yaml:"underrep_bonus"`

	// MinViableBenefit is the score below which a product is dropped
	// from consideration, unless that would empty the candidate set.
	// Default: 1
	MinViableBenefit float64 `yaml:"min_viable_benefit"`

	// NearTieMargin is the runner-up/leader score ratio above which the
	// two are treated as a near-tie. Default: 0.97
	NearTieMargin float64 `yaml:"near_tie_margin"`

	// MonopolyShare is the running share above which the anti-monopoly
	// rule demotes a near-tied leader. Default: 0.50
	MonopolyShare float64 `yaml:"monopoly_share"`

	// OverageMultiple is how far past its quota the leader must be for a
	// near-tied runner-up to win. Default: 1.2
	OverageMultiple float64 `yaml:"overage_multiple"`

	// RunnerUpHeadroom is how far under its own quota the runner-up must
	// remain for the anti-monopoly swap. Default: 1.1
	RunnerUpHeadroom float64 `yaml:"runner_up_headroom"`

	// ToleranceFactor is the quota multiple a share must exceed before
	// the overage penalty applies. Default: 1.5
	ToleranceFactor float64 `yaml:"tolerance_factor"`

	// WarmupDecisions is the minimum number of committed decisions
	// before quota statistics influence selection. Default: 20
	WarmupDecisions int `yaml:"warmup_decisions"`
}

// SegmentConfig contains RFM-D and clustering parameters.
type SegmentConfig struct {
	// Clusters is the number of behavioral clusters. Default: 4
	Clusters int `yaml:"clusters"`

	// MaxIterations bounds the k-means loop. Default: 100
	MaxIterations int `yaml:"max_iterations"`

	// Seed makes clustering deterministic across runs. Default: 42
	Seed int64 `yaml:"seed"`
}

// NotifyConfig contains push notification rendering settings.
type NotifyConfig struct {
	// MaxLength is the maximum notification length in characters.
	// Longer texts are truncated at a sentence boundary. Default: 220
	MaxLength int `yaml:"max_length"`

	// MinLength is the soft minimum length; shorter texts are padded
	// with a neutral closing phrase. Default: 180
	MinLength int `yaml:"min_length"`

	// CurrencySymbol is appended to formatted amounts. Default: "₸"
	CurrencySymbol string `yaml:"currency_symbol"`

	// TemplateDir optionally overrides the built-in product templates
	// with files named <product>.tmpl. Empty means built-ins only.
	TemplateDir string `yaml:"template_dir"`
}

// StoreConfig contains decision persistence configuration.
type StoreConfig struct {
	// Backend selects the persistence backend: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path when Backend is "sqlite".
	// Default: "data/decisions.db"
	SQLitePath string `yaml:"sqlite_path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`
}

// PipelineConfig contains batch orchestration settings.
type PipelineConfig struct {
	// ProgressInterval is how many clients are processed between
	// progress log lines. Default: 100
	ProgressInterval int `yaml:"progress_interval"`

	// Schedule is an optional cron expression for periodic batch runs
	// (e.g. "0 3 * * *" for daily at 3 AM). Empty disables scheduling.
	Schedule string `yaml:"schedule"`

	// Watch re-runs the batch whenever an input CSV changes.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceMillis is the quiet period after a filesystem event before
	// a watched re-run starts. Default: 500
	DebounceMillis int `yaml:"debounce_millis"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where the metrics HTTP endpoint listens. Empty
	// disables the endpoint (metrics are still collected).
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "meridian" and "engine".
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}
