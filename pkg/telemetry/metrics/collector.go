package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
)

// Collector registers and records all Meridian metrics.
type Collector struct {
	cfg      config.MetricsConfig
	registry *prometheus.Registry

	decisionsTotal   *prometheus.CounterVec
	decisionDuration prometheus.Histogram
	quotaShare       *prometheus.GaugeVec
	ruleHitsTotal    *prometheus.CounterVec
	clientsSkipped   prometheus.Counter
	batchesTotal     *prometheus.CounterVec
	batchDuration    prometheus.Histogram
}

// NewCollector creates a collector on its own registry. If registry is
// nil a fresh one is created.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "meridian"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "engine"
	}

	c := &Collector{
		cfg:      cfg,
		registry: registry,

		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "decisions_total",
			Help:      "Committed decisions by product and selection reason.",
		}, []string{"product", "reason"}),

		decisionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "decision_duration_seconds",
			Help:      "Time to score and select one client.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),

		quotaShare: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "quota_share",
			Help:      "Running share of decisions per product.",
		}, []string{"product"}),

		ruleHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "mandatory_rule_hits_total",
			Help:      "Mandatory rule activations by rule name.",
		}, []string{"rule"}),

		clientsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "clients_skipped_total",
			Help:      "Clients skipped because their record could not be processed.",
		}),

		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "batches_total",
			Help:      "Completed batch runs by outcome.",
		}, []string{"status"}),

		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "batch_duration_seconds",
			Help:      "End-to-end batch run duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		c.decisionsTotal,
		c.decisionDuration,
		c.quotaShare,
		c.ruleHitsTotal,
		c.clientsSkipped,
		c.batchesTotal,
		c.batchDuration,
	)
	return c
}

// Registry returns the collector's Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordDecision records one committed decision.
func (c *Collector) RecordDecision(product catalog.Product, reason string, duration time.Duration) {
	if !c.cfg.Enabled {
		return
	}
	c.decisionsTotal.WithLabelValues(string(product), reason).Inc()
	c.decisionDuration.Observe(duration.Seconds())
}

// RecordRuleHit records a mandatory rule activation.
func (c *Collector) RecordRuleHit(rule string) {
	if !c.cfg.Enabled {
		return
	}
	c.ruleHitsTotal.WithLabelValues(rule).Inc()
}

// RecordSkip records a client skipped by the pipeline.
func (c *Collector) RecordSkip() {
	if !c.cfg.Enabled {
		return
	}
	c.clientsSkipped.Inc()
}

// SetQuotaShares publishes the current per-product shares.
func (c *Collector) SetQuotaShares(shares map[catalog.Product]float64) {
	if !c.cfg.Enabled {
		return
	}
	for p, share := range shares {
		c.quotaShare.WithLabelValues(string(p)).Set(share)
	}
}

// RecordBatch records one completed batch run.
func (c *Collector) RecordBatch(status string, duration time.Duration) {
	if !c.cfg.Enabled {
		return
	}
	c.batchesTotal.WithLabelValues(status).Inc()
	c.batchDuration.Observe(duration.Seconds())
}
