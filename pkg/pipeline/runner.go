package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"arlan-hq/meridian/pkg/benefit"
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/export"
	"arlan-hq/meridian/pkg/features"
	"arlan-hq/meridian/pkg/ingest"
	"arlan-hq/meridian/pkg/notify"
	"arlan-hq/meridian/pkg/quota"
	"arlan-hq/meridian/pkg/rules"
	"arlan-hq/meridian/pkg/segment"
	"arlan-hq/meridian/pkg/selector"
	"arlan-hq/meridian/pkg/store"
	"arlan-hq/meridian/pkg/telemetry/logging"
	"arlan-hq/meridian/pkg/telemetry/metrics"
)

// Summary describes one completed batch run.
type Summary struct {
	RunID     string
	Clients   int
	Decisions int
	Skipped   int
	Shares    map[catalog.Product]float64
	Duration  time.Duration
}

// Runner executes batch runs against a fixed configuration.
type Runner struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *metrics.Collector
	store   store.Store
}

// NewRunner creates a batch runner. The store is owned by the caller and
// shared across runs.
func NewRunner(cfg *config.Config, log *logging.Logger, collector *metrics.Collector, st store.Store) *Runner {
	return &Runner{cfg: cfg, log: log, metrics: collector, store: st}
}

// Run executes one batch: load, cluster, decide, render, persist,
// export. Each run gets a fresh quota tracker and a unique run ID.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := r.log.With("run_id", runID)

	log.Info("batch run starting")

	clients, err := ingest.NewLoader(r.cfg.Data, r.log).Load()
	if err != nil {
		r.metrics.RecordBatch("error", time.Since(start))
		return nil, fmt.Errorf("ingesting datasets: %w", err)
	}
	if len(clients) == 0 {
		r.metrics.RecordBatch("empty", time.Since(start))
		return nil, fmt.Errorf("no clients in %s", r.cfg.Data.ClientsPath)
	}

	segment.Assign(clients, r.cfg.Segment)
	clusterCounts := map[int]int{}
	for _, c := range clients {
		clusterCounts[c.Cluster]++
	}
	log.Info("clients clustered", "clusters", len(clusterCounts))
	for label, n := range clusterCounts {
		log.Debug("cluster size", "cluster", label, "clients", n)
	}
	segment.AddPropensities(clients)

	model := benefit.NewModel(r.cfg.Benefit)
	checker := rules.NewChecker(r.cfg.Rules, r.cfg.Selector)
	tracker := quota.NewTracker(r.cfg.Quota)
	sel := selector.New(r.cfg.Selector, model, checker, tracker)

	renderer, err := notify.NewRenderer(r.cfg.Notify, r.cfg.Benefit.ScaleFactor)
	if err != nil {
		r.metrics.RecordBatch("error", time.Since(start))
		return nil, fmt.Errorf("preparing notification templates: %w", err)
	}

	summary := &Summary{RunID: runID, Clients: len(clients)}

	for i, client := range clients {
		if err := ctx.Err(); err != nil {
			// A partially processed batch is valid; committed decisions
			// stay final.
			log.Warn("batch interrupted", "processed", i)
			break
		}

		if err := r.processClient(ctx, runID, sel, renderer, client); err != nil {
			summary.Skipped++
			r.metrics.RecordSkip()
			log.Warn("client skipped", "client_code", client.ClientCode, "error", err)
			continue
		}
		summary.Decisions++

		if n := i + 1; r.cfg.Pipeline.ProgressInterval > 0 && n%r.cfg.Pipeline.ProgressInterval == 0 {
			log.Info("batch progress", "processed", n, "total", len(clients))
		}
	}

	counts, total := tracker.Snapshot()
	summary.Shares = make(map[catalog.Product]float64, len(counts))
	for p, n := range counts {
		if total > 0 {
			summary.Shares[p] = float64(n) / float64(total)
		}
	}
	r.metrics.SetQuotaShares(summary.Shares)

	if err := r.export(ctx, runID); err != nil {
		r.metrics.RecordBatch("error", time.Since(start))
		return nil, err
	}

	summary.Duration = time.Since(start)
	r.metrics.RecordBatch("success", summary.Duration)
	log.Info("batch run finished",
		"clients", summary.Clients,
		"decisions", summary.Decisions,
		"skipped", summary.Skipped,
		"duration", summary.Duration)
	for _, p := range catalog.All() {
		log.Info("product share", "product", string(p), "count", counts[p], "share", summary.Shares[p])
	}
	return summary, nil
}

// processClient selects, renders, and persists one decision. A panic in
// any stage is recovered and reported as that client's error so the
// batch keeps going.
func (r *Runner) processClient(ctx context.Context, runID string, sel *selector.Selector, renderer *notify.Renderer, client *features.ClientFeatures) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic processing client %d: %v", client.ClientCode, rec)
		}
	}()

	start := time.Now()
	decision := sel.Decide(client)
	r.metrics.RecordDecision(decision.Product, string(decision.Reason), time.Since(start))
	if decision.Reason == selector.ReasonMandatory {
		r.metrics.RecordRuleHit(decision.RuleName)
	}

	push, err := renderer.Render(client, decision)
	if err != nil {
		// The decision is already committed; deliver it without a push
		// text rather than dropping it.
		r.log.Warn("push rendering failed", "client_code", client.ClientCode, "error", err)
		push = ""
	}

	return r.store.Save(ctx, store.DecisionRecord{
		RunID:      runID,
		ClientCode: client.ClientCode,
		Product:    string(decision.Product),
		Score:      decision.Score,
		Reason:     string(decision.Reason),
		Cluster:    client.Cluster,
		Propensity: decision.Propensity,
		PushText:   push,
		CreatedAt:  time.Now(),
	})
}

// export writes the run's decisions to the configured output CSV and,
// when a diagnostics path is set, a JSON file with the full records.
func (r *Runner) export(ctx context.Context, runID string) error {
	if r.cfg.Data.OutputPath == "" && r.cfg.Data.DiagnosticsPath == "" {
		return nil
	}
	records, err := r.store.List(ctx, runID)
	if err != nil {
		return fmt.Errorf("listing run decisions: %w", err)
	}
	if r.cfg.Data.OutputPath != "" {
		if err := export.NewCSVExporter(true).ExportFile(records, r.cfg.Data.OutputPath); err != nil {
			return fmt.Errorf("exporting decisions: %w", err)
		}
		r.log.Info("decisions exported", "path", r.cfg.Data.OutputPath, "rows", len(records))
	}
	if r.cfg.Data.DiagnosticsPath != "" {
		if err := export.NewJSONExporter(true).ExportFile(records, r.cfg.Data.DiagnosticsPath); err != nil {
			return fmt.Errorf("exporting diagnostics: %w", err)
		}
		r.log.Info("diagnostics exported", "path", r.cfg.Data.DiagnosticsPath, "rows", len(records))
	}
	return nil
}
