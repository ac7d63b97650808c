package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arlan-hq/meridian/internal/synthetic"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/store"
	"arlan-hq/meridian/pkg/telemetry/logging"
	"arlan-hq/meridian/pkg/telemetry/metrics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Data.ClientsPath = filepath.Join(dir, "clients.csv")
	cfg.Data.TransactionsPath = filepath.Join(dir, "transactions.csv")
	cfg.Data.TransfersPath = filepath.Join(dir, "transfers.csv")
	cfg.Data.OutputPath = filepath.Join(dir, "output.csv")
	cfg.Data.DiagnosticsPath = filepath.Join(dir, "diagnostics.json")
	cfg.Pipeline.ProgressInterval = 25

	err := synthetic.WriteCSV(
		cfg.Data.ClientsPath, cfg.Data.TransactionsPath, cfg.Data.TransfersPath, 60, 42)
	if err != nil {
		t.Fatalf("writing sample datasets: %v", err)
	}
	return cfg
}

func newTestRunner(t *testing.T, cfg *config.Config) (*Runner, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	return NewRunner(cfg, logging.Discard(), collector, st), st
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	runner, st := newTestRunner(t, cfg)

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Clients != 60 {
		t.Errorf("clients = %d, want 60", summary.Clients)
	}
	if summary.Decisions != 60 || summary.Skipped != 0 {
		t.Errorf("decisions/skipped = %d/%d, want 60/0", summary.Decisions, summary.Skipped)
	}

	var shareSum float64
	for _, s := range summary.Shares {
		shareSum += s
	}
	if shareSum < 0.999 || shareSum > 1.001 {
		t.Errorf("shares sum to %v, want 1", shareSum)
	}

	records, err := st.List(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 60 {
		t.Fatalf("stored %d records, want 60", len(records))
	}
	for _, rec := range records {
		if rec.PushText == "" {
			t.Errorf("client %d has no push text", rec.ClientCode)
		}
		if rec.Propensity < 0 || rec.Propensity > 1 {
			t.Errorf("client %d: propensity %v outside [0,1]", rec.ClientCode, rec.Propensity)
		}
		if rec.Cluster < 0 || rec.Cluster >= cfg.Segment.Clusters {
			t.Errorf("client %d cluster = %d, want within [0, %d)",
				rec.ClientCode, rec.Cluster, cfg.Segment.Clusters)
		}
	}

	data, err := os.ReadFile(cfg.Data.OutputPath)
	if err != nil {
		t.Fatalf("reading output csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 61 {
		t.Errorf("output csv has %d lines, want header + 60", len(lines))
	}

	diag, err := os.ReadFile(cfg.Data.DiagnosticsPath)
	if err != nil {
		t.Fatalf("reading diagnostics json: %v", err)
	}
	if !strings.Contains(string(diag), summary.RunID) {
		t.Error("diagnostics json does not carry the run ID")
	}
}

func TestRun_FreshTrackerPerRun(t *testing.T) {
	cfg := testConfig(t)
	runner, _ := newTestRunner(t, cfg)

	a, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	b, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if a.RunID == b.RunID {
		t.Error("each run should get a unique run ID")
	}
	// Identical input and a fresh tracker must reproduce the shares.
	for p, share := range a.Shares {
		if b.Shares[p] != share {
			t.Errorf("share of %s changed across runs: %v vs %v", p, share, b.Shares[p])
		}
	}
}

func TestRun_MissingDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.ClientsPath = filepath.Join(t.TempDir(), "absent.csv")
	runner, _ := newTestRunner(t, cfg)

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing clients dataset")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := testConfig(t)
	runner, _ := newTestRunner(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v, interrupted batches are still valid", err)
	}
	if summary.Decisions != 0 {
		t.Errorf("decisions = %d, want 0 for pre-canceled context", summary.Decisions)
	}
}
