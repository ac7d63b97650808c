package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/pipeline"
	"arlan-hq/meridian/pkg/store"
	"arlan-hq/meridian/pkg/telemetry/logging"
	"arlan-hq/meridian/pkg/telemetry/metrics"
)

var runFlags struct {
	output   string
	watch    bool
	schedule string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the recommendation batch",
	Long: `Run one recommendation batch over the configured input datasets.

Every client gets exactly one product decision and a rendered push
notification. Decisions are persisted to the configured store and
exported to the output CSV.

Examples:
  # Run one batch with the default config
  meridian run

  # Run with a custom config
  meridian run --config /etc/meridian/config.yaml

  # Override the output file
  meridian run --output /tmp/decisions.csv

  # Re-run on every input change
  meridian run --watch

  # Run every night at 02:00
  meridian run --schedule "0 2 * * *"

  # Validate config without running
  meridian run --dry-run`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.output, "output", "o", "", "override output CSV path")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "re-run when an input dataset changes")
	runCmd.Flags().StringVar(&runFlags.schedule, "schedule", "", "cron expression for periodic runs")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without running the batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.output != "" {
		cfg.Data.OutputPath = runFlags.output
	}
	if runFlags.watch {
		cfg.Pipeline.Watch = true
	}
	if runFlags.schedule != "" {
		cfg.Pipeline.Schedule = runFlags.schedule
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	log, err := logging.New(cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	collector.Serve()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening decision store: %w", err)
	}
	defer st.Close()

	runner := pipeline.NewRunner(cfg, log, collector, st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}
	printSummary(summary)

	switch {
	case cfg.Pipeline.Watch:
		rerun := func(ctx context.Context) {
			if s, err := runner.Run(ctx); err != nil {
				log.Error("batch run failed", "error", err)
			} else {
				printSummary(s)
			}
		}
		debounce := time.Duration(cfg.Pipeline.DebounceMillis) * time.Millisecond
		watcher := pipeline.NewWatcher(cfg.Data, debounce, log, rerun)
		fmt.Println("\nWatching input datasets, press Ctrl+C to stop")
		if err := watcher.Watch(ctx); err != nil && ctx.Err() == nil {
			return err
		}

	case cfg.Pipeline.Schedule != "":
		rerun := func(ctx context.Context) {
			if s, err := runner.Run(ctx); err != nil {
				log.Error("batch run failed", "error", err)
			} else {
				printSummary(s)
			}
		}
		scheduler, err := pipeline.NewScheduler(cfg.Pipeline.Schedule, log, rerun)
		if err != nil {
			return err
		}
		fmt.Printf("\nSchedule %q active, press Ctrl+C to stop\n", cfg.Pipeline.Schedule)
		if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}

	return nil
}

func printSummary(s *pipeline.Summary) {
	fmt.Printf("\n✓ Batch %s finished in %s\n", s.RunID, s.Duration.Round(time.Millisecond))
	fmt.Printf("  Clients:   %d\n", s.Clients)
	fmt.Printf("  Decisions: %d\n", s.Decisions)
	fmt.Printf("  Skipped:   %d\n", s.Skipped)
	fmt.Println("  Product shares:")
	for _, p := range catalog.All() {
		fmt.Printf("    %-22s %5.1f%%\n", p.DisplayName(), s.Shares[p]*100)
	}
}
