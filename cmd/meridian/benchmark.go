package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"arlan-hq/meridian/internal/synthetic"
	"arlan-hq/meridian/pkg/benefit"
	"arlan-hq/meridian/pkg/catalog"
	"arlan-hq/meridian/pkg/config"
	"arlan-hq/meridian/pkg/quota"
	"arlan-hq/meridian/pkg/rules"
	"arlan-hq/meridian/pkg/selector"
)

var benchmarkFlags struct {
	clients int
	seed    int64
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Measure decision throughput",
	Long: `Score and select products for a synthetic population and report
decision throughput, latency percentiles, and the resulting product
distribution.

The benchmark exercises the full scoring and selection path but skips
ingestion, rendering, and persistence.

Examples:
  # Default 10000 synthetic clients
  meridian benchmark

  # Larger population, fixed seed
  meridian benchmark --clients 100000 --seed 7`,
	RunE: runBenchmark,
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().IntVar(&benchmarkFlags.clients, "clients", 10000, "number of synthetic clients")
	benchmarkCmd.Flags().Int64Var(&benchmarkFlags.seed, "seed", 42, "random seed")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if benchmarkFlags.clients <= 0 {
		return fmt.Errorf("--clients must be positive, got %d", benchmarkFlags.clients)
	}

	cfg := config.DefaultConfig()
	clients := synthetic.Generate(benchmarkFlags.clients, benchmarkFlags.seed)

	model := benefit.NewModel(cfg.Benefit)
	checker := rules.NewChecker(cfg.Rules, cfg.Selector)
	tracker := quota.NewTracker(cfg.Quota)
	sel := selector.New(cfg.Selector, model, checker, tracker)

	fmt.Println("Meridian Benchmark")
	fmt.Println("==================")
	fmt.Printf("Clients: %d\n", benchmarkFlags.clients)
	fmt.Printf("Seed:    %d\n\n", benchmarkFlags.seed)

	latencies := make([]time.Duration, 0, len(clients))
	start := time.Now()
	for _, client := range clients {
		t0 := time.Now()
		sel.Decide(client)
		latencies = append(latencies, time.Since(t0))
	}
	elapsed := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	pct := func(q float64) time.Duration {
		i := int(q * float64(len(latencies)-1))
		return latencies[i]
	}

	fmt.Printf("Total:      %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Throughput: %.0f decisions/sec\n", float64(len(clients))/elapsed.Seconds())
	fmt.Printf("Latency:    p50 %s, p95 %s, p99 %s, max %s\n\n",
		pct(0.50), pct(0.95), pct(0.99), latencies[len(latencies)-1])

	counts, total := tracker.Snapshot()
	fmt.Println("Product distribution:")
	for _, p := range catalog.All() {
		share := 0.0
		if total > 0 {
			share = float64(counts[p]) / float64(total)
		}
		fmt.Printf("  %-22s %6d  %5.1f%%\n", p.DisplayName(), counts[p], share*100)
	}
	return nil
}
