// Package pipeline orchestrates batch runs: ingest the datasets, assign
// behavioral clusters, select one product per client, render the push
// notification, persist and export the decisions, and report the final
// distribution.
//
// A run never stops on a single bad client; failures are logged, counted,
// and skipped. The watcher re-runs the batch when an input file changes
// and the scheduler runs it on a cron expression.
package pipeline
