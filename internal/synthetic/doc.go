// Package synthetic generates seeded sample datasets: realistic client
// profiles with category spend and transfer activity, both as in-memory
// feature records and as the three input CSV files. Used by the sample
// command and by benchmarks.
package synthetic
