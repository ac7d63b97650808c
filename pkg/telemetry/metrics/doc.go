// Package metrics provides Prometheus metrics for the recommendation
// pipeline: decision counts by product and reason, decision latency,
// running quota shares, mandatory rule hits, and batch outcomes.
//
// All metrics live on a private registry owned by the Collector so tests
// can instantiate collectors freely without default-registry collisions.
package metrics
