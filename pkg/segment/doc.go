// Package segment derives RFM-D behavioral features (recency,
// frequency, monetary, diversity) for each client and groups clients
// into clusters with a seeded k-means, so downstream scoring can attach
// cluster-level context to every decision.
//
// Clustering is deterministic: the same client set with the same seed
// always yields the same labels.
package segment
