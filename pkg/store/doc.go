// Package store persists committed decisions. Two backends are
// provided: an in-memory store for one-shot runs and tests, and a SQLite
// store for deployments that need decisions to survive restarts and be
// queryable across runs.
package store
