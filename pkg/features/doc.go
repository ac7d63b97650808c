// Package features defines the per-client feature vector consumed by the
// recommendation engine.
//
// A ClientFeatures value is produced once by the ingest pipeline and then
// treated as read-only for the duration of a decision. Every accessor
// substitutes zero for absent fields: a missing spend category or transfer
// kind is never an error, it is simply no observed activity.
package features
