// Package ingest loads the clients, transactions, and transfers CSV
// datasets, converts amounts into the base currency, trims per-client
// outliers, and merges everything into one ClientFeatures record per
// client.
//
// Ingestion is deliberately forgiving: malformed amounts become zero,
// rows missing a category or type are dropped, and the outlier trim
// never removes a client entirely. A dataset-level problem (missing
// file, missing required column) is the only hard error.
package ingest
