// Meridian is a batch recommendation engine for retail banking products.
//
// It ingests three CSV datasets (clients, transactions, transfers),
// scores every product's expected monthly benefit per client, balances
// the portfolio with quota tracking, and renders a personalized push
// notification for the selected product.
//
// Usage:
//
//	# Run one batch with the default configuration
//	meridian run
//
//	# Run with a custom configuration file
//	meridian run --config /path/to/config.yaml
//
//	# Re-run automatically whenever an input CSV changes
//	meridian run --watch
//
//	# Validate a configuration file
//	meridian validate --config config.yaml
//
//	# Generate synthetic input datasets
//	meridian sample --clients 500 --out data/
//
//	# Measure decision throughput on synthetic clients
//	meridian benchmark --clients 10000
package main

func main() {
	Execute()
}
