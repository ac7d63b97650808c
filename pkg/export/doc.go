// Package export writes committed decisions to CSV and JSON. The CSV
// format matches the downstream delivery contract (client_code, product,
// push_notification); JSON adds the diagnostic fields for analysis.
package export
