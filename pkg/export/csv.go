package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"arlan-hq/meridian/pkg/store"
)

// CSVExporter writes decisions in the delivery CSV format:
// client_code, product, push_notification.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// Export writes the records to w.
func (e *CSVExporter) Export(records []store.DecisionRecord, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write([]string{"client_code", "product", "push_notification"}); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ClientCode, 10),
			rec.Product,
			rec.PushText,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing decision for client %d: %w", rec.ClientCode, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFile writes the records to a CSV file, creating or truncating it.
func (e *CSVExporter) ExportFile(records []store.DecisionRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := e.Export(records, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
