package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"arlan-hq/meridian/pkg/store"
)

// jsonRecord is the JSON export shape, carrying diagnostics the CSV
// delivery format omits.
type jsonRecord struct {
	RunID      string    `json:"run_id"`
	ClientCode int64     `json:"client_code"`
	Product    string    `json:"product"`
	Score      float64   `json:"score"`
	Reason     string    `json:"reason"`
	Cluster    int       `json:"cluster"`
	Propensity float64   `json:"propensity"`
	PushText   string    `json:"push_notification,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// JSONExporter writes decisions as a JSON array with diagnostic fields.
type JSONExporter struct {
	// Indent pretty-prints the output when set.
	Indent bool
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(indent bool) *JSONExporter {
	return &JSONExporter{Indent: indent}
}

// Export writes the records to w.
func (e *JSONExporter) Export(records []store.DecisionRecord, w io.Writer) error {
	out := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, jsonRecord{
			RunID:      rec.RunID,
			ClientCode: rec.ClientCode,
			Product:    rec.Product,
			Score:      rec.Score,
			Reason:     rec.Reason,
			Cluster:    rec.Cluster,
			Propensity: rec.Propensity,
			PushText:   rec.PushText,
			CreatedAt:  rec.CreatedAt,
		})
	}

	enc := json.NewEncoder(w)
	if e.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding decisions: %w", err)
	}
	return nil
}

// ExportFile writes the records to a JSON file, creating or truncating it.
func (e *JSONExporter) ExportFile(records []store.DecisionRecord, path string) error {
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
