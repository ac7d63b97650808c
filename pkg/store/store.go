package store

import (
	"context"
	"fmt"
	"time"

	"arlan-hq/meridian/pkg/config"
)

// DecisionRecord is one persisted decision.
type DecisionRecord struct {
	// RunID identifies the batch run the decision belongs to.
	RunID string

	// ClientCode identifies the client.
	ClientCode int64

	// Product is the chosen product identifier.
	Product string

	// Score is the chosen product's benefit score.
	Score float64

	// Reason records the selection path ("scored", "mandatory", ...).
	Reason string

	// Cluster is the client's behavioral cluster label at decision time.
	Cluster int

	// Propensity is the client's affinity estimate for the chosen
	// product.
	Propensity float64

	// PushText is the rendered notification, empty when rendering was
	// skipped.
	PushText string

	// CreatedAt is when the decision was committed.
	CreatedAt time.Time
}

// Store persists decision records.
type Store interface {
	// Save persists one decision.
	Save(ctx context.Context, rec DecisionRecord) error

	// List returns all decisions of a run ordered by client code.
	List(ctx context.Context, runID string) ([]DecisionRecord, error)

	// Counts returns per-product decision counts for a run.
	Counts(ctx context.Context, runID string) (map[string]int64, error)

	// Close releases backend resources.
	Close() error
}

// Open creates the store selected by the configuration.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
