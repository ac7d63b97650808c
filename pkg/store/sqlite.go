package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"arlan-hq/meridian/pkg/config"
)

// SQLiteStore persists decisions in a SQLite database. The database uses
// WAL journaling by default so reads do not block the single writer.
type SQLiteStore struct {
	db *sql.DB

	saveStmt *sql.Stmt
}

// NewSQLiteStore opens (creating if needed) the configured database and
// initializes the schema.
func NewSQLiteStore(cfg config.StoreConfig) (*SQLiteStore, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := cfg.SQLitePath + "?_busy_timeout=5000&_synchronous=NORMAL"
	if cfg.WALMode {
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite supports a single writer.
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if s.saveStmt, err = db.Prepare(`
		INSERT INTO decisions (run_id, client_code, product, score, reason, cluster, propensity, push_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		client_code INTEGER NOT NULL,
		product TEXT NOT NULL,
		score REAL NOT NULL,
		reason TEXT NOT NULL,
		cluster INTEGER NOT NULL DEFAULT 0,
		propensity REAL NOT NULL DEFAULT 0,
		push_text TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_run ON decisions(run_id);
	CREATE INDEX IF NOT EXISTS idx_decisions_client ON decisions(run_id, client_code);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists one decision.
func (s *SQLiteStore) Save(ctx context.Context, rec DecisionRecord) error {
	_, err := s.saveStmt.ExecContext(ctx,
		rec.RunID, rec.ClientCode, rec.Product, rec.Score,
		rec.Reason, rec.Cluster, rec.Propensity, rec.PushText, rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("saving decision for client %d: %w", rec.ClientCode, err)
	}
	return nil
}

// List returns all decisions of a run ordered by client code.
func (s *SQLiteStore) List(ctx context.Context, runID string) ([]DecisionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, client_code, product, score, reason, cluster, propensity, push_text, created_at
		FROM decisions WHERE run_id = ? ORDER BY client_code`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionRecord
	for rows.Next() {
		var rec DecisionRecord
		var push sql.NullString
		var created int64
		if err := rows.Scan(&rec.RunID, &rec.ClientCode, &rec.Product,
			&rec.Score, &rec.Reason, &rec.Cluster, &rec.Propensity, &push, &created); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		rec.PushText = push.String
		rec.CreatedAt = time.UnixMilli(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Counts returns per-product decision counts for a run.
func (s *SQLiteStore) Counts(ctx context.Context, runID string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, COUNT(*) FROM decisions WHERE run_id = ? GROUP BY product`, runID)
	if err != nil {
		return nil, fmt.Errorf("counting decisions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var product string
		var n int64
		if err := rows.Scan(&product, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[product] = n
	}
	return counts, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.saveStmt != nil {
		s.saveStmt.Close()
	}
	return s.db.Close()
}
