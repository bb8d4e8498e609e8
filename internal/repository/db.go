package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// all required tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// WAL keeps reads cheap while a run is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			input_file TEXT NOT NULL,
			total_input INTEGER NOT NULL,
			invalid INTEGER NOT NULL,
			valid_records INTEGER NOT NULL,
			filtered_by_region INTEGER NOT NULL,
			filtered_by_amount INTEGER NOT NULL,
			final_count INTEGER NOT NULL,
			total_revenue REAL NOT NULL,
			enrich_attempted INTEGER NOT NULL,
			enrich_matched INTEGER NOT NULL,
			enrich_success_rate REAL NOT NULL,
			report_json TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS enriched_transactions (
			run_id TEXT NOT NULL,
			transaction_id TEXT NOT NULL,
			date TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			customer_id TEXT NOT NULL,
			region TEXT NOT NULL,
			api_category TEXT,
			api_brand TEXT,
			api_rating REAL,
			api_match INTEGER NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_enriched_run ON enriched_transactions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_enriched_region ON enriched_transactions(region)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}
