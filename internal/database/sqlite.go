package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the run-archive database and applies the
// pragmas we rely on.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	// WAL so the archive writer never blocks dashboard reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the archive schema. Idempotent.
func Migrate(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS ingest_runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		payload_hash   TEXT    NOT NULL,
		ingested_at    TEXT    NOT NULL,
		fact_count     INTEGER NOT NULL,
		cow_count      INTEGER NOT NULL,
		location_count INTEGER NOT NULL,
		event_count    INTEGER NOT NULL,
		stats_json     TEXT    NOT NULL,
		kpis_json      TEXT    NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ingest_runs_ingested_at ON ingest_runs(ingested_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
