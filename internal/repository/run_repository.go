package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cowtrack/analytics-backend-go/internal/models"
)

// RunRepository archives ingestion runs in sqlite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun inserts one archived run.
func (r *RunRepository) SaveRun(run *models.IngestRun) error {
	statsJSON, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	kpisJSON, err := json.Marshal(run.KPIs)
	if err != nil {
		return fmt.Errorf("failed to marshal kpis: %w", err)
	}

	res, err := r.db.Exec(`
		INSERT INTO ingest_runs
			(payload_hash, ingested_at, fact_count, cow_count, location_count, event_count, stats_json, kpis_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.PayloadHash, run.IngestedAt.UTC().Format(time.RFC3339),
		run.FactCount, run.CowCount, run.LocationCount, run.EventCount,
		string(statsJSON), string(kpisJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ingest run: %w", err)
	}
	run.ID, _ = res.LastInsertId()
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepository) ListRuns(limit int) ([]models.IngestRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, payload_hash, ingested_at, fact_count, cow_count, location_count, event_count, stats_json, kpis_json
		FROM ingest_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []models.IngestRun
	for rows.Next() {
		var (
			run        models.IngestRun
			ingestedAt string
			statsJSON  string
			kpisJSON   string
		)
		if err := rows.Scan(&run.ID, &run.PayloadHash, &ingestedAt,
			&run.FactCount, &run.CowCount, &run.LocationCount, &run.EventCount,
			&statsJSON, &kpisJSON); err != nil {
			return nil, fmt.Errorf("failed to scan ingest run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ingestedAt); err == nil {
			run.IngestedAt = t
		}
		if err := json.Unmarshal([]byte(statsJSON), &run.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
		}
		if err := json.Unmarshal([]byte(kpisJSON), &run.KPIs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal kpis: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
