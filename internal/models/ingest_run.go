package models

import "time"

// IngestRun is the archived record of one non-cached ingestion run: what
// came in, what was skipped, and the headline KPIs at that point. The
// analytics engine never reads these back; they exist for the dashboard's
// run-history view and for diagnosing sheet drift over time.
type IngestRun struct {
	ID            int64         `json:"id" db:"id"`
	PayloadHash   string        `json:"payload_hash" db:"payload_hash"`
	IngestedAt    time.Time     `json:"ingested_at" db:"ingested_at"`
	FactCount     int           `json:"fact_count" db:"fact_count"`
	CowCount      int           `json:"cow_count" db:"cow_count"`
	LocationCount int           `json:"location_count" db:"location_count"`
	EventCount    int           `json:"event_count" db:"event_count"`
	Stats         IngestStats   `json:"stats" db:"stats"`
	KPIs          DashboardKPIs `json:"kpis" db:"kpis"`
}
