package models

import "time"

// IngestStats counts every skip and fallback decision taken while
// normalizing one payload. Counters are diagnostics only; they never alter
// the normalized output.
type IngestStats struct {
	RowsTotal         int  `json:"rows_total"`
	RowsAccepted      int  `json:"rows_accepted"`
	RowsSkipped       int  `json:"rows_skipped"`       // Missing mandatory field
	NumericFallbacks  int  `json:"numeric_fallbacks"`  // Non-numeric value in a numeric field
	DateFallbacks     int  `json:"date_fallbacks"`     // Unparseable timestamp
	UnresolvedRefs    int  `json:"unresolved_refs"`    // Movement endpoint absent from the location dimension
	NegativeIdleGaps  int  `json:"negative_idle_gaps"` // ReachedAt earlier than the next MovedAt
	HeaderMatches     int  `json:"header_matches"`     // Logical fields resolved by header text
	FallbackPositions int  `json:"fallback_positions"` // Logical fields resolved by legacy position
	SchemaDrift       bool `json:"schema_drift"`       // Zero header matches succeeded
}

// Snapshot is the full result of one ingestion run: the fact collection,
// the three dimension collections, and the run diagnostics. A snapshot is
// immutable once built; aggregations are pure functions over it.
type Snapshot struct {
	PayloadHash string             `json:"payload_hash"`
	IngestedAt  time.Time          `json:"ingested_at"`
	Facts       []CowMovementsFact `json:"facts"`
	Cows        []DimCow           `json:"cows"`
	Locations   []DimLocation      `json:"locations"`
	Events      []DimEvent         `json:"events"`
	StaticCows  []string           `json:"static_cows"` // Identifiers present only in the static section
	Stats       IngestStats        `json:"stats"`
}

// CowByID returns the cow dimension record for an identifier.
func (s *Snapshot) CowByID(id string) (DimCow, bool) {
	for _, c := range s.Cows {
		if c.CowID == id {
			return c, true
		}
	}
	return DimCow{}, false
}

// LocationByID returns the location dimension record for an identifier.
func (s *Snapshot) LocationByID(id string) (DimLocation, bool) {
	for _, l := range s.Locations {
		if l.LocationID == id {
			return l, true
		}
	}
	return DimLocation{}, false
}

// LocationIndex builds an id → location lookup map.
func (s *Snapshot) LocationIndex() map[string]DimLocation {
	idx := make(map[string]DimLocation, len(s.Locations))
	for _, l := range s.Locations {
		idx[l.LocationID] = l
	}
	return idx
}
