package models

import (
	"strings"
	"time"
)

// MovementType classifies a relocation by the kinds of its endpoints.
type MovementType string

const (
	// MovementFull is a site-to-site relocation.
	MovementFull MovementType = "Full"
	// MovementHalf has exactly one warehouse endpoint.
	MovementHalf MovementType = "Half"
	// MovementZero is warehouse-to-warehouse, or has an unresolvable endpoint.
	MovementZero MovementType = "Zero"
)

// ParseMovementType maps an operator-entered movement type onto the enum.
// The empty string signals "not provided"; the classifier decides instead.
func ParseMovementType(s string) MovementType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return MovementFull
	case "half":
		return MovementHalf
	case "zero":
		return MovementZero
	default:
		return ""
	}
}

// RoyalCategory is the mutually exclusive priority/purpose classification of
// a movement.
type RoyalCategory string

const (
	CategoryRoyal  RoyalCategory = "ROYAL"
	CategoryEBU    RoyalCategory = "EBU"
	CategoryNonEBU RoyalCategory = "NON EBU"
)

// ClassifyRoyalCategory maps the sheet's flag text onto exactly one category.
// Total and deterministic: anything that is not "royal" or "ebu" falls into
// NON EBU, including the empty string.
func ClassifyRoyalCategory(flag string) RoyalCategory {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "royal":
		return CategoryRoyal
	case "ebu":
		return CategoryEBU
	default:
		return CategoryNonEBU
	}
}

// CowMovementsFact is one recorded relocation. Facts are append-only: once
// normalized they are never updated or deleted.
type CowMovementsFact struct {
	Seq             int           `json:"seq" db:"seq"`
	CowID           string        `json:"cow_id" db:"cow_id"`
	FromLocationID  string        `json:"from_location_id" db:"from_location_id"`
	FromSubLocation string        `json:"from_sub_location,omitempty" db:"from_sub_location"`
	ToLocationID    string        `json:"to_location_id" db:"to_location_id"`
	ToSubLocation   string        `json:"to_sub_location,omitempty" db:"to_sub_location"`
	MovedAt         time.Time     `json:"moved_at" db:"moved_at"`
	ReachedAt       time.Time     `json:"reached_at" db:"reached_at"`
	MovementType    MovementType  `json:"movement_type" db:"movement_type"`
	DistanceKM      float64       `json:"distance_km" db:"distance_km"`
	RoyalCategory   RoyalCategory `json:"royal_category" db:"royal_category"`
	EventID         string        `json:"event_id,omitempty" db:"event_id"`
	EventType       EventType     `json:"event_type" db:"event_type"`
	FromRegion      Region        `json:"from_region" db:"from_region"`
	ToRegion        Region        `json:"to_region" db:"to_region"`
}

// Year returns the calendar year of the movement's departure timestamp.
func (f *CowMovementsFact) Year() int {
	if f.MovedAt.IsZero() {
		return 0
	}
	return f.MovedAt.Year()
}
