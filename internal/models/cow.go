package models

import "time"

// DimCow represents a mobile cell unit (Cell On Wheels). Reference data,
// created once at ingestion and never mutated afterwards.
type DimCow struct {
	CowID         string    `json:"cow_id" db:"cow_id"`
	EquipmentType string    `json:"equipment_type,omitempty" db:"equipment_type"`
	TowerHeight   float64   `json:"tower_height,omitempty" db:"tower_height"` // Meters
	Has2G         bool      `json:"has_2g" db:"has_2g"`
	Has3G         bool      `json:"has_3g" db:"has_3g"`
	Has4G         bool      `json:"has_4g" db:"has_4g"`
	Has5G         bool      `json:"has_5g" db:"has_5g"`
	Vendor        string    `json:"vendor" db:"vendor"` // "Unknown" when missing in the source
	OnAirDate     time.Time `json:"on_air_date,omitempty" db:"on_air_date"`
}
