package models

import "strings"

// LocationKind distinguishes active deployment sites from storage warehouses.
type LocationKind string

const (
	KindSite      LocationKind = "Site"
	KindWarehouse LocationKind = "Warehouse"
	KindUnknown   LocationKind = "Unknown"
)

// Region is one of the 13 administrative regions, or Unknown.
type Region string

const (
	RegionRiyadh          Region = "Riyadh"
	RegionMakkah          Region = "Makkah"
	RegionMadinah         Region = "Madinah"
	RegionEastern         Region = "Eastern"
	RegionAsir            Region = "Asir"
	RegionTabuk           Region = "Tabuk"
	RegionHail            Region = "Hail"
	RegionNorthernBorders Region = "Northern Borders"
	RegionJazan           Region = "Jazan"
	RegionNajran          Region = "Najran"
	RegionAlBahah         Region = "Al Bahah"
	RegionAlJouf          Region = "Al Jouf"
	RegionQassim          Region = "Qassim"
	RegionUnknown         Region = "Unknown"
)

// AllRegions lists every known region in a fixed display order.
var AllRegions = []Region{
	RegionRiyadh, RegionMakkah, RegionMadinah, RegionEastern, RegionAsir,
	RegionTabuk, RegionHail, RegionNorthernBorders, RegionJazan, RegionNajran,
	RegionAlBahah, RegionAlJouf, RegionQassim,
}

var regionAliases = map[string]Region{
	"riyadh":           RegionRiyadh,
	"makkah":           RegionMakkah,
	"mecca":            RegionMakkah,
	"madinah":          RegionMadinah,
	"medina":           RegionMadinah,
	"eastern":          RegionEastern,
	"eastern province": RegionEastern,
	"asir":             RegionAsir,
	"aseer":            RegionAsir,
	"tabuk":            RegionTabuk,
	"hail":             RegionHail,
	"northern borders": RegionNorthernBorders,
	"jazan":            RegionJazan,
	"jizan":            RegionJazan,
	"najran":           RegionNajran,
	"al bahah":         RegionAlBahah,
	"al baha":          RegionAlBahah,
	"al jouf":          RegionAlJouf,
	"al jawf":          RegionAlJouf,
	"qassim":           RegionQassim,
	"al qassim":        RegionQassim,
}

// ParseRegion maps free-text region values from the sheet onto the fixed
// enum. Unrecognized text maps to RegionUnknown, never to an error.
func ParseRegion(s string) Region {
	if r, ok := regionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r
	}
	return RegionUnknown
}

// ParseLocationKind maps the sheet's location-type text onto a kind.
func ParseLocationKind(s string) LocationKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "site":
		return KindSite
	case "warehouse", "wh", "store":
		return KindWarehouse
	default:
		return KindUnknown
	}
}

// DimLocation represents a deployment site or a warehouse. Reference data.
type DimLocation struct {
	LocationID   string       `json:"location_id" db:"location_id"`
	Name         string       `json:"name" db:"name"`
	Latitude     float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude    float64      `json:"longitude,omitempty" db:"longitude"`
	HasCoords    bool         `json:"has_coords" db:"has_coords"`
	Region       Region       `json:"region" db:"region"`
	Kind         LocationKind `json:"kind" db:"kind"`
	Organization string       `json:"organization,omitempty" db:"organization"`
}
