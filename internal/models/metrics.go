package models

// AssetMetrics is the derived per-cow summary. Recomputed in full on every
// run from the current filtered fact set; never persisted independently.
type AssetMetrics struct {
	CowID            string    `json:"cow_id"`
	TotalMovements   int       `json:"total_movements"`
	TotalDistanceKM  float64   `json:"total_distance_km"`
	AvgDistanceKM    float64   `json:"avg_distance_km"`
	FullMovements    int       `json:"full_movements"`
	HalfMovements    int       `json:"half_movements"`
	ZeroMovements    int       `json:"zero_movements"`
	AvgIdleDays      float64   `json:"avg_idle_days"`
	IsStatic         bool      `json:"is_static"`
	RegionsServed    []Region  `json:"regions_served"`
	TopEventType     EventType `json:"top_event_type"`
	NegativeIdleGaps int       `json:"negative_idle_gaps,omitempty"`
}

// SiteMetrics is the derived per-warehouse summary.
type SiteMetrics struct {
	LocationID     string   `json:"location_id"`
	Name           string   `json:"name"`
	Region         Region   `json:"region"`
	OutgoingCount  int      `json:"outgoing_count"`
	IncomingCount  int      `json:"incoming_count"`
	AvgOutDistance float64  `json:"avg_out_distance_km"`
	AvgInDistance  float64  `json:"avg_in_distance_km"`
	TopRegions     []Region `json:"top_regions"`
	TotalIdleDays  float64  `json:"total_idle_days"`
	MedianStayDays float64  `json:"median_stay_days"`
	MatchedStays   int      `json:"matched_stays"`
}

// RegionMetrics is the derived per-region summary.
type RegionMetrics struct {
	Region             Region  `json:"region"`
	DeployedCows       int     `json:"deployed_cows"`
	ActiveCows         int     `json:"active_cows"`
	StaticCows         int     `json:"static_cows"`
	CrossRegionMoves   int     `json:"cross_region_moves"`
	TotalDistanceKM    float64 `json:"total_distance_km"`
	AvgDeploymentHours float64 `json:"avg_deployment_hours"`
}

// DashboardKPIs are the dashboard-wide headline totals.
type DashboardKPIs struct {
	TotalCows        int     `json:"total_cows"`
	TotalMovements   int     `json:"total_movements"`
	TotalDistanceKM  float64 `json:"total_distance_km"`
	ActiveCows       int     `json:"active_cows"`
	StaticCows       int     `json:"static_cows"`
	AvgMovesPerCow   float64 `json:"avg_moves_per_cow"`
	RoyalMovements   int     `json:"royal_movements"`
	EBUMovements     int     `json:"ebu_movements"`
	CrossRegionMoves int     `json:"cross_region_moves"`
}
