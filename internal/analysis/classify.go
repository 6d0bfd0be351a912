package analysis

import (
	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/spatial"
)

// ClassifyMovement derives a movement type from the kinds of the two
// endpoints. Total: every kind pair, including unknown, maps to exactly one
// type.
//
//	Site      → Site      = Full
//	one Warehouse endpoint = Half
//	Warehouse → Warehouse  = Zero
//	any unknown endpoint   = Zero (conservative)
func ClassifyMovement(fromKind, toKind models.LocationKind) models.MovementType {
	if fromKind == models.KindUnknown || toKind == models.KindUnknown {
		return models.MovementZero
	}
	switch {
	case fromKind == models.KindSite && toKind == models.KindSite:
		return models.MovementFull
	case fromKind == models.KindWarehouse && toKind == models.KindWarehouse:
		return models.MovementZero
	default:
		return models.MovementHalf
	}
}

// Enrich fills in the derived fact fields: movement type, distance and
// endpoint regions. An operator-entered movement type or distance on the
// source row wins over the derived value; the rules here are a fallback,
// not an override. Unresolvable endpoints are classified Zero with distance
// 0 and counted in the snapshot diagnostics.
func Enrich(snap *models.Snapshot) {
	index := snap.LocationIndex()

	for i := range snap.Facts {
		f := &snap.Facts[i]
		fromLoc, fromOK := index[f.FromLocationID]
		toLoc, toOK := index[f.ToLocationID]

		if !fromOK || !toOK {
			snap.Stats.UnresolvedRefs++
			if f.MovementType == "" {
				f.MovementType = models.MovementZero
			}
			continue
		}

		if f.MovementType == "" {
			f.MovementType = ClassifyMovement(fromLoc.Kind, toLoc.Kind)
		}
		if f.DistanceKM == 0 {
			f.DistanceKM = spatial.MovementDistanceKm(
				fromLoc.Latitude, fromLoc.Longitude,
				toLoc.Latitude, toLoc.Longitude,
				fromLoc.HasCoords, toLoc.HasCoords)
		}
		if f.FromRegion == models.RegionUnknown {
			f.FromRegion = fromLoc.Region
		}
		if f.ToRegion == models.RegionUnknown {
			f.ToRegion = toLoc.Region
		}
	}

	snap.Stats.NegativeIdleGaps = countNegativeIdleGaps(snap.Facts)
}

// countNegativeIdleGaps counts consecutive same-cow movement pairs where
// the next departure precedes the previous arrival. The source tolerates
// these (clock skew or data entry, nobody knows); they are surfaced as an
// anomaly class, never clamped.
func countNegativeIdleGaps(facts []models.CowMovementsFact) int {
	byCow := GroupByCow(facts)
	count := 0
	for _, history := range byCow {
		for i := 1; i < len(history); i++ {
			prev, cur := history[i-1], history[i]
			if prev.ReachedAt.IsZero() || cur.MovedAt.IsZero() {
				continue
			}
			if cur.MovedAt.Before(prev.ReachedAt) {
				count++
			}
		}
	}
	return count
}
