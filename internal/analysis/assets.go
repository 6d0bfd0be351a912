package analysis

import (
	"sort"

	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/stats"
)

const hoursPerDay = 24.0

// ComputeAssetMetrics derives the per-cow summary for every cow in the
// dimension table, over an already-filtered fact set. Cows with no matching
// facts still get a row (static, all counters zero).
func ComputeAssetMetrics(cows []models.DimCow, facts []models.CowMovementsFact) []models.AssetMetrics {
	byCow := GroupByCow(facts)

	out := make([]models.AssetMetrics, 0, len(cows))
	for _, c := range cows {
		out = append(out, assetMetricsFor(c.CowID, byCow[c.CowID]))
	}
	return out
}

// assetMetricsFor summarizes one cow's chronological movement history.
func assetMetricsFor(cowID string, history []models.CowMovementsFact) models.AssetMetrics {
	m := models.AssetMetrics{
		CowID:          cowID,
		TotalMovements: len(history),
		// A cow with at most one recorded relocation was never actively
		// deployed in the observation window.
		IsStatic: len(history) <= 1,
	}

	regionSet := make(map[models.Region]bool)
	eventCounts := make(map[models.EventType]int)
	var firstTop models.EventType
	var idleDays []float64

	for i, f := range history {
		m.TotalDistanceKM += f.DistanceKM
		switch f.MovementType {
		case models.MovementFull:
			m.FullMovements++
		case models.MovementHalf:
			m.HalfMovements++
		default:
			m.ZeroMovements++
		}
		if f.ToRegion != models.RegionUnknown {
			regionSet[f.ToRegion] = true
		}

		// First event type to reach the running max wins; ties are not
		// re-resolved by later rows.
		eventCounts[f.EventType]++
		if firstTop == "" || eventCounts[f.EventType] > eventCounts[firstTop] {
			firstTop = f.EventType
		}

		if i == 0 {
			continue
		}
		prev := history[i-1]
		if prev.ReachedAt.IsZero() || f.MovedAt.IsZero() {
			continue
		}
		gap := f.MovedAt.Sub(prev.ReachedAt).Hours() / hoursPerDay
		if gap < 0 {
			// Data anomaly; excluded from the average, surfaced separately.
			m.NegativeIdleGaps++
			continue
		}
		idleDays = append(idleDays, gap)
	}

	if m.TotalMovements > 0 {
		m.AvgDistanceKM = m.TotalDistanceKM / float64(m.TotalMovements)
	}
	m.AvgIdleDays = stats.Mean(idleDays)
	m.TopEventType = firstTop

	m.RegionsServed = make([]models.Region, 0, len(regionSet))
	for r := range regionSet {
		m.RegionsServed = append(m.RegionsServed, r)
	}
	sort.Slice(m.RegionsServed, func(a, b int) bool {
		return m.RegionsServed[a] < m.RegionsServed[b]
	})
	return m
}
