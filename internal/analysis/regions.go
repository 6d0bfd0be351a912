package analysis

import (
	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/stats"
)

// ComputeRegionMetrics derives the per-region summary over an
// already-filtered fact set. Every known region gets a row, in the fixed
// enum order; Unknown destinations are excluded from rows but still feed
// the dashboard KPIs.
func ComputeRegionMetrics(facts []models.CowMovementsFact) []models.RegionMetrics {
	assetMetrics := perCowStaticFlags(facts)

	out := make([]models.RegionMetrics, 0, len(models.AllRegions))
	for _, region := range models.AllRegions {
		m := models.RegionMetrics{Region: region}
		deployed := make(map[string]bool)
		var deployHours []float64

		for _, f := range facts {
			if f.ToRegion != region {
				continue
			}
			deployed[f.CowID] = true
			m.TotalDistanceKM += f.DistanceKM
			if f.FromRegion != f.ToRegion && f.FromRegion != models.RegionUnknown {
				m.CrossRegionMoves++
			}
			// Deployment duration is only meaningful for site-to-site moves.
			if f.MovementType == models.MovementFull && !f.MovedAt.IsZero() && !f.ReachedAt.IsZero() {
				if d := f.ReachedAt.Sub(f.MovedAt).Hours(); d >= 0 {
					deployHours = append(deployHours, d)
				}
			}
		}

		m.DeployedCows = len(deployed)
		for cowID := range deployed {
			if assetMetrics[cowID] {
				m.StaticCows++
			} else {
				m.ActiveCows++
			}
		}
		m.AvgDeploymentHours = stats.Mean(deployHours)
		out = append(out, m)
	}
	return out
}

// perCowStaticFlags computes the same static flag the per-asset aggregator
// uses: at most one movement in the (filtered) window.
func perCowStaticFlags(facts []models.CowMovementsFact) map[string]bool {
	counts := make(map[string]int)
	for _, f := range facts {
		counts[f.CowID]++
	}
	flags := make(map[string]bool, len(counts))
	for cowID, c := range counts {
		flags[cowID] = c <= 1
	}
	return flags
}

// ComputeKPIs reduces the current fact set and cow dimension to the
// dashboard-wide totals. All ratios are zero-guarded.
func ComputeKPIs(cows []models.DimCow, facts []models.CowMovementsFact) models.DashboardKPIs {
	kpis := models.DashboardKPIs{
		TotalCows:      len(cows),
		TotalMovements: len(facts),
	}

	counts := make(map[string]int)
	for _, f := range facts {
		counts[f.CowID]++
		kpis.TotalDistanceKM += f.DistanceKM
		switch f.RoyalCategory {
		case models.CategoryRoyal:
			kpis.RoyalMovements++
		case models.CategoryEBU:
			kpis.EBUMovements++
		}
		if f.FromRegion != f.ToRegion && f.FromRegion != models.RegionUnknown && f.ToRegion != models.RegionUnknown {
			kpis.CrossRegionMoves++
		}
	}

	for _, c := range cows {
		if counts[c.CowID] <= 1 {
			kpis.StaticCows++
		} else {
			kpis.ActiveCows++
		}
	}
	if kpis.TotalCows > 0 {
		kpis.AvgMovesPerCow = float64(kpis.TotalMovements) / float64(kpis.TotalCows)
	}
	return kpis
}
