package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cowtrack/analytics-backend-go/internal/models"
)

func regionRow(metrics []models.RegionMetrics, region models.Region) models.RegionMetrics {
	for _, m := range metrics {
		if m.Region == region {
			return m
		}
	}
	return models.RegionMetrics{}
}

func TestRegionMetrics_DeployedAndCrossRegion(t *testing.T) {
	facts := []models.CowMovementsFact{
		{CowID: "C1", Seq: 1, MovedAt: day(1), ReachedAt: day(2),
			FromRegion: models.RegionRiyadh, ToRegion: models.RegionMakkah,
			MovementType: models.MovementFull, DistanceKM: 800},
		{CowID: "C2", Seq: 2, MovedAt: day(1),
			FromRegion: models.RegionMakkah, ToRegion: models.RegionMakkah,
			MovementType: models.MovementHalf, DistanceKM: 40},
	}

	metrics := ComputeRegionMetrics(facts)
	require.Len(t, metrics, len(models.AllRegions))

	makkah := regionRow(metrics, models.RegionMakkah)
	require.Equal(t, 2, makkah.DeployedCows)
	require.Equal(t, 1, makkah.CrossRegionMoves)
	require.Equal(t, 840.0, makkah.TotalDistanceKM)
	require.Equal(t, 24.0, makkah.AvgDeploymentHours)
	// Both cows have exactly one movement in the window.
	require.Equal(t, 2, makkah.StaticCows)
	require.Zero(t, makkah.ActiveCows)

	riyadh := regionRow(metrics, models.RegionRiyadh)
	require.Zero(t, riyadh.DeployedCows)
}

func TestKPIs_TotalsAndGuards(t *testing.T) {
	cows := []models.DimCow{{CowID: "C1"}, {CowID: "C2"}, {CowID: "C3"}}
	facts := []models.CowMovementsFact{
		{CowID: "C1", Seq: 1, DistanceKM: 100, RoyalCategory: models.CategoryRoyal,
			FromRegion: models.RegionRiyadh, ToRegion: models.RegionMakkah},
		{CowID: "C1", Seq: 2, DistanceKM: 50, RoyalCategory: models.CategoryNonEBU,
			FromRegion: models.RegionMakkah, ToRegion: models.RegionMakkah},
		{CowID: "C2", Seq: 3, DistanceKM: 10, RoyalCategory: models.CategoryEBU,
			FromRegion: models.RegionUnknown, ToRegion: models.RegionRiyadh},
	}

	kpis := ComputeKPIs(cows, facts)
	require.Equal(t, 3, kpis.TotalCows)
	require.Equal(t, 3, kpis.TotalMovements)
	require.Equal(t, 160.0, kpis.TotalDistanceKM)
	require.Equal(t, 1, kpis.RoyalMovements)
	require.Equal(t, 1, kpis.EBUMovements)
	require.Equal(t, 1, kpis.CrossRegionMoves)
	require.Equal(t, 1, kpis.ActiveCows) // C1 moved twice
	require.Equal(t, 2, kpis.StaticCows) // C2 once, C3 never
	require.InDelta(t, 1.0, kpis.AvgMovesPerCow, 1e-9)
}

func TestKPIs_EmptyInputIsAllZeros(t *testing.T) {
	kpis := ComputeKPIs(nil, nil)
	require.Zero(t, kpis.TotalCows)
	require.Zero(t, kpis.AvgMovesPerCow)
	require.Zero(t, kpis.TotalDistanceKM)
}
