package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cowtrack/analytics-backend-go/internal/models"
)

func TestClassifyMovement_Total(t *testing.T) {
	kinds := []models.LocationKind{models.KindSite, models.KindWarehouse, models.KindUnknown}
	valid := map[models.MovementType]bool{
		models.MovementFull: true,
		models.MovementHalf: true,
		models.MovementZero: true,
	}
	for _, from := range kinds {
		for _, to := range kinds {
			require.True(t, valid[ClassifyMovement(from, to)], "pair %s → %s", from, to)
		}
	}
}

func TestClassifyMovement_Rules(t *testing.T) {
	require.Equal(t, models.MovementFull, ClassifyMovement(models.KindSite, models.KindSite))
	require.Equal(t, models.MovementHalf, ClassifyMovement(models.KindSite, models.KindWarehouse))
	require.Equal(t, models.MovementHalf, ClassifyMovement(models.KindWarehouse, models.KindSite))
	require.Equal(t, models.MovementZero, ClassifyMovement(models.KindWarehouse, models.KindWarehouse))
	require.Equal(t, models.MovementZero, ClassifyMovement(models.KindUnknown, models.KindSite))
	require.Equal(t, models.MovementZero, ClassifyMovement(models.KindSite, models.KindUnknown))
}

func testLocations() []models.DimLocation {
	return []models.DimLocation{
		{LocationID: "WH-R", Name: "WH-R", Kind: models.KindWarehouse, Region: models.RegionRiyadh,
			Latitude: 24.7136, Longitude: 46.6753, HasCoords: true},
		{LocationID: "SITE-J", Name: "SITE-J", Kind: models.KindSite, Region: models.RegionMakkah,
			Latitude: 21.4858, Longitude: 39.1925, HasCoords: true},
		{LocationID: "SITE-NOCOORDS", Name: "SITE-NOCOORDS", Kind: models.KindSite, Region: models.RegionAsir},
	}
}

func TestEnrich_DerivesTypeDistanceAndRegions(t *testing.T) {
	snap := &models.Snapshot{
		Locations: testLocations(),
		Facts: []models.CowMovementsFact{
			{CowID: "C1", FromLocationID: "WH-R", ToLocationID: "SITE-J",
				FromRegion: models.RegionUnknown, ToRegion: models.RegionUnknown},
		},
	}
	Enrich(snap)

	f := snap.Facts[0]
	require.Equal(t, models.MovementHalf, f.MovementType)
	require.Greater(t, f.DistanceKM, 700.0)
	require.Less(t, f.DistanceKM, 1000.0)
	require.Equal(t, models.RegionRiyadh, f.FromRegion)
	require.Equal(t, models.RegionMakkah, f.ToRegion)
}

func TestEnrich_ExplicitMovementTypeWins(t *testing.T) {
	snap := &models.Snapshot{
		Locations: testLocations(),
		Facts: []models.CowMovementsFact{
			// Operator recorded Full; the rule engine would say Half.
			{CowID: "C1", FromLocationID: "WH-R", ToLocationID: "SITE-J", MovementType: models.MovementFull},
		},
	}
	Enrich(snap)
	require.Equal(t, models.MovementFull, snap.Facts[0].MovementType)
}

func TestEnrich_UnresolvableEndpointIsConservative(t *testing.T) {
	snap := &models.Snapshot{
		Locations: testLocations(),
		Facts: []models.CowMovementsFact{
			{CowID: "C1", FromLocationID: "NOWHERE", ToLocationID: "SITE-J"},
		},
	}
	Enrich(snap)

	require.Equal(t, models.MovementZero, snap.Facts[0].MovementType)
	require.Zero(t, snap.Facts[0].DistanceKM)
	require.Equal(t, 1, snap.Stats.UnresolvedRefs)
}

func TestEnrich_MissingCoordinatesYieldZeroDistance(t *testing.T) {
	snap := &models.Snapshot{
		Locations: testLocations(),
		Facts: []models.CowMovementsFact{
			{CowID: "C1", FromLocationID: "WH-R", ToLocationID: "SITE-NOCOORDS"},
		},
	}
	Enrich(snap)
	require.Zero(t, snap.Facts[0].DistanceKM)
	require.Equal(t, models.MovementHalf, snap.Facts[0].MovementType)
}
