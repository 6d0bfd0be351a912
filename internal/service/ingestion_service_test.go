package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cowtrack/analytics-backend-go/internal/ingest"
	"github.com/cowtrack/analytics-backend-go/internal/models"
)

const samplePayload = `S/N,COW ID,Vendor,From Location,From Type,To Location,To Type,Moved Date,Reached Date,Distance,EBU Flag,To Region
1,COW-1,NodeTel,Riyadh Main WH,Warehouse,Jeddah Corniche,Site,2023-03-01 08:00:00,2023-03-01 18:30:00,870,Royal,Makkah
2,COW-2,Wavecom,Riyadh Main WH,Warehouse,Dammam East,Site,2023-04-02 09:00:00,2023-04-02 14:00:00,,EBU,Eastern
`

func testIngestion(t *testing.T, clk clockwork.Clock) *IngestionService {
	t.Helper()
	svc, err := NewIngestionService(&IngestionConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  clk,
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func TestIngest_EndToEnd(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	svc := testIngestion(t, clk)

	snap, err := svc.Ingest([]byte(samplePayload))
	require.NoError(t, err)

	require.Equal(t, clk.Now().UTC(), snap.IngestedAt)
	require.NotEmpty(t, snap.PayloadHash)
	require.Len(t, snap.Facts, 2)
	require.Len(t, snap.Cows, 2)

	f := snap.Facts[0]
	require.Equal(t, "COW-1", f.CowID)
	require.Equal(t, models.CategoryRoyal, f.RoyalCategory)
	require.Equal(t, models.MovementHalf, f.MovementType)
	require.Equal(t, models.RegionMakkah, f.ToRegion)
	require.Equal(t, 870.0, f.DistanceKM)
}

func TestIngest_IdenticalPayloadHitsCache(t *testing.T) {
	svc := testIngestion(t, clockwork.NewFakeClock())

	first, err := svc.Ingest([]byte(samplePayload))
	require.NoError(t, err)
	second, err := svc.Ingest([]byte(samplePayload))
	require.NoError(t, err)

	// Same snapshot instance, not a recomputation.
	require.Same(t, first, second)
}

func TestIngest_DifferentPayloadsGetDifferentHashes(t *testing.T) {
	svc := testIngestion(t, clockwork.NewFakeClock())

	a, err := svc.Ingest([]byte(samplePayload))
	require.NoError(t, err)
	b, err := svc.Ingest([]byte(samplePayload + "3,COW-3,,A WH,,B Site,,,,,,\n"))
	require.NoError(t, err)

	require.NotEqual(t, a.PayloadHash, b.PayloadHash)
}

func TestIngest_XLSXPayloadSharesThePipeline(t *testing.T) {
	svc := testIngestion(t, clockwork.NewFakeClock())

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1",
		&[]interface{}{"S/N", "COW ID", "From Location", "To Location", "Moved Date", "EBU Flag"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2",
		&[]interface{}{"1", "COW-1", "Riyadh Main WH", "Jeddah Corniche", "2023-03-01 08:00:00", "Royal"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	snap, err := svc.Ingest(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, snap.Facts, 1)
	require.Equal(t, "COW-1", snap.Facts[0].CowID)
	require.Equal(t, models.CategoryRoyal, snap.Facts[0].RoyalCategory)

	// Identical workbook bytes hit the snapshot cache like CSV payloads do.
	again, err := svc.Ingest(buf.Bytes())
	require.NoError(t, err)
	require.Same(t, snap, again)
}

func TestIngest_HTMLPayloadFailsFast(t *testing.T) {
	svc := testIngestion(t, clockwork.NewFakeClock())

	_, err := svc.Ingest([]byte("<!doctype html><html><body>maintenance</body></html>"))
	require.ErrorIs(t, err, ingest.ErrNotTabular)
}

func TestIngest_RowLevelProblemsDoNotFailTheRun(t *testing.T) {
	svc := testIngestion(t, clockwork.NewFakeClock())

	payload := samplePayload + "3,,,A WH,,B Site,,,,,,\n" // missing cow id
	snap, err := svc.Ingest([]byte(payload))
	require.NoError(t, err)
	require.Len(t, snap.Facts, 2)
	require.Equal(t, 1, snap.Stats.RowsSkipped)
}

func TestDashboard_NoSnapshotYet(t *testing.T) {
	d := NewDashboardService()
	_, err := d.KPIs(models.MovementFilter{})
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestDashboard_ServesFilteredViews(t *testing.T) {
	svc := testIngestion(t, clockwork.NewFakeClock())
	snap, err := svc.Ingest([]byte(samplePayload))
	require.NoError(t, err)

	d := NewDashboardService()
	d.SetSnapshot(snap)

	kpis, err := d.KPIs(models.MovementFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, kpis.TotalMovements)

	makkahOnly, err := d.Movements(models.MovementFilter{Region: "Makkah"})
	require.NoError(t, err)
	require.Len(t, makkahOnly, 1)
	require.Equal(t, "COW-1", makkahOnly[0].CowID)

	asset, err := d.AssetMetricsByID("COW-1", models.MovementFilter{})
	require.NoError(t, err)
	require.True(t, asset.IsStatic)

	_, err = d.AssetMetricsByID("COW-99", models.MovementFilter{})
	require.ErrorIs(t, err, ErrAssetNotFound)
}
