package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cowtrack/analytics-backend-go/internal/analysis"
	"github.com/cowtrack/analytics-backend-go/internal/models"
)

// Exporter writes the snapshot collections as JSON documents for static
// hosting. Identical snapshots produce byte-identical files: collections
// keep their snapshot order, dates marshal as RFC 3339, numbers stay
// numbers.
type Exporter struct {
	log *slog.Logger
	dir string
}

// NewExporter creates an exporter targeting a directory.
func NewExporter(log *slog.Logger, dir string) *Exporter {
	return &Exporter{log: log, dir: dir}
}

// metricsDocument bundles every derived view into one document so the
// static site needs a single fetch for the dashboard.
type metricsDocument struct {
	Assets  []models.AssetMetrics  `json:"assets"`
	Sites   []models.SiteMetrics   `json:"sites"`
	Regions []models.RegionMetrics `json:"regions"`
	KPIs    models.DashboardKPIs   `json:"kpis"`
}

// WriteSnapshot writes the fact and dimension collections plus the derived
// metrics for an unfiltered view.
func (e *Exporter) WriteSnapshot(snap *models.Snapshot) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	docs := map[string]any{
		"movements.json": snap.Facts,
		"cows.json":      snap.Cows,
		"locations.json": snap.Locations,
		"events.json":    snap.Events,
		"metrics.json": metricsDocument{
			Assets:  analysis.ComputeAssetMetrics(snap.Cows, snap.Facts),
			Sites:   analysis.ComputeSiteMetrics(snap.Locations, snap.Facts),
			Regions: analysis.ComputeRegionMetrics(snap.Facts),
			KPIs:    analysis.ComputeKPIs(snap.Cows, snap.Facts),
		},
	}

	for _, name := range []string{"movements.json", "cows.json", "locations.json", "events.json", "metrics.json"} {
		if err := e.writeDoc(name, docs[name]); err != nil {
			return err
		}
	}
	e.log.Info("snapshot exported", "dir", e.dir, "hash", snap.PayloadHash)
	return nil
}

func (e *Exporter) writeDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
