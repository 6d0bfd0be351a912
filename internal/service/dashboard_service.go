package service

import (
	"errors"
	"sync"

	"github.com/cowtrack/analytics-backend-go/internal/analysis"
	"github.com/cowtrack/analytics-backend-go/internal/models"
)

// ErrNoSnapshot is returned when a metrics view is requested before any
// ingestion run has completed.
var ErrNoSnapshot = errors.New("no snapshot ingested yet")

// ErrAssetNotFound is returned for metrics of an unknown cow identifier.
var ErrAssetNotFound = errors.New("asset not found")

// DashboardService serves the reporting layer: filtered, derived views over
// the current snapshot. Everything it returns is recomputed from the
// snapshot on demand; it holds no derived state.
type DashboardService struct {
	mu   sync.RWMutex
	snap *models.Snapshot
}

// NewDashboardService creates an empty dashboard service.
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// SetSnapshot swaps in the result of a new ingestion run.
func (s *DashboardService) SetSnapshot(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Snapshot returns the current snapshot.
func (s *DashboardService) Snapshot() (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNoSnapshot
	}
	return s.snap, nil
}

// filtered returns the snapshot and its fact set narrowed by the filter.
func (s *DashboardService) filtered(filter models.MovementFilter) (*models.Snapshot, []models.CowMovementsFact, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	return snap, analysis.ApplyFilter(snap.Facts, snap.Cows, filter), nil
}

// Movements returns the filtered fact set itself.
func (s *DashboardService) Movements(filter models.MovementFilter) ([]models.CowMovementsFact, error) {
	_, facts, err := s.filtered(filter)
	return facts, err
}

// AssetMetrics returns per-cow metrics over the filtered fact set.
func (s *DashboardService) AssetMetrics(filter models.MovementFilter) ([]models.AssetMetrics, error) {
	snap, facts, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeAssetMetrics(snap.Cows, facts), nil
}

// AssetMetricsByID returns one cow's metrics over the filtered fact set.
func (s *DashboardService) AssetMetricsByID(cowID string, filter models.MovementFilter) (*models.AssetMetrics, error) {
	metrics, err := s.AssetMetrics(filter)
	if err != nil {
		return nil, err
	}
	for i := range metrics {
		if metrics[i].CowID == cowID {
			return &metrics[i], nil
		}
	}
	return nil, ErrAssetNotFound
}

// SiteMetrics returns per-warehouse metrics over the filtered fact set.
func (s *DashboardService) SiteMetrics(filter models.MovementFilter) ([]models.SiteMetrics, error) {
	snap, facts, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeSiteMetrics(snap.Locations, facts), nil
}

// RegionMetrics returns per-region metrics over the filtered fact set.
func (s *DashboardService) RegionMetrics(filter models.MovementFilter) ([]models.RegionMetrics, error) {
	_, facts, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeRegionMetrics(facts), nil
}

// KPIs returns the dashboard-wide totals over the filtered fact set.
func (s *DashboardService) KPIs(filter models.MovementFilter) (*models.DashboardKPIs, error) {
	snap, facts, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}
	kpis := analysis.ComputeKPIs(snap.Cows, facts)
	return &kpis, nil
}
