package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/jonboulle/clockwork"

	"github.com/cowtrack/analytics-backend-go/internal/analysis"
	"github.com/cowtrack/analytics-backend-go/internal/ingest"
	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/repository"
)

const defaultSnapshotCacheTTL = 15 * time.Minute

// IngestionConfig wires the ingestion orchestrator. Runs is optional; when
// nil, runs are simply not archived.
type IngestionConfig struct {
	Logger     *slog.Logger
	Clock      clockwork.Clock
	Schema     *ingest.Schema
	Runs       *repository.RunRepository
	HTTPClient *http.Client
	CacheTTL   time.Duration
}

// Validate fills defaults and rejects unusable configs.
func (c *IngestionConfig) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.Schema == nil {
		c.Schema = ingest.DefaultSchema()
	}
	if err := c.Schema.Validate(); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaultSnapshotCacheTTL
	}
	return nil
}

// IngestionService runs the full pipeline: payload → rows → resolved
// columns → normalized facts → enriched facts. Results are cached by
// payload hash with a TTL so repeated fetches of the same export do not
// re-run the pipeline; re-parsing is idempotent, so a cache miss is only a
// cost, never a correctness problem.
type IngestionService struct {
	log   *slog.Logger
	cfg   *IngestionConfig
	norm  *ingest.Normalizer
	cache *ttlcache.Cache[string, *models.Snapshot]
}

// NewIngestionService creates the orchestrator and starts the cache's
// eviction loop.
func NewIngestionService(cfg *IngestionConfig) (*IngestionService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingestion config: %w", err)
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, *models.Snapshot](cfg.CacheTTL),
	)
	go cache.Start()

	return &IngestionService{
		log:   cfg.Logger,
		cfg:   cfg,
		norm:  ingest.NewNormalizer(cfg.Logger, cfg.Schema),
		cache: cache,
	}, nil
}

// Close stops the cache eviction loop.
func (s *IngestionService) Close() {
	s.cache.Stop()
}

// Ingest runs the pipeline over one raw payload. Identical payloads within
// the cache TTL return the cached snapshot.
func (s *IngestionService) Ingest(payload []byte) (*models.Snapshot, error) {
	hash := payloadHash(payload)
	if item := s.cache.Get(hash); item != nil {
		s.log.Debug("snapshot cache hit", "hash", hash)
		return item.Value(), nil
	}

	snap, err := s.runPipeline(payload)
	if err != nil {
		return nil, err
	}
	snap.PayloadHash = hash
	snap.IngestedAt = s.cfg.Clock.Now().UTC()

	s.cache.Set(hash, snap, ttlcache.DefaultTTL)
	s.archive(snap)

	s.log.Info("ingestion complete",
		"hash", hash,
		"facts", len(snap.Facts),
		"cows", len(snap.Cows),
		"skipped", snap.Stats.RowsSkipped,
		"drift", snap.Stats.SchemaDrift,
	)
	return snap, nil
}

// IngestFromFile reads and ingests a local export file.
func (s *IngestionService) IngestFromFile(path string) (*models.Snapshot, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return s.Ingest(payload)
}

// IngestFromURL fetches and ingests a remote export. Timeout policy lives
// in the injected HTTP client and the caller's context, not here.
func (s *IngestionService) IngestFromURL(ctx context.Context, url string) (*models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build source request: %w", err)
	}
	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read source body: %w", err)
	}
	return s.Ingest(payload)
}

// runPipeline does the actual parse → normalize → enrich work.
func (s *IngestionService) runPipeline(payload []byte) (*models.Snapshot, error) {
	var rows [][]string
	if ingest.IsXLSX(payload) {
		var err error
		rows, err = ingest.RowsFromXLSX(payload)
		if err != nil {
			return nil, err
		}
	} else {
		if err := ingest.CheckTabular(payload); err != nil {
			return nil, err
		}
		rows = ingest.SplitRows(string(payload))
	}

	snap := s.norm.Normalize(rows)
	analysis.Enrich(snap)
	return snap, nil
}

// archive records the run in the sqlite archive; failures are logged, not
// returned, because archival is diagnostics and must never fail ingestion.
func (s *IngestionService) archive(snap *models.Snapshot) {
	if s.cfg.Runs == nil {
		return
	}
	run := &models.IngestRun{
		PayloadHash:   snap.PayloadHash,
		IngestedAt:    snap.IngestedAt,
		FactCount:     len(snap.Facts),
		CowCount:      len(snap.Cows),
		LocationCount: len(snap.Locations),
		EventCount:    len(snap.Events),
		Stats:         snap.Stats,
		KPIs:          analysis.ComputeKPIs(snap.Cows, snap.Facts),
	}
	if err := s.cfg.Runs.SaveRun(run); err != nil {
		s.log.Error("failed to archive ingest run", "error", err)
	}
}

// payloadHash is the snapshot identity: FNV-64a of the raw bytes.
func payloadHash(payload []byte) string {
	h := fnv.New64a()
	h.Write(payload)
	return fmt.Sprintf("%016x", h.Sum64())
}
