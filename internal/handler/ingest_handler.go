package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/cowtrack/analytics-backend-go/internal/export"
	"github.com/cowtrack/analytics-backend-go/internal/ingest"
	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/repository"
	"github.com/cowtrack/analytics-backend-go/internal/service"
	"github.com/cowtrack/analytics-backend-go/pkg/response"
)

// IngestHandler serves the administrative endpoints: trigger an ingestion
// run, list archived runs, export the current snapshot.
type IngestHandler struct {
	ingestion *service.IngestionService
	dashboard *service.DashboardService
	exporter  *export.Exporter
	runs      *repository.RunRepository
	sourceURL string
}

// NewIngestHandler creates a new ingest handler. runs may be nil when no
// archive database is configured.
func NewIngestHandler(ingestion *service.IngestionService, dashboard *service.DashboardService,
	exporter *export.Exporter, runs *repository.RunRepository, sourceURL string) *IngestHandler {
	return &IngestHandler{
		ingestion: ingestion,
		dashboard: dashboard,
		exporter:  exporter,
		runs:      runs,
		sourceURL: sourceURL,
	}
}

// PostIngest handles POST /api/v1/ingest. The payload comes from a
// multipart "file" part or the raw request body; when both are absent the
// configured source URL is fetched instead.
func (h *IngestHandler) PostIngest(c *gin.Context) {
	payload, err := h.readPayload(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var snap *models.Snapshot
	var ingestErr error
	switch {
	case len(payload) > 0:
		snap, ingestErr = h.ingestion.Ingest(payload)
	case h.sourceURL != "":
		snap, ingestErr = h.ingestion.IngestFromURL(c.Request.Context(), h.sourceURL)
	default:
		response.BadRequest(c, "empty payload and no source URL configured")
		return
	}
	if ingestErr != nil {
		if errors.Is(ingestErr, ingest.ErrNotTabular) {
			response.Error(c, 422, ingestErr.Error())
			return
		}
		response.InternalError(c, ingestErr.Error())
		return
	}

	h.dashboard.SetSnapshot(snap)
	response.Success(c, gin.H{
		"payload_hash": snap.PayloadHash,
		"facts":        len(snap.Facts),
		"cows":         len(snap.Cows),
		"locations":    len(snap.Locations),
		"events":       len(snap.Events),
		"stats":        snap.Stats,
	})
}

func (h *IngestHandler) readPayload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return nil, errors.New("failed to open uploaded file")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(c.Request.Body)
}

// GetRuns handles GET /api/v1/ingest/runs
func (h *IngestHandler) GetRuns(c *gin.Context) {
	if h.runs == nil {
		response.Success(c, []any{})
		return
	}
	runs, err := h.runs.ListRuns(50)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, runs)
}

// PostExport handles POST /api/v1/export
func (h *IngestHandler) PostExport(c *gin.Context) {
	snap, err := h.dashboard.Snapshot()
	if err != nil {
		response.Conflict(c, "no snapshot ingested yet")
		return
	}
	if err := h.exporter.WriteSnapshot(snap); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"payload_hash": snap.PayloadHash})
}
