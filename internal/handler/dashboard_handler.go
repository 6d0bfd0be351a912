package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cowtrack/analytics-backend-go/internal/models"
	"github.com/cowtrack/analytics-backend-go/internal/service"
	"github.com/cowtrack/analytics-backend-go/pkg/response"
)

// DashboardHandler serves the read-only reporting endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func bindFilter(c *gin.Context) (models.MovementFilter, bool) {
	var filter models.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid filter parameters")
		return filter, false
	}
	return filter, true
}

func (h *DashboardHandler) respond(c *gin.Context, data interface{}, err error) {
	switch {
	case errors.Is(err, service.ErrNoSnapshot):
		response.Conflict(c, "no snapshot ingested yet")
	case errors.Is(err, service.ErrAssetNotFound):
		response.NotFound(c, "asset not found")
	case err != nil:
		response.InternalError(c, err.Error())
	default:
		response.Success(c, data)
	}
}

// GetMovements handles GET /api/v1/movements
func (h *DashboardHandler) GetMovements(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	facts, err := h.dashboard.Movements(filter)
	h.respond(c, facts, err)
}

// GetAssetMetrics handles GET /api/v1/assets
func (h *DashboardHandler) GetAssetMetrics(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	metrics, err := h.dashboard.AssetMetrics(filter)
	h.respond(c, metrics, err)
}

// GetAssetMetricsByID handles GET /api/v1/assets/:id/metrics
func (h *DashboardHandler) GetAssetMetricsByID(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	metrics, err := h.dashboard.AssetMetricsByID(c.Param("id"), filter)
	h.respond(c, metrics, err)
}

// GetSiteMetrics handles GET /api/v1/sites/metrics
func (h *DashboardHandler) GetSiteMetrics(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	metrics, err := h.dashboard.SiteMetrics(filter)
	h.respond(c, metrics, err)
}

// GetRegionMetrics handles GET /api/v1/regions/metrics
func (h *DashboardHandler) GetRegionMetrics(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	metrics, err := h.dashboard.RegionMetrics(filter)
	h.respond(c, metrics, err)
}

// GetKPIs handles GET /api/v1/kpis
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	kpis, err := h.dashboard.KPIs(filter)
	h.respond(c, kpis, err)
}

// Health handles GET /health
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
