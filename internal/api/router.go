package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cowtrack/analytics-backend-go/internal/config"
	"github.com/cowtrack/analytics-backend-go/internal/handler"
	"github.com/cowtrack/analytics-backend-go/internal/middleware"
)

// adminRateLimit is the per-IP request cap per minute on the admin routes.
const adminRateLimit = 30

// SetupRouter wires the reporting and administrative endpoints.
func SetupRouter(cfg *config.Config, log *slog.Logger,
	dashboard *handler.DashboardHandler, ingestH *handler.IngestHandler) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	r.GET("/health", dashboard.Health)

	api := r.Group("/api/v1")
	{
		// Read-only reporting endpoints, open to the dashboard frontend.
		api.GET("/movements", dashboard.GetMovements)
		api.GET("/assets", dashboard.GetAssetMetrics)
		api.GET("/assets/:id/metrics", dashboard.GetAssetMetricsByID)
		api.GET("/sites/metrics", dashboard.GetSiteMetrics)
		api.GET("/regions/metrics", dashboard.GetRegionMetrics)
		api.GET("/kpis", dashboard.GetKPIs)

		// Administrative endpoints require a token and are rate limited:
		// each accepted ingest can run the full pipeline.
		admin := api.Group("")
		admin.Use(middleware.RateLimit(adminRateLimit, time.Minute))
		admin.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin.POST("/ingest", ingestH.PostIngest)
			admin.GET("/ingest/runs", ingestH.GetRuns)
			admin.POST("/export", ingestH.PostExport)
		}
	}

	return r
}
