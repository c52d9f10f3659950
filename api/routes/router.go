// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pulse/internal/alerts"
	"pulse/internal/campaigns"
	"pulse/internal/churn"
	"pulse/internal/cohorts"
	"pulse/internal/dashboard"
	"pulse/internal/eventstore"
	"pulse/internal/funnel"
	"pulse/internal/health"
	"pulse/internal/opportunities"
	"pulse/internal/recompute"
	"pulse/internal/segments"
	"pulse/internal/shared/config"
	"pulse/internal/shared/database"
	"pulse/internal/shared/middleware"
	"pulse/pkg/cache"
	"pulse/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer alerts.Producer

	recomputeService recompute.Service
	jobProcessor     *recompute.JobProcessor
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer alerts.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAnalyticsRoutes(api)
	}
}

// JobProcessor returns the scheduled recompute processor wired during route
// setup, so main can start and stop it with the server lifecycle.
func (r *Router) JobProcessor() *recompute.JobProcessor {
	return r.jobProcessor
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "pulse-analytics",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "pulse-analytics",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAnalyticsRoutes wires the metric components and their endpoints.
// Every analytics endpoint sits behind JWT auth plus a dashboard role.
func (r *Router) setupAnalyticsRoutes(api *gin.RouterGroup) {
	store := eventstore.NewStore(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	log := logger.GetDefault()

	segmentService := segments.NewService(store, cacheService)
	healthService := health.NewService(store, cacheService, log)
	cohortService := cohorts.NewService(store, cacheService)
	funnelService := funnel.NewService(store, cacheService)
	churnService := churn.NewService(store, cacheService, r.producer, log)
	opportunityService := opportunities.NewService(store, cacheService)
	campaignService := campaigns.NewService(store, cacheService, log, nil)
	dashboardService := dashboard.NewService(store, cacheService, segmentService, cohortService, funnelService, churnService, opportunityService, log)

	r.recomputeService = recompute.NewService(store, healthService, segmentService, cacheService, r.producer, r.config.Recompute, log)
	r.jobProcessor = recompute.NewJobProcessor(r.recomputeService, r.config.Recompute, log)

	// Viewers get the read-only metrics; triggering a recompute pass is
	// reserved for admins.
	analytics := api.Group("/analytics")
	admin := analytics.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(r.config))
	admin.Use(middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleViewer))

	health.SetupHealthRoutes(admin, health.NewController(healthService))
	segments.SetupSegmentRoutes(admin, segments.NewController(segmentService))
	cohorts.SetupCohortRoutes(admin, cohorts.NewController(cohortService))
	funnel.SetupFunnelRoutes(admin, funnel.NewController(funnelService))
	churn.SetupChurnRoutes(admin, churn.NewController(churnService))
	opportunities.SetupOpportunityRoutes(admin, opportunities.NewController(opportunityService))
	campaigns.SetupCampaignRoutes(admin, campaigns.NewController(campaignService))
	dashboard.SetupDashboardRoutes(admin, dashboard.NewController(dashboardService))

	ops := admin.Group("")
	ops.Use(middleware.RequireAdmin())
	recompute.SetupRecomputeRoutes(ops, recompute.NewController(r.recomputeService, r.jobProcessor))
}
