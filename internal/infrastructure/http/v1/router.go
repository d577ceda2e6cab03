// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/state"
	"makhzan/internal/infrastructure/ai"
	"makhzan/internal/infrastructure/http/v1/handlers"
	"makhzan/internal/infrastructure/http/v1/middleware"
	"makhzan/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Store is the in-memory state, also serving snapshot export/import.
	Store *state.Store

	// Services over the store's repositories.
	Materials *material.Service
	Partners  *partner.Service
	Documents *documents.Service

	// Gemini is the AI analysis adapter; may be unconfigured.
	Gemini *ai.GeminiService

	// Logger for request logging.
	Logger *logger.Logger

	// ReadyCheck probes the snapshot backend; nil means always ready.
	ReadyCheck func(ctx context.Context) error

	// MetricsEnabled exposes /metrics and per-request instrumentation.
	MetricsEnabled bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.ReadyCheck)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	materialHandler := handlers.NewMaterialHandler(cfg.Materials, cfg.Partners, cfg.Documents)
	partnerHandler := handlers.NewPartnerHandler(cfg.Partners)
	documentHandler := handlers.NewDocumentHandler(cfg.Documents, cfg.Materials, cfg.Partners)
	reportHandler := handlers.NewReportHandler(cfg.Materials, cfg.Documents)
	transactionHandler := handlers.NewTransactionHandler(cfg.Documents)
	snapshotHandler := handlers.NewSnapshotHandler(cfg.Store)
	refsHandler := handlers.NewRefsHandler(cfg.Store)
	dashboardHandler := handlers.NewDashboardHandler(cfg.Materials, cfg.Partners, cfg.Documents)
	analysisHandler := handlers.NewAnalysisHandler(cfg.Gemini, cfg.Materials, cfg.Documents)

	v1 := router.Group("/api/v1")
	{
		materials := v1.Group("/materials")
		{
			materials.GET("", materialHandler.List)
			materials.POST("", materialHandler.Create)
			materials.GET("/:id", materialHandler.Get)
			materials.PUT("/:id", materialHandler.Update)
			materials.DELETE("/:id", materialHandler.Delete)
			materials.GET("/:id/history", materialHandler.History)
		}

		partners := v1.Group("/partners")
		{
			partners.GET("", partnerHandler.List)
			partners.POST("", partnerHandler.Create)
			partners.GET("/:id", partnerHandler.Get)
			partners.PUT("/:id", partnerHandler.Update)
			partners.DELETE("/:id", partnerHandler.Delete)
		}

		docs := v1.Group("/documents")
		{
			docs.GET("", documentHandler.List)
			docs.POST("", documentHandler.Create)
			// Static segment before the :id wildcard.
			docs.GET("/next-ref", documentHandler.NextReference)
			docs.GET("/:id", documentHandler.Get)
			docs.PUT("/:id", documentHandler.Update)
			docs.DELETE("/:id", documentHandler.Delete)
			docs.GET("/:id/share-message", documentHandler.ShareMessage)
		}

		v1.GET("/transactions", transactionHandler.List)

		reports := v1.Group("/reports")
		{
			reports.GET("/materials", reportHandler.Materials)
			reports.GET("/materials/export", reportHandler.MaterialsExport)
			reports.GET("/low-stock", reportHandler.LowStock)
			reports.GET("/low-stock/export", reportHandler.LowStockExport)
		}

		v1.GET("/dashboard", dashboardHandler.Summary)

		snapshot := v1.Group("/snapshot")
		{
			snapshot.GET("/export", snapshotHandler.Export)
			snapshot.POST("/import", snapshotHandler.Import)
		}

		v1.GET("/categories", refsHandler.ListCategories)
		v1.POST("/categories", refsHandler.AddCategory)
		v1.GET("/units", refsHandler.ListUnits)
		v1.POST("/units", refsHandler.AddUnit)

		v1.POST("/analysis", analysisHandler.Analyze)
	}

	return router
}
