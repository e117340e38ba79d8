package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tgriffin/draftedge/internal/api/handlers"
	"github.com/tgriffin/draftedge/internal/services"
	"github.com/tgriffin/draftedge/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	cache *services.CacheService,
	refresher *services.RefresherService,
	drafts *services.DraftService,
	hub *services.Hub,
) {
	valuationHandler := handlers.NewValuationHandler(refresher, cache)
	qualityHandler := handlers.NewQualityHandler(refresher, cache)
	draftHandler := handlers.NewDraftHandler(drafts, cfg)
	healthHandler := handlers.NewHealthHandler(refresher, hub)

	// Valuation endpoints
	group.GET("/valuations", valuationHandler.GetValuations)
	group.GET("/valuations/:id", valuationHandler.GetPlayerValuation)
	group.POST("/valuations/refresh", valuationHandler.RefreshValuations)

	// Data quality endpoints
	group.GET("/quality", qualityHandler.GetQualityReport)
	group.GET("/quality/conflicts", qualityHandler.GetConflicts)
	group.GET("/quality/diagnostics", qualityHandler.GetDiagnostics)

	// Draft session endpoints
	group.POST("/drafts", draftHandler.CreateSession)
	group.GET("/drafts/:id", draftHandler.GetSession)
	group.POST("/drafts/:id/picks", draftHandler.RecordPick)
	group.GET("/drafts/:id/budgets", draftHandler.GetBudgets)

	// Status endpoint
	group.GET("/status", healthHandler.GetStatus)

	// WebSocket endpoint lives at root level, not under /api/v1;
	// see cmd/server/main.go.
}
