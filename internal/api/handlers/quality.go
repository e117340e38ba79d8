package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/services"
	"github.com/tgriffin/draftedge/pkg/utils"
)

// QualityHandler serves the data-quality report and conflict log for the
// latest run.
type QualityHandler struct {
	refresher *services.RefresherService
	cache     *services.CacheService
}

func NewQualityHandler(refresher *services.RefresherService, cache *services.CacheService) *QualityHandler {
	return &QualityHandler{
		refresher: refresher,
		cache:     cache,
	}
}

// GetQualityReport returns the quality report of the latest run.
func (h *QualityHandler) GetQualityReport(c *gin.Context) {
	if report := h.refresher.LastReport(); report != nil {
		utils.SendSuccess(c, report.Quality)
		return
	}

	var cached services.RunReport
	if err := h.cache.Get(c.Request.Context(), services.ValuationCacheKey("latest"), &cached); err == nil {
		utils.SendSuccess(c, cached.Quality)
		return
	}

	utils.SendServiceUnavailable(c, "no valuation run available yet")
}

// GetConflicts returns the conflict log, optionally only records flagged
// for manual review.
func (h *QualityHandler) GetConflicts(c *gin.Context) {
	report := h.refresher.LastReport()
	if report == nil {
		utils.SendServiceUnavailable(c, "no valuation run available yet")
		return
	}

	conflicts := report.Quality.Conflicts
	if c.Query("review") == "true" {
		filtered := make([]league.ConflictRecord, 0)
		for _, cr := range conflicts {
			if cr.RequiresReview {
				filtered = append(filtered, cr)
			}
		}
		conflicts = filtered
	}
	utils.SendSuccess(c, conflicts)
}

// GetDiagnostics returns per-source ingestion diagnostics for the latest run.
func (h *QualityHandler) GetDiagnostics(c *gin.Context) {
	report := h.refresher.LastReport()
	if report == nil {
		utils.SendServiceUnavailable(c, "no valuation run available yet")
		return
	}
	utils.SendSuccess(c, report.Diagnostics)
}
