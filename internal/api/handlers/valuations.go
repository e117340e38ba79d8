package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/services"
	"github.com/tgriffin/draftedge/pkg/utils"
)

// ValuationHandler serves the latest valuation run and manual refreshes.
type ValuationHandler struct {
	refresher *services.RefresherService
	cache     *services.CacheService
}

func NewValuationHandler(refresher *services.RefresherService, cache *services.CacheService) *ValuationHandler {
	return &ValuationHandler{
		refresher: refresher,
		cache:     cache,
	}
}

// GetValuations returns the most recent run, optionally filtered by position
// or recommendation tier.
func (h *ValuationHandler) GetValuations(c *gin.Context) {
	report := h.latestReport(c)
	if report == nil {
		return
	}

	results := report.Results
	if pos := strings.ToUpper(c.Query("position")); pos != "" {
		if !league.Position(pos).IsValid() {
			utils.SendValidationError(c, "invalid position", pos)
			return
		}
		filtered := make([]league.ValuationResult, 0, len(results))
		for _, r := range results {
			if string(r.Position) == pos {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	if rec := strings.ToUpper(c.Query("recommendation")); rec != "" {
		filtered := make([]league.ValuationResult, 0, len(results))
		for _, r := range results {
			if string(r.Recommendation) == rec {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	utils.SendSuccess(c, gin.H{
		"run_id":            report.RunID,
		"results":           results,
		"provisional_count": report.ProvisionalCount,
		"warnings":          report.Warnings,
	})
}

// GetPlayerValuation returns the valuation for one player by ID.
func (h *ValuationHandler) GetPlayerValuation(c *gin.Context) {
	report := h.latestReport(c)
	if report == nil {
		return
	}

	playerID := c.Param("id")
	for _, r := range report.Results {
		if r.PlayerID == playerID {
			utils.SendSuccess(c, r)
			return
		}
	}
	utils.SendNotFound(c, "player not found in latest run")
}

// RefreshValuations triggers a pipeline run outside the schedule.
func (h *ValuationHandler) RefreshValuations(c *gin.Context) {
	report, err := h.refresher.RefreshNow(c.Request.Context())
	if err != nil {
		utils.SendServiceUnavailable(c, err.Error())
		return
	}
	utils.SendSuccess(c, gin.H{
		"run_id":       report.RunID,
		"player_count": len(report.Results),
		"quality":      report.Quality.Score,
		"duration_ms":  report.Duration.Milliseconds(),
	})
}

// latestReport loads the freshest run, preferring the in-memory copy and
// falling back to the cache after a restart. Writes the error response and
// returns nil when no run exists yet.
func (h *ValuationHandler) latestReport(c *gin.Context) *services.RunReport {
	if report := h.refresher.LastReport(); report != nil {
		return report
	}

	var cached services.RunReport
	if err := h.cache.Get(c.Request.Context(), services.ValuationCacheKey("latest"), &cached); err == nil {
		return &cached
	}

	utils.SendServiceUnavailable(c, "no valuation run available yet")
	return nil
}
