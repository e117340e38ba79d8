package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tgriffin/draftedge/internal/services"
	"github.com/tgriffin/draftedge/pkg/config"
	"github.com/tgriffin/draftedge/pkg/utils"
)

// DraftHandler exposes draft sessions, picks, and team budgets.
type DraftHandler struct {
	drafts *services.DraftService
	cfg    *config.Config
}

func NewDraftHandler(drafts *services.DraftService, cfg *config.Config) *DraftHandler {
	return &DraftHandler{
		drafts: drafts,
		cfg:    cfg,
	}
}

type createSessionRequest struct {
	LeagueName string `json:"league_name" binding:"required"`
}

// CreateSession starts a new draft session using the configured league.
func (h *DraftHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	session, err := h.drafts.StartSession(req.LeagueName, h.cfg.LeagueConfig())
	if err != nil {
		utils.SendInternalError(c, err.Error())
		return
	}
	utils.SendSuccess(c, session)
}

// GetSession returns a session with its picks and budgets.
func (h *DraftHandler) GetSession(c *gin.Context) {
	session, err := h.drafts.GetSession(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, session)
}

type recordPickRequest struct {
	PlayerID   string `json:"player_id" binding:"required"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	Price      int    `json:"price" binding:"required,min=1"`
	TeamID     int    `json:"team_id" binding:"required,min=1"`
}

// RecordPick records an auction purchase against a session.
func (h *DraftHandler) RecordPick(c *gin.Context) {
	var req recordPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	pick, err := h.drafts.RecordPick(c.Param("id"), req.PlayerID, req.PlayerName, req.Position, req.Price, req.TeamID)
	if err != nil {
		utils.SendConflict(c, err.Error())
		return
	}
	utils.SendSuccess(c, pick)
}

// GetBudgets returns remaining budgets for each team in a session.
func (h *DraftHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.drafts.TeamBudgets(c.Param("id"))
	if err != nil {
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, budgets)
}
