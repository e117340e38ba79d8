package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/models"
	"github.com/tgriffin/draftedge/pkg/database"
)

// DraftService owns draft sessions: team budgets, recorded picks, and the
// persisted summaries of pipeline runs executed within a session.
type DraftService struct {
	db     *database.DB
	logger *logrus.Logger
	hub    *Hub
}

// NewDraftService creates the draft service. hub may be nil when no live
// clients need push updates.
func NewDraftService(db *database.DB, logger *logrus.Logger, hub *Hub) *DraftService {
	return &DraftService{db: db, logger: logger, hub: hub}
}

// StartSession creates a session with a full budget row per team.
func (s *DraftService) StartSession(leagueName string, cfg league.Config) (*models.DraftSession, error) {
	session := &models.DraftSession{
		ID:         uuid.NewString(),
		LeagueName: leagueName,
		Teams:      cfg.Teams,
		Budget:     cfg.Budget,
		RosterSize: cfg.RosterSize,
		IsActive:   true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for teamID := 1; teamID <= cfg.Teams; teamID++ {
			budget := models.TeamBudget{
				SessionID:      session.ID,
				TeamID:         teamID,
				Remaining:      cfg.Budget,
				SlotsRemaining: cfg.RosterSize,
			}
			if err := tx.Create(&budget).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start draft session: %w", err)
	}

	s.logger.Infof("Draft session %s started for %q (%d teams, $%d budget)",
		session.ID, leagueName, cfg.Teams, cfg.Budget)
	return session, nil
}

// GetSession loads a session with its picks and budgets.
func (s *DraftService) GetSession(sessionID string) (*models.DraftSession, error) {
	var session models.DraftSession
	err := s.db.Preload("Picks").Preload("Budgets").First(&session, "id = ?", sessionID).Error
	if err != nil {
		return nil, fmt.Errorf("draft session not found: %w", err)
	}
	return &session, nil
}

// RecordPick records an auction purchase and decrements the buying team's
// remaining budget and roster slots. Subsequent pipeline runs in the same
// session see the updated budgets.
func (s *DraftService) RecordPick(sessionID, playerID, playerName, position string, price, teamID int) (*models.DraftPick, error) {
	if price < 1 {
		return nil, fmt.Errorf("price must be at least $1")
	}

	pick := &models.DraftPick{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		PlayerID:  playerID,
		Player:    playerName,
		Position:  position,
		Price:     price,
		TeamID:    teamID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.TeamBudget
		if err := tx.First(&budget, "session_id = ? AND team_id = ?", sessionID, teamID).Error; err != nil {
			return fmt.Errorf("team %d has no budget in session %s: %w", teamID, sessionID, err)
		}

		// A team must keep $1 for each unfilled slot.
		maxAffordable := budget.Remaining - (budget.SlotsRemaining - 1)
		if price > maxAffordable {
			return fmt.Errorf("team %d cannot afford $%d (max $%d with %d slots left)",
				teamID, price, maxAffordable, budget.SlotsRemaining)
		}

		budget.Remaining -= price
		budget.SlotsRemaining--
		if err := tx.Save(&budget).Error; err != nil {
			return err
		}
		return tx.Create(pick).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Pick recorded: %s to team %d for $%d (session %s)", playerName, teamID, price, sessionID)
	if s.hub != nil {
		s.hub.BroadcastEvent("draft_pick", pick)
	}
	return pick, nil
}

// TeamBudgets returns remaining budgets for a session.
func (s *DraftService) TeamBudgets(sessionID string) ([]models.TeamBudget, error) {
	var budgets []models.TeamBudget
	if err := s.db.Find(&budgets, "session_id = ?", sessionID).Error; err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	return budgets, nil
}

// SaveRunSummary persists the audit record of one pipeline run.
func (s *DraftService) SaveRunSummary(sessionID string, report *RunReport) error {
	conflicts, err := json.Marshal(report.Quality.Conflicts)
	if err != nil {
		return fmt.Errorf("failed to marshal conflicts: %w", err)
	}
	diagnostics, err := json.Marshal(report.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics: %w", err)
	}

	run := models.ValuationRun{
		ID:               report.RunID,
		SessionID:        sessionID,
		DataQualityScore: report.Quality.Score,
		PlayerCount:      len(report.Results),
		ProvisionalCount: report.ProvisionalCount,
		ConflictCount:    report.Quality.ConflictCount,
		Conflicts:        datatypes.JSON(conflicts),
		Diagnostics:      datatypes.JSON(diagnostics),
		DurationMs:       report.Duration.Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.db.Create(&run).Error; err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}
