package models

import (
	"time"

	"gorm.io/datatypes"
)

// DraftSession scopes draft picks and cached valuations to one live draft.
type DraftSession struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	LeagueName string    `gorm:"size:100" json:"league_name"`
	Teams      int       `gorm:"not null" json:"teams"`
	Budget     int       `gorm:"not null" json:"budget"`
	RosterSize int       `gorm:"not null" json:"roster_size"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Picks   []DraftPick  `gorm:"foreignKey:SessionID" json:"picks,omitempty"`
	Budgets []TeamBudget `gorm:"foreignKey:SessionID" json:"budgets,omitempty"`
}

// TableName specifies the table name for GORM
func (DraftSession) TableName() string {
	return "draft_sessions"
}

// TeamBudget tracks each team's remaining auction dollars within a session.
type TeamBudget struct {
	SessionID      string    `gorm:"primaryKey;size:36" json:"session_id"`
	TeamID         int       `gorm:"primaryKey" json:"team_id"`
	Remaining      int       `gorm:"not null" json:"remaining"`
	SlotsRemaining int       `gorm:"not null" json:"slots_remaining"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (TeamBudget) TableName() string {
	return "team_budgets"
}

// DraftPick is one completed auction purchase.
type DraftPick struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36;not null" json:"session_id"`
	PlayerID  string    `gorm:"size:120;not null" json:"player_id"`
	Player    string    `gorm:"size:100" json:"player"`
	Position  string    `gorm:"size:8" json:"position"`
	Price     int       `gorm:"not null" json:"price"`
	TeamID    int       `gorm:"not null" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (DraftPick) TableName() string {
	return "draft_picks"
}

// ValuationRun is the persisted summary of one pipeline execution, kept for
// audit. The full result set lives in the cache; only the quality report and
// counters are stored.
type ValuationRun struct {
	ID               string         `gorm:"primaryKey;size:36" json:"id"`
	SessionID        string         `gorm:"index;size:36" json:"session_id"`
	DataQualityScore int            `json:"data_quality_score"`
	PlayerCount      int            `json:"player_count"`
	ProvisionalCount int            `json:"provisional_count"`
	ConflictCount    int            `json:"conflict_count"`
	Conflicts        datatypes.JSON `json:"conflicts"`
	Diagnostics      datatypes.JSON `json:"diagnostics"`
	DurationMs       int64          `json:"duration_ms"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (ValuationRun) TableName() string {
	return "valuation_runs"
}
