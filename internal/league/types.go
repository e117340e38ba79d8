package league

import (
	"time"
)

// Position is a fantasy roster position.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionDST Position = "DST"
	PositionK   Position = "K"
)

// AllPositions lists every valid position in ranking order.
var AllPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionDST, PositionK}

// IsValid reports whether p is one of the six roster positions.
func (p Position) IsValid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionDST, PositionK:
		return true
	}
	return false
}

// FlexEligible reports whether the position can fill a FLEX slot.
func (p Position) FlexEligible() bool {
	return p == PositionRB || p == PositionWR || p == PositionTE
}

// StarterSlots defines how many starters each position gets per team.
type StarterSlots struct {
	QB   int `json:"qb" mapstructure:"qb"`
	RB   int `json:"rb" mapstructure:"rb"`
	WR   int `json:"wr" mapstructure:"wr"`
	TE   int `json:"te" mapstructure:"te"`
	FLEX int `json:"flex" mapstructure:"flex"`
	DST  int `json:"dst" mapstructure:"dst"`
	K    int `json:"k" mapstructure:"k"`
}

// Config is the read-only league configuration consumed by the valuation engine.
type Config struct {
	Teams      int          `json:"teams" mapstructure:"teams"`
	Budget     int          `json:"budget" mapstructure:"budget"`
	RosterSize int          `json:"roster_size" mapstructure:"roster_size"`
	Starters   StarterSlots `json:"starters" mapstructure:"starters"`

	// Fractional share of FLEX capacity allocated to each eligible position.
	// Shares should sum to 1.0 across RB/WR/TE.
	FlexShareRB float64 `json:"flex_share_rb" mapstructure:"flex_share_rb"`
	FlexShareWR float64 `json:"flex_share_wr" mapstructure:"flex_share_wr"`
	FlexShareTE float64 `json:"flex_share_te" mapstructure:"flex_share_te"`
}

// TotalBudget returns the league-wide auction budget.
func (c Config) TotalBudget() int {
	return c.Teams * c.Budget
}

// StartersFor returns the dedicated (non-FLEX) starter slots for a position.
func (c Config) StartersFor(p Position) int {
	switch p {
	case PositionQB:
		return c.Starters.QB
	case PositionRB:
		return c.Starters.RB
	case PositionWR:
		return c.Starters.WR
	case PositionTE:
		return c.Starters.TE
	case PositionDST:
		return c.Starters.DST
	case PositionK:
		return c.Starters.K
	}
	return 0
}

// RawADPRecord is one row from an average-draft-position provider.
// ADP and AuctionValue are nullable and must stay nil through reconciliation;
// substituting sentinels like 999 is a downstream concern.
type RawADPRecord struct {
	Rank         int      `json:"rank"`
	Name         string   `json:"name"`
	Team         string   `json:"team"`
	Position     string   `json:"position"`
	ADP          *float64 `json:"adp"`
	AuctionValue *float64 `json:"auction_value"`
	Age          *float64 `json:"age"`
	ByeWeek      int      `json:"bye_week"`
	Source       string   `json:"source"`
	SourceWeight float64  `json:"source_weight"`
}

// RawProjectionRecord is one row from a season projection provider.
type RawProjectionRecord struct {
	Name            string   `json:"name"`
	Team            string   `json:"team"`
	Position        string   `json:"position"`
	ProjectedPoints float64  `json:"projected_points"`
	FloorPoints     *float64 `json:"floor_points,omitempty"`
	CeilingPoints   *float64 `json:"ceiling_points,omitempty"`
	PassYards       *float64 `json:"pass_yards,omitempty"`
	PassTDs         *float64 `json:"pass_tds,omitempty"`
	RushYards       *float64 `json:"rush_yards,omitempty"`
	RushTDs         *float64 `json:"rush_tds,omitempty"`
	Receptions      *float64 `json:"receptions,omitempty"`
	RecYards        *float64 `json:"rec_yards,omitempty"`
	RecTDs          *float64 `json:"rec_tds,omitempty"`
	Source          string   `json:"source"`
	SourceWeight    float64  `json:"source_weight"`
}

// CanonicalPlayer is the resolved identity record. It is owned by the
// resolver's index and immutable once matched within a pipeline run.
type CanonicalPlayer struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Team          string   `json:"team"`
	Position      Position `json:"position"`
	Age           *float64 `json:"age,omitempty"`
	ByeWeek       int      `json:"bye_week,omitempty"`
	InjuryStatus  string   `json:"injury_status,omitempty"`
	IsRookie      bool     `json:"is_rookie,omitempty"`
	IsProvisional bool     `json:"is_provisional,omitempty"`
}

// MatchType classifies how an incoming record was matched to an identity.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchFuzzy       MatchType = "fuzzy"
	MatchProvisional MatchType = "provisional"
	MatchNotFound    MatchType = "not_found"
)

// MatchResult is the outcome of a single resolution call.
type MatchResult struct {
	Confidence float64          `json:"confidence"`
	MatchType  MatchType        `json:"match_type"`
	Player     *CanonicalPlayer `json:"player,omitempty"`
}

// ConflictType labels which field or category disagreed across sources.
type ConflictType string

const (
	ConflictADP        ConflictType = "adp"
	ConflictAuction    ConflictType = "auction_value"
	ConflictProjection ConflictType = "projected_points"
	ConflictTeam       ConflictType = "team"
)

// ConflictValue is one disagreeing input with its source tag.
type ConflictValue struct {
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}

// ConflictRecord captures a cross-source disagreement beyond tolerance.
// Records are append-only; they are never mutated after creation.
type ConflictRecord struct {
	ID               string          `json:"id"`
	PlayerKey        string          `json:"player_key"`
	ConflictType     ConflictType    `json:"conflict_type"`
	Values           []ConflictValue `json:"values"`
	ResolutionMethod string          `json:"resolution_method"`
	Confidence       float64         `json:"confidence"`
	RequiresReview   bool            `json:"requires_review"`
	RecordedAt       time.Time       `json:"recorded_at"`
}

// ReconciledPlayer is the per-player output of the source reconciler:
// one value per field plus a confidence derived from source agreement.
type ReconciledPlayer struct {
	Player          CanonicalPlayer `json:"player"`
	ADP             *float64        `json:"adp"`
	AuctionValue    *float64        `json:"auction_value"`
	ProjectedPoints float64         `json:"projected_points"`
	FloorPoints     *float64        `json:"floor_points,omitempty"`
	CeilingPoints   *float64        `json:"ceiling_points,omitempty"`
	SourceCount     int             `json:"source_count"`
	Confidence      float64         `json:"confidence"`
}

// Recommendation is the six-way buy/pass tier.
type Recommendation string

const (
	RecStrongBuy Recommendation = "STRONG_BUY"
	RecBuy       Recommendation = "BUY"
	RecFairValue Recommendation = "FAIR_VALUE"
	RecSlightPay Recommendation = "SLIGHT_OVERPAY"
	RecOverpay   Recommendation = "OVERPAY"
	RecAvoid     Recommendation = "AVOID"
)

// ValuationResult is the final output record consumed by the UI and
// draft tracker. It is produced once per run and never persisted as-is;
// the pipeline is a pure function from provider snapshots to this set.
type ValuationResult struct {
	PlayerID          string          `json:"player_id"`
	Name              string          `json:"name"`
	Team              string          `json:"team"`
	Position          Position        `json:"position"`
	ProjectedPoints   float64         `json:"projected_points"`
	AdjustedPoints    float64         `json:"adjusted_points"`
	ReplacementLevel  float64         `json:"replacement_level"`
	VORP              float64         `json:"vorp"`
	WeeklyValueSignal float64         `json:"weekly_value_signal"`
	IsStarter         bool            `json:"is_starter"`
	IntrinsicValue    int             `json:"intrinsic_value"`
	MinBid            int             `json:"min_bid"`
	MaxBid            int             `json:"max_bid"`
	MarketPrice       float64         `json:"market_price"`
	Edge              float64         `json:"edge"`
	WeightedEdge      float64         `json:"weighted_edge"`
	Confidence        float64         `json:"confidence"`
	Recommendation    Recommendation  `json:"recommendation"`
	ADP               *float64        `json:"adp,omitempty"`
	IsProvisional     bool            `json:"is_provisional,omitempty"`
}

// AdjustmentFactor is the opaque signal from the advanced-metrics collaborator.
type AdjustmentFactor struct {
	TotalAdjustment float64  `json:"total_adjustment"` // clamped to [0.7, 1.3]
	Confidence      float64  `json:"confidence"`
	Factors         []string `json:"factors"`
}

// AdjustmentProvider supplies per-player adjustment factors. Implementations
// must be safe to call for unknown players; the engine tolerates absence by
// defaulting the factor to 1.0.
type AdjustmentProvider interface {
	Adjustment(name string, position Position, team string) (AdjustmentFactor, bool)
}

// CacheProvider is the minimal cache surface used by providers and services.
type CacheProvider interface {
	SetSimple(key string, value interface{}, expiration time.Duration) error
	GetSimple(key string, dest interface{}) error
}
