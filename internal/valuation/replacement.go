package valuation

import (
	"math"
	"sort"

	"github.com/tgriffin/draftedge/internal/league"
)

// ReplacementLevels holds the per-position baselines for one run. RB, WR,
// and TE share the pooled FLEX baseline, which is what makes FLEX scarcity
// shared rather than siloed.
type ReplacementLevels struct {
	ByPosition map[league.Position]float64 `json:"by_position"`
	FlexLevel  float64                     `json:"flex_level"`
	Warnings   []string                    `json:"warnings,omitempty"`
}

// Level returns the replacement baseline for a position.
func (r ReplacementLevels) Level(p league.Position) float64 {
	if p.FlexEligible() {
		return r.FlexLevel
	}
	return r.ByPosition[p]
}

// pooledFlexSlots is the per-team FLEX-eligible starter slot count:
// dedicated RB+WR+TE slots plus the FLEX slots weighted by their
// fractional position shares.
func pooledFlexSlots(cfg league.Config) float64 {
	shares := cfg.FlexShareRB + cfg.FlexShareWR + cfg.FlexShareTE
	return float64(cfg.Starters.RB+cfg.Starters.WR+cfg.Starters.TE) + float64(cfg.Starters.FLEX)*shares
}

// ComputeReplacementLevels derives the baselines from the reconciled pool.
// points maps player ID to adjusted projected points.
//
// QB/DST/K: points of the player at rank starters*teams in the
// position-sorted list. RB/WR/TE: one shared level at the pooled rank
// (RB+WR+TE+FLEX slots)*teams across all three positions.
//
// A pool shorter than the computed rank clamps to its last player; an empty
// pool yields level 0 with a warning rather than an error.
func ComputeReplacementLevels(pool []league.ReconciledPlayer, points map[string]float64, cfg league.Config) ReplacementLevels {
	levels := ReplacementLevels{ByPosition: make(map[league.Position]float64)}

	byPosition := make(map[league.Position][]float64)
	var flexPool []float64
	for _, p := range pool {
		pts := points[p.Player.ID]
		byPosition[p.Player.Position] = append(byPosition[p.Player.Position], pts)
		if p.Player.Position.FlexEligible() {
			flexPool = append(flexPool, pts)
		}
	}

	for _, pos := range []league.Position{league.PositionQB, league.PositionDST, league.PositionK} {
		rank := cfg.StartersFor(pos) * cfg.Teams
		level, warning := levelAtRank(byPosition[pos], rank, string(pos))
		levels.ByPosition[pos] = level
		if warning != "" {
			levels.Warnings = append(levels.Warnings, warning)
		}
	}

	flexRank := int(math.Round(pooledFlexSlots(cfg) * float64(cfg.Teams)))
	level, warning := levelAtRank(flexPool, flexRank, "FLEX")
	levels.FlexLevel = level
	if warning != "" {
		levels.Warnings = append(levels.Warnings, warning)
	}
	for _, pos := range []league.Position{league.PositionRB, league.PositionWR, league.PositionTE} {
		levels.ByPosition[pos] = level
	}

	return levels
}

// levelAtRank sorts descending and returns the points at the 1-based rank.
func levelAtRank(points []float64, rank int, label string) (float64, string) {
	if len(points) == 0 {
		return 0, label + " pool is empty, replacement level set to 0"
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(points)))

	warning := ""
	if rank < 1 {
		rank = 1
	}
	if rank > len(points) {
		rank = len(points)
		warning = label + " pool smaller than replacement rank, clamped to last player"
	}
	return points[rank-1], warning
}
