// Package valuation turns the reconciled player pool into auction dollar
// values: replacement levels, VORP, a Monte Carlo weekly-value signal,
// starter classification, and the two-pass budget allocation.
package valuation

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
)

// Tables holds the tuned heuristic values the engine runs on. They encode
// domain assumptions that get recalibrated independently of the algorithm,
// so they arrive from configuration rather than constants.
type Tables struct {
	PositionVolatility map[league.Position]float64
	InjuryBaseRate     map[league.Position]float64
	InjuryAgeThreshold float64 // years; rate increases past this age
	InjuryAgeRate      float64 // added rate per year past threshold

	StarterShare    float64 // share of auctionable dollars for starters
	BenchShare      float64 // share for bench
	BenchVORPWeight float64 // discount applied to bench VORP weight

	MaxBidFactor float64
	MinBidFactor float64

	Trials int   // Monte Carlo trials per player
	Seed   int64 // 0 means unseeded (non-deterministic)
}

// DefaultTables returns the calibrated heuristic tables.
func DefaultTables() Tables {
	return Tables{
		PositionVolatility: map[league.Position]float64{
			league.PositionQB:  0.25,
			league.PositionRB:  0.35,
			league.PositionWR:  0.40,
			league.PositionTE:  0.45,
			league.PositionDST: 0.50,
			league.PositionK:   0.20,
		},
		InjuryBaseRate: map[league.Position]float64{
			league.PositionQB:  0.020,
			league.PositionRB:  0.035,
			league.PositionWR:  0.025,
			league.PositionTE:  0.025,
			league.PositionDST: 0.005,
			league.PositionK:   0.005,
		},
		InjuryAgeThreshold: 26,
		InjuryAgeRate:      0.015,
		StarterShare:       0.80,
		BenchShare:         0.20,
		BenchVORPWeight:    0.5,
		MaxBidFactor:       1.15,
		MinBidFactor:       0.85,
		Trials:             1000,
	}
}

// Engine computes valuations for one league configuration. It holds no
// per-run state; Valuate is a pure function of its inputs apart from the
// Monte Carlo draw.
type Engine struct {
	logger *logrus.Logger
	cfg    league.Config
	tables Tables
	adj    league.AdjustmentProvider
}

// NewEngine creates a valuation engine. adj may be nil; every factor then
// defaults to 1.0.
func NewEngine(logger *logrus.Logger, cfg league.Config, tables Tables, adj league.AdjustmentProvider) *Engine {
	return &Engine{logger: logger, cfg: cfg, tables: tables, adj: adj}
}

// Valuate runs the full valuation pass over the reconciled pool and returns
// one result per player, sorted by intrinsic value descending.
func (e *Engine) Valuate(pool []league.ReconciledPlayer) ([]league.ValuationResult, ReplacementLevels) {
	if len(pool) == 0 {
		return nil, ReplacementLevels{ByPosition: map[league.Position]float64{}}
	}

	rng := e.newRNG()

	// Pass 0: adjusted points for everyone, then replacement baselines.
	adjusted := make(map[string]float64, len(pool))
	factors := make(map[string]float64, len(pool))
	for _, p := range pool {
		f := e.adjustmentFactor(p.Player)
		factors[p.Player.ID] = f
		adjusted[p.Player.ID] = p.ProjectedPoints * f
	}

	levels := ComputeReplacementLevels(pool, adjusted, e.cfg)
	for _, w := range levels.Warnings {
		e.logger.Warn(w)
	}

	positionRank, flexRank := e.rankPlayers(pool, adjusted)

	results := make([]league.ValuationResult, 0, len(pool))
	for _, p := range pool {
		adj := adjusted[p.Player.ID]
		vorp := adj - levels.Level(p.Player.Position)
		if vorp < 0 {
			vorp = 0
		}

		starter := e.isStarter(p.Player.Position, positionRank[p.Player.ID], flexRank[p.Player.ID])
		signal := e.simulateWeeklyValue(simInput{
			AdjustedPoints: adj,
			Position:       p.Player.Position,
			ByeWeek:        p.Player.ByeWeek,
			Age:            p.Player.Age,
			StartProb:      e.startProbability(p.Player.Position, positionRank[p.Player.ID], flexRank[p.Player.ID]),
		}, rng)

		results = append(results, league.ValuationResult{
			PlayerID:          p.Player.ID,
			Name:              p.Player.Name,
			Team:              p.Player.Team,
			Position:          p.Player.Position,
			ProjectedPoints:   p.ProjectedPoints,
			AdjustedPoints:    adj,
			ReplacementLevel:  levels.Level(p.Player.Position),
			VORP:              vorp,
			WeeklyValueSignal: signal,
			IsStarter:         starter,
			Confidence:        p.Confidence,
			ADP:               p.ADP,
			IsProvisional:     p.Player.IsProvisional,
		})
	}

	e.allocateBudget(results, factors)

	sort.Slice(results, func(i, j int) bool {
		if results[i].IntrinsicValue != results[j].IntrinsicValue {
			return results[i].IntrinsicValue > results[j].IntrinsicValue
		}
		return results[i].PlayerID < results[j].PlayerID
	})
	return results, levels
}

func (e *Engine) newRNG() *rand.Rand {
	seed := e.tables.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// adjustmentFactor consults the advanced-metrics collaborator, clamping the
// opaque signal to its documented [0.7, 1.3] contract and defaulting to 1.0
// when the provider is absent or silent.
func (e *Engine) adjustmentFactor(p league.CanonicalPlayer) float64 {
	if e.adj == nil {
		return 1.0
	}
	factor, ok := e.adj.Adjustment(p.Name, p.Position, p.Team)
	if !ok {
		return 1.0
	}
	f := factor.TotalAdjustment
	if f < 0.7 {
		f = 0.7
	}
	if f > 1.3 {
		f = 1.3
	}
	return f
}

// rankPlayers computes 1-based ranks: per-position for QB/DST/K, and across
// the pooled RB/WR/TE list for FLEX-eligible players (both maps are filled
// for flex positions; classification uses the pooled one).
func (e *Engine) rankPlayers(pool []league.ReconciledPlayer, adjusted map[string]float64) (map[string]int, map[string]int) {
	byPosition := make(map[league.Position][]string)
	var flexIDs []string
	for _, p := range pool {
		byPosition[p.Player.Position] = append(byPosition[p.Player.Position], p.Player.ID)
		if p.Player.Position.FlexEligible() {
			flexIDs = append(flexIDs, p.Player.ID)
		}
	}

	rankOf := func(ids []string) map[string]int {
		sorted := make([]string, len(ids))
		copy(sorted, ids)
		sort.Slice(sorted, func(i, j int) bool {
			if adjusted[sorted[i]] != adjusted[sorted[j]] {
				return adjusted[sorted[i]] > adjusted[sorted[j]]
			}
			return sorted[i] < sorted[j]
		})
		ranks := make(map[string]int, len(sorted))
		for i, id := range sorted {
			ranks[id] = i + 1
		}
		return ranks
	}

	positionRank := make(map[string]int)
	for _, ids := range byPosition {
		for id, rank := range rankOf(ids) {
			positionRank[id] = rank
		}
	}
	flexRank := rankOf(flexIDs)

	return positionRank, flexRank
}

// isStarter applies the classification from the replacement-level design:
// QB/DST/K against dedicated slots, flex-eligible positions against the
// pooled FLEX ranking.
func (e *Engine) isStarter(pos league.Position, posRank, flexRank int) bool {
	if pos.FlexEligible() {
		slots := int(math.Round(pooledFlexSlots(e.cfg) * float64(e.cfg.Teams)))
		return flexRank > 0 && flexRank <= slots
	}
	return posRank > 0 && posRank <= e.cfg.StartersFor(pos)*e.cfg.Teams
}

// startProbability scales a player's expected weekly usage by their rank
// relative to the league's startable slots at their position.
func (e *Engine) startProbability(pos league.Position, posRank, flexRank int) float64 {
	var slots float64
	rank := posRank
	if pos.FlexEligible() {
		slots = pooledFlexSlots(e.cfg) * float64(e.cfg.Teams)
		rank = flexRank
	} else {
		slots = float64(e.cfg.StartersFor(pos) * e.cfg.Teams)
	}
	if rank <= 0 || slots <= 0 {
		return 0.05
	}

	prob := slots / float64(rank)
	if prob > 1 {
		prob = 1
	}
	if prob < 0.05 {
		prob = 0.05
	}
	return prob
}

// allocateBudget runs the two-pass dollar allocation in place.
//
// Pass 1 gives the starter share of auctionable dollars to starters in
// proportion to VORP. Pass 2 gives the bench share to positive-VORP bench
// players with VORP weight discounted; the discount applies to the weight,
// not the pool, so the full bench pool is still exhausted. Everyone else
// takes the $1 roster-slot floor.
func (e *Engine) allocateBudget(results []league.ValuationResult, factors map[string]float64) {
	auctionable := float64(e.cfg.TotalBudget() - e.cfg.Teams*e.cfg.RosterSize)
	if auctionable < 0 {
		auctionable = 0
	}

	var starterVORP, benchWeight float64
	for _, r := range results {
		if r.VORP <= 0 {
			continue
		}
		if r.IsStarter {
			starterVORP += r.VORP
		} else {
			benchWeight += r.VORP * e.tables.BenchVORPWeight
		}
	}

	starterPool := auctionable * e.tables.StarterShare
	benchPool := auctionable * e.tables.BenchShare

	// An empty pass folds its pool into the other one; the auctionable
	// dollars must be fully distributed either way or the league budget
	// stops summing.
	if benchWeight == 0 {
		starterPool += benchPool
		benchPool = 0
	} else if starterVORP == 0 {
		benchPool += starterPool
		starterPool = 0
	}

	for i := range results {
		r := &results[i]

		share := 0.0
		switch {
		case r.VORP > 0 && r.IsStarter && starterVORP > 0:
			share = starterPool * (r.VORP / starterVORP)
		case r.VORP > 0 && !r.IsStarter && benchWeight > 0:
			share = benchPool * (r.VORP * e.tables.BenchVORPWeight / benchWeight)
		}

		// Every rostered player carries the reserved $1 slot dollar.
		raw := share + 1
		value := int(math.Round(raw * factors[r.PlayerID]))
		if value < 1 {
			value = 1
		}

		r.IntrinsicValue = value
		r.MaxBid = int(math.Ceil(float64(value) * e.tables.MaxBidFactor))
		r.MinBid = int(math.Floor(float64(value) * e.tables.MinBidFactor))
		if r.MinBid < 1 {
			r.MinBid = 1
		}
	}
}
