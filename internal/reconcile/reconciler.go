// Package reconcile collapses per-source raw records that resolve to the
// same identity into one canonical record per player, logging every
// disagreement beyond tolerance.
package reconcile

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/resolve"
)

// Tolerances above which a disagreement becomes a ConflictRecord, expressed
// as relative spread across sources.
type Tolerances struct {
	ADP        float64
	Auction    float64
	Projection float64
}

// DefaultTolerances matches the disagreement thresholds the conflict log
// was calibrated with.
func DefaultTolerances() Tolerances {
	return Tolerances{ADP: 0.25, Auction: 0.20, Projection: 0.15}
}

// Reconciler aggregates raw records by canonical identity.
type Reconciler struct {
	logger     *logrus.Logger
	resolver   *resolve.Resolver
	tolerances Tolerances

	conflicts []league.ConflictRecord
}

// NewReconciler creates a reconciler bound to a resolver for this run.
func NewReconciler(logger *logrus.Logger, resolver *resolve.Resolver, tol Tolerances) *Reconciler {
	return &Reconciler{
		logger:     logger,
		resolver:   resolver,
		tolerances: tol,
	}
}

type adpGroup struct {
	player  *league.CanonicalPlayer
	records []league.RawADPRecord
	minConf float64
}

type projGroup struct {
	player  *league.CanonicalPlayer
	records []league.RawProjectionRecord
	minConf float64
}

// ReconcileADP collapses ADP rows from all providers into one record per
// player. Null ADP and auction values are preserved as nil; a player whose
// sources all report null keeps null.
func (r *Reconciler) ReconcileADP(records []league.RawADPRecord) []league.ReconciledPlayer {
	groups := make(map[string]*adpGroup)
	for _, rec := range records {
		match := r.resolver.ResolveOrProvision(rec.Name, rec.Team, rec.Position)
		if match.Player == nil {
			continue
		}
		g, ok := groups[match.Player.ID]
		if !ok {
			g = &adpGroup{player: match.Player, minConf: match.Confidence}
			groups[match.Player.ID] = g
		}
		if match.Confidence < g.minConf {
			g.minConf = match.Confidence
		}
		g.records = append(g.records, rec)
	}

	out := make([]league.ReconciledPlayer, 0, len(groups))
	for _, g := range groups {
		out = append(out, r.reconcileADPGroup(g))
	}
	return out
}

func (r *Reconciler) reconcileADPGroup(g *adpGroup) league.ReconciledPlayer {
	var adps, auctions, auctionWeights []float64
	for _, rec := range g.records {
		if rec.ADP != nil {
			adps = append(adps, *rec.ADP)
		}
		if rec.AuctionValue != nil {
			auctions = append(auctions, *rec.AuctionValue)
			auctionWeights = append(auctionWeights, rec.SourceWeight)
		}
	}

	rp := league.ReconciledPlayer{
		Player:      *g.player,
		SourceCount: len(g.records),
		Confidence:  g.minConf,
	}

	if len(adps) > 0 {
		v := Median(adps)
		rp.ADP = &v
		r.recordConflict(g.player.ID, league.ConflictADP, adps, sourcesOfADP(g.records, func(rec league.RawADPRecord) *float64 { return rec.ADP }),
			StrategyMedian, g.minConf, r.tolerances.ADP)
	}
	if len(auctions) > 0 {
		v := WeightedAverage(auctions, auctionWeights)
		rp.AuctionValue = &v
		r.recordConflict(g.player.ID, league.ConflictAuction, auctions, sourcesOfADP(g.records, func(rec league.RawADPRecord) *float64 { return rec.AuctionValue }),
			StrategyWeightedAverage, g.minConf, r.tolerances.Auction)
	}

	return rp
}

// ReconcileProjections collapses projection rows into one record per player
// and derives the agreement-based confidence. Players with zero contributing
// sources after filtering are excluded.
func (r *Reconciler) ReconcileProjections(records []league.RawProjectionRecord) []league.ReconciledPlayer {
	groups := make(map[string]*projGroup)
	dropped := 0
	for _, rec := range records {
		if rec.Name == "" || rec.ProjectedPoints <= 0 {
			dropped++
			continue
		}
		match := r.resolver.ResolveOrProvision(rec.Name, rec.Team, rec.Position)
		if match.Player == nil {
			dropped++
			continue
		}
		g, ok := groups[match.Player.ID]
		if !ok {
			g = &projGroup{player: match.Player, minConf: match.Confidence}
			groups[match.Player.ID] = g
		}
		if match.Confidence < g.minConf {
			g.minConf = match.Confidence
		}
		g.records = append(g.records, rec)
	}
	if dropped > 0 {
		r.logger.Infof("Projection reconciliation dropped %d rows (missing name, non-positive points, or unresolvable)", dropped)
	}

	out := make([]league.ReconciledPlayer, 0, len(groups))
	for _, g := range groups {
		out = append(out, r.reconcileProjGroup(g))
	}
	return out
}

func (r *Reconciler) reconcileProjGroup(g *projGroup) league.ReconciledPlayer {
	var points, weights, floors, ceilings []float64
	var sources []league.ConflictValue
	for _, rec := range g.records {
		points = append(points, rec.ProjectedPoints)
		weights = append(weights, rec.SourceWeight)
		sources = append(sources, league.ConflictValue{Source: rec.Source, Value: rec.ProjectedPoints})
		if rec.FloorPoints != nil {
			floors = append(floors, *rec.FloorPoints)
		}
		if rec.CeilingPoints != nil {
			ceilings = append(ceilings, *rec.CeilingPoints)
		}
	}

	rp := league.ReconciledPlayer{
		Player:          *g.player,
		ProjectedPoints: WeightedAverage(points, weights),
		SourceCount:     len(g.records),
		Confidence:      ProjectionConfidence(len(g.records), CoefficientOfVariation(points)),
	}
	if len(floors) > 0 {
		// Floor keeps the most conservative source.
		v := Lowest(floors)
		rp.FloorPoints = &v
	}
	if len(ceilings) > 0 {
		v := Median(ceilings)
		rp.CeilingPoints = &v
	}

	if Spread(points) > r.tolerances.Projection {
		r.appendConflict(g.player.ID, league.ConflictProjection, sources, StrategyWeightedAverage, rp.Confidence)
	}

	return rp
}

// ProjectionConfidence blends source count (saturating at 3) with cross-source
// agreement. Result clamps to [0.3, 0.95].
func ProjectionConfidence(sourceCount int, cv float64) float64 {
	if sourceCount <= 0 {
		return 0.3
	}

	sourceFactor := float64(sourceCount) / 3.0
	if sourceFactor > 1 {
		sourceFactor = 1
	}

	agreementBonus := 0.45 * (1 - cv)
	if agreementBonus < 0 {
		agreementBonus = 0
	}

	conf := sourceFactor*0.5 + agreementBonus
	if conf < 0.3 {
		conf = 0.3
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

func (r *Reconciler) recordConflict(playerKey string, ct league.ConflictType, values []float64, sources []league.ConflictValue, method string, confidence, tolerance float64) {
	if Spread(values) <= tolerance {
		return
	}
	r.appendConflict(playerKey, ct, sources, method, confidence)
}

func (r *Reconciler) appendConflict(playerKey string, ct league.ConflictType, values []league.ConflictValue, method string, confidence float64) {
	raw := make([]float64, len(values))
	for i, v := range values {
		raw[i] = v.Value
	}

	rec := league.ConflictRecord{
		ID:               uuid.NewString(),
		PlayerKey:        playerKey,
		ConflictType:     ct,
		Values:           values,
		ResolutionMethod: method,
		Confidence:       confidence,
		RequiresReview:   confidence < 0.5 || Spread(raw) > 0.5,
		RecordedAt:       time.Now().UTC(),
	}
	r.conflicts = append(r.conflicts, rec)
	r.logger.Debugf("Conflict recorded for %s (%s): %d sources disagree", playerKey, ct, len(values))
}

// Conflicts returns the accumulated conflict log for this run.
func (r *Reconciler) Conflicts() []league.ConflictRecord {
	return r.conflicts
}

func sourcesOfADP(records []league.RawADPRecord, field func(league.RawADPRecord) *float64) []league.ConflictValue {
	var out []league.ConflictValue
	for _, rec := range records {
		if v := field(rec); v != nil {
			out = append(out, league.ConflictValue{Source: rec.Source, Value: *v})
		}
	}
	return out
}
