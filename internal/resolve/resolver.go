// Package resolve matches incoming player records against an index of known
// identities built from the authoritative ADP source.
package resolve

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/normalize"
)

// DefaultFuzzyThreshold is the minimum similarity for a fuzzy match.
const DefaultFuzzyThreshold = 0.85

// Resolver holds the identity index for one pipeline run. Build it once with
// Initialize, then read from any number of callers; there is no incremental
// update path.
type Resolver struct {
	logger    *logrus.Logger
	threshold float64

	// primary: name|team|position -> player
	index map[string]*league.CanonicalPlayer
	// secondary: name||position -> players (team relaxed)
	byName map[string][]*league.CanonicalPlayer

	provisionalCount int
}

// NewResolver creates an empty resolver. threshold <= 0 selects the default.
func NewResolver(logger *logrus.Logger, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Resolver{
		logger:    logger,
		threshold: threshold,
		index:     make(map[string]*league.CanonicalPlayer),
		byName:    make(map[string][]*league.CanonicalPlayer),
	}
}

// Initialize discards any prior state and rebuilds the index from the ADP
// records. Rows without a recognizable position are skipped and counted.
func (r *Resolver) Initialize(records []league.RawADPRecord) {
	r.index = make(map[string]*league.CanonicalPlayer, len(records))
	r.byName = make(map[string][]*league.CanonicalPlayer, len(records))
	r.provisionalCount = 0

	skipped := 0
	for _, rec := range records {
		pos, ok := normalize.Position(rec.Position)
		if !ok || rec.Name == "" {
			skipped++
			continue
		}

		team := ""
		if code, ok := normalize.Team(rec.Team); ok {
			team = code
		}

		player := &league.CanonicalPlayer{
			ID:       normalize.PlayerKey(rec.Name, rec.Team, rec.Position),
			Name:     rec.Name,
			Team:     team,
			Position: league.Position(pos),
			Age:      rec.Age,
			ByeWeek:  rec.ByeWeek,
		}

		key := normalize.PlayerKey(rec.Name, rec.Team, rec.Position)
		if _, exists := r.index[key]; exists {
			continue // first authoritative row wins
		}
		r.index[key] = player

		nameKey := normalize.NameKey(rec.Name, rec.Position)
		r.byName[nameKey] = append(r.byName[nameKey], player)
	}

	if skipped > 0 {
		r.logger.Warnf("Resolver index: skipped %d ADP rows with missing name or unknown position", skipped)
	}
	r.logger.Infof("Resolver index built with %d players", len(r.index))
}

// Size returns the number of indexed identities.
func (r *Resolver) Size() int {
	return len(r.index)
}

// Players returns all indexed canonical players.
func (r *Resolver) Players() []*league.CanonicalPlayer {
	players := make([]*league.CanonicalPlayer, 0, len(r.index))
	for _, p := range r.index {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}

// Resolve matches (name, team, position) against the index.
//
//  1. Exact key lookup on name|team|position: confidence 1.0.
//  2. Relaxed name||position lookup, then fuzzy similarity against
//     same-position candidates: confidence scaled into [0.7, 0.99].
//  3. Below threshold: not_found; the caller creates a provisional player.
func (r *Resolver) Resolve(name, team, position string) league.MatchResult {
	key := normalize.PlayerKey(name, team, position)
	if p, ok := r.index[key]; ok {
		return league.MatchResult{Confidence: 1.0, MatchType: league.MatchExact, Player: p}
	}

	// Same name and position, team disagreed or was missing.
	nameKey := normalize.NameKey(name, position)
	if candidates := r.byName[nameKey]; len(candidates) > 0 {
		return league.MatchResult{Confidence: 0.95, MatchType: league.MatchFuzzy, Player: candidates[0]}
	}

	pos, ok := normalize.Position(position)
	if !ok {
		return league.MatchResult{MatchType: league.MatchNotFound}
	}

	target := normalize.Name(name)
	if league.Position(pos) == league.PositionDST {
		target = normalize.Name(normalize.DSTName(name))
	}

	var best *league.CanonicalPlayer
	bestScore := 0.0
	for _, p := range r.index {
		if string(p.Position) != pos {
			continue
		}
		score := Similarity(target, normalize.Name(p.Name))
		// Ties break on ID so repeated resolution stays deterministic
		// despite map iteration order.
		if score > bestScore || (score == bestScore && best != nil && p.ID < best.ID) {
			best, bestScore = p, score
		}
	}

	if best != nil && bestScore >= r.threshold {
		// Map similarity in [threshold, 1) onto confidence [0.7, 0.99].
		span := 1.0 - r.threshold
		conf := 0.7 + (bestScore-r.threshold)/span*0.29
		r.logger.Debugf("Fuzzy matched %q -> %q (similarity %.2f, confidence %.2f)", name, best.Name, bestScore, conf)
		return league.MatchResult{Confidence: conf, MatchType: league.MatchFuzzy, Player: best}
	}

	return league.MatchResult{MatchType: league.MatchNotFound}
}

// ResolveOrProvision resolves the record and, when nothing clears the
// threshold, registers a provisional player derived purely from the
// unmatched record. Provisional players are real pipeline members with
// reduced trust, not dropped rows.
func (r *Resolver) ResolveOrProvision(name, team, position string) league.MatchResult {
	result := r.Resolve(name, team, position)
	if result.MatchType != league.MatchNotFound {
		return result
	}

	pos, ok := normalize.Position(position)
	if !ok || name == "" {
		return result
	}

	code := ""
	if c, ok := normalize.Team(team); ok {
		code = c
	}

	player := &league.CanonicalPlayer{
		ID:            normalize.PlayerKey(name, team, position),
		Name:          name,
		Team:          code,
		Position:      league.Position(pos),
		IsProvisional: true,
	}
	if existing, ok := r.index[player.ID]; ok {
		// A prior unmatched record already provisioned this identity.
		return league.MatchResult{Confidence: 0.6, MatchType: league.MatchProvisional, Player: existing}
	}

	r.index[player.ID] = player
	r.byName[normalize.NameKey(name, position)] = append(r.byName[normalize.NameKey(name, position)], player)
	r.provisionalCount++
	r.logger.Debugf("Provisional player created: %s", player.ID)

	return league.MatchResult{Confidence: 0.6, MatchType: league.MatchProvisional, Player: player}
}

// ProvisionalCount reports how many provisional identities this run created.
func (r *Resolver) ProvisionalCount() int {
	return r.provisionalCount
}

// String implements fmt.Stringer for log output.
func (r *Resolver) String() string {
	return fmt.Sprintf("Resolver{players: %d, provisional: %d}", len(r.index), r.provisionalCount)
}
