package resolve

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgriffin/draftedge/internal/league"
)

func testRecords() []league.RawADPRecord {
	return []league.RawADPRecord{
		{Rank: 1, Name: "Justin Jefferson", Team: "MIN", Position: "WR"},
		{Rank: 2, Name: "Christian McCaffrey", Team: "SF", Position: "RB"},
		{Rank: 3, Name: "Patrick Mahomes II", Team: "KC", Position: "QB"},
		{Rank: 4, Name: "Chicago Bears", Team: "CHI", Position: "DST"},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	r := NewResolver(logger, 0)
	r.Initialize(testRecords())
	return r
}

func TestResolveExact(t *testing.T) {
	r := newTestResolver(t)

	result := r.Resolve("Justin Jefferson", "MIN", "WR")
	require.Equal(t, league.MatchExact, result.MatchType)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, "Justin Jefferson", result.Player.Name)
}

func TestResolveExactAcrossSpellings(t *testing.T) {
	r := newTestResolver(t)

	// Suffix and team-name variants normalize to the same key.
	result := r.Resolve("Patrick Mahomes", "Kansas City Chiefs", "qb")
	require.Equal(t, league.MatchExact, result.MatchType)
	assert.Equal(t, "Patrick Mahomes II", result.Player.Name)
}

func TestResolveTeamDisagreement(t *testing.T) {
	r := newTestResolver(t)

	// Same name and position, stale team: matches via the relaxed index.
	result := r.Resolve("Christian McCaffrey", "CAR", "RB")
	require.Equal(t, league.MatchFuzzy, result.MatchType)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Equal(t, "Christian McCaffrey", result.Player.Name)
}

func TestResolveFuzzy(t *testing.T) {
	r := newTestResolver(t)

	// Misspelled name still lands on the right identity.
	result := r.Resolve("Cristian McCaffrey", "SF", "RB")
	require.Equal(t, league.MatchFuzzy, result.MatchType)
	assert.Equal(t, "Christian McCaffrey", result.Player.Name)
	assert.GreaterOrEqual(t, result.Confidence, 0.7)
	assert.Less(t, result.Confidence, 1.0)
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t)

	result := r.Resolve("Totally Unknown Player", "KC", "WR")
	assert.Equal(t, league.MatchNotFound, result.MatchType)
	assert.Nil(t, result.Player)
}

func TestResolveDSTVariants(t *testing.T) {
	r := newTestResolver(t)

	for _, name := range []string{"Chicago Bears", "Bears DST", "CHI DST"} {
		result := r.Resolve(name, "CHI", "D/ST")
		require.Equal(t, league.MatchExact, result.MatchType, "variant %q", name)
		assert.Equal(t, league.PositionDST, result.Player.Position)
	}
}

func TestResolveOrProvision(t *testing.T) {
	r := newTestResolver(t)

	result := r.ResolveOrProvision("Rookie Nobody", "DAL", "WR")
	require.Equal(t, league.MatchProvisional, result.MatchType)
	assert.True(t, result.Player.IsProvisional)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
	assert.Equal(t, 1, r.ProvisionalCount())

	// Second sighting reuses the provisional identity.
	again := r.ResolveOrProvision("Rookie Nobody", "DAL", "WR")
	assert.Equal(t, result.Player.ID, again.Player.ID)
	assert.Equal(t, 1, r.ProvisionalCount())
}

func TestResolveIsDeterministic(t *testing.T) {
	// The fuzzy scan iterates a map; repeated runs must pick the same player.
	first := newTestResolver(t).Resolve("Cristian McCaffrey", "", "RB")
	for i := 0; i < 20; i++ {
		again := newTestResolver(t).Resolve("Cristian McCaffrey", "", "RB")
		require.Equal(t, first.Player.ID, again.Player.ID)
		require.Equal(t, first.Confidence, again.Confidence)
	}
}

func TestInitializeFirstRowWins(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	r := NewResolver(logger, 0)
	r.Initialize([]league.RawADPRecord{
		{Rank: 1, Name: "Justin Jefferson", Team: "MIN", Position: "WR", ByeWeek: 6},
		{Rank: 2, Name: "Justin Jefferson", Team: "MIN", Position: "WR", ByeWeek: 13},
	})

	assert.Equal(t, 1, r.Size())
	result := r.Resolve("Justin Jefferson", "MIN", "WR")
	require.NotNil(t, result.Player)
	assert.Equal(t, 6, result.Player.ByeWeek)
}
