package reconcile

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/resolve"
)

func f(v float64) *float64 { return &v }

func newTestReconciler(t *testing.T, index []league.RawADPRecord) *Reconciler {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	resolver := resolve.NewResolver(logger, 0)
	resolver.Initialize(index)
	return NewReconciler(logger, resolver, DefaultTolerances())
}

func TestReconcileADPMedian(t *testing.T) {
	records := []league.RawADPRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ADP: f(4), Source: "alpha", SourceWeight: 1},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ADP: f(5), Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, records)

	out := r.ReconcileADP(records)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ADP)
	assert.Equal(t, 4.5, *out[0].ADP)
	assert.Equal(t, 2, out[0].SourceCount)
	// Close agreement stays off the conflict log.
	assert.Empty(t, r.Conflicts())
}

func TestReconcileAuctionWeightedAverage(t *testing.T) {
	records := []league.RawADPRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", AuctionValue: f(55), Source: "alpha", SourceWeight: 1},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", AuctionValue: f(58), Source: "beta", SourceWeight: 3},
	}
	r := newTestReconciler(t, records)

	out := r.ReconcileADP(records)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].AuctionValue)
	assert.InDelta(t, 57.25, *out[0].AuctionValue, 1e-9)
}

func TestReconcileADPPreservesNull(t *testing.T) {
	records := []league.RawADPRecord{
		{Name: "Deep Sleeper", Team: "DAL", Position: "WR", Source: "alpha", SourceWeight: 1},
		{Name: "Deep Sleeper", Team: "DAL", Position: "WR", Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, records)

	out := r.ReconcileADP(records)
	require.Len(t, out, 1)
	// All sources null: stays null, never a sentinel.
	assert.Nil(t, out[0].ADP)
	assert.Nil(t, out[0].AuctionValue)
}

func TestReconcileADPConflictLogged(t *testing.T) {
	records := []league.RawADPRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ADP: f(10), Source: "alpha", SourceWeight: 1},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ADP: f(40), Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, records)

	out := r.ReconcileADP(records)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ADP)
	assert.Equal(t, 25.0, *out[0].ADP)

	conflicts := r.Conflicts()
	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, league.ConflictADP, c.ConflictType)
	assert.Equal(t, StrategyMedian, c.ResolutionMethod)
	assert.Len(t, c.Values, 2)
	// Spread beyond 0.5 flags the record for review.
	assert.True(t, c.RequiresReview)
	assert.NotEmpty(t, c.ID)
}

func TestReconcileMergesSourceSpellings(t *testing.T) {
	records := []league.RawADPRecord{
		{Name: "Patrick Mahomes II", Team: "KC", Position: "QB", ADP: f(20), Source: "alpha", SourceWeight: 1},
		{Name: "Patrick Mahomes", Team: "Kansas City Chiefs", Position: "qb", ADP: f(22), Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, records[:1])

	out := r.ReconcileADP(records)
	require.Len(t, out, 1)
	assert.Equal(t, 21.0, *out[0].ADP)
	assert.Equal(t, 2, out[0].SourceCount)
}

func TestReconcileProjections(t *testing.T) {
	index := []league.RawADPRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR"},
	}
	records := []league.RawProjectionRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ProjectedPoints: 280,
			FloorPoints: f(220), CeilingPoints: f(340), Source: "alpha", SourceWeight: 1},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ProjectedPoints: 300,
			FloorPoints: f(240), CeilingPoints: f(360), Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, index)

	out := r.ReconcileProjections(records)
	require.Len(t, out, 1)
	rp := out[0]
	assert.InDelta(t, 290, rp.ProjectedPoints, 1e-9)
	// Floor keeps the most conservative source, ceiling takes the median.
	require.NotNil(t, rp.FloorPoints)
	assert.Equal(t, 220.0, *rp.FloorPoints)
	require.NotNil(t, rp.CeilingPoints)
	assert.Equal(t, 350.0, *rp.CeilingPoints)
	assert.Equal(t, 2, rp.SourceCount)
	assert.GreaterOrEqual(t, rp.Confidence, 0.3)
	assert.LessOrEqual(t, rp.Confidence, 0.95)
}

func TestReconcileProjectionsDropsInvalidRows(t *testing.T) {
	index := []league.RawADPRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR"},
	}
	records := []league.RawProjectionRecord{
		{Name: "", Team: "MIN", Position: "WR", ProjectedPoints: 100, Source: "alpha"},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ProjectedPoints: 0, Source: "alpha"},
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR", ProjectedPoints: 280, Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, index)

	out := r.ReconcileProjections(records)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].SourceCount)
	assert.InDelta(t, 280, out[0].ProjectedPoints, 1e-9)
}

func TestReconcileUnknownPlayerBecomesProvisional(t *testing.T) {
	index := []league.RawADPRecord{
		{Name: "Justin Jefferson", Team: "MIN", Position: "WR"},
	}
	records := []league.RawProjectionRecord{
		{Name: "Undrafted Rookie", Team: "SEA", Position: "RB", ProjectedPoints: 120, Source: "beta", SourceWeight: 1},
	}
	r := newTestReconciler(t, index)

	out := r.ReconcileProjections(records)
	require.Len(t, out, 1)
	assert.True(t, out[0].Player.IsProvisional)
}
