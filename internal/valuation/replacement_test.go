package valuation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgriffin/draftedge/internal/league"
)

func testConfig() league.Config {
	return league.Config{
		Teams:      12,
		Budget:     200,
		RosterSize: 16,
		Starters: league.StarterSlots{
			QB: 1, RB: 2, WR: 3, TE: 1, FLEX: 1, DST: 1, K: 1,
		},
		FlexShareRB: 0.4,
		FlexShareWR: 0.4,
		FlexShareTE: 0.2,
	}
}

// makePool builds n players at a position with descending points starting
// at top.
func makePool(pos league.Position, n int, top float64) ([]league.ReconciledPlayer, map[string]float64) {
	pool := make([]league.ReconciledPlayer, 0, n)
	points := make(map[string]float64, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-%03d", pos, i)
		pts := top - float64(i)
		pool = append(pool, league.ReconciledPlayer{
			Player:          league.CanonicalPlayer{ID: id, Name: id, Position: pos},
			ProjectedPoints: pts,
		})
		points[id] = pts
	}
	return pool, points
}

func TestPooledFlexReplacementLevel(t *testing.T) {
	cfg := testConfig()

	// RB 2 + WR 3 + TE 1 dedicated slots plus one FLEX at full share:
	// (2+3+1+1)*12 = 84th player in the pooled list.
	rbs, rbPts := makePool(league.PositionRB, 80, 300)
	wrs, wrPts := makePool(league.PositionWR, 80, 290)
	tes, tePts := makePool(league.PositionTE, 40, 200)

	pool := append(append(rbs, wrs...), tes...)
	points := map[string]float64{}
	for _, m := range []map[string]float64{rbPts, wrPts, tePts} {
		for k, v := range m {
			points[k] = v
		}
	}

	levels := ComputeReplacementLevels(pool, points, cfg)

	// All three flex positions share one baseline.
	assert.Equal(t, levels.FlexLevel, levels.ByPosition[league.PositionRB])
	assert.Equal(t, levels.FlexLevel, levels.ByPosition[league.PositionWR])
	assert.Equal(t, levels.FlexLevel, levels.ByPosition[league.PositionTE])

	// Verify against a direct sort of the pooled list.
	all := make([]float64, 0, len(points))
	for _, v := range points {
		all = append(all, v)
	}
	level, _ := levelAtRank(all, 84, "check")
	assert.Equal(t, level, levels.FlexLevel)
	assert.Empty(t, levels.Warnings)
}

func TestDedicatedPositionReplacementLevel(t *testing.T) {
	cfg := testConfig()

	qbs, points := makePool(league.PositionQB, 30, 400)
	levels := ComputeReplacementLevels(qbs, points, cfg)

	// QB replacement sits at rank starters*teams = 12: 400 - 11.
	assert.Equal(t, 389.0, levels.ByPosition[league.PositionQB])
}

func TestReplacementLevelClampsShortPool(t *testing.T) {
	cfg := testConfig()

	qbs, points := makePool(league.PositionQB, 5, 400)
	levels := ComputeReplacementLevels(qbs, points, cfg)

	// Pool shorter than rank 12: clamps to the last player and warns.
	assert.Equal(t, 396.0, levels.ByPosition[league.PositionQB])
	require.NotEmpty(t, levels.Warnings)
}

func TestReplacementLevelEmptyPool(t *testing.T) {
	cfg := testConfig()

	levels := ComputeReplacementLevels(nil, map[string]float64{}, cfg)

	assert.Equal(t, 0.0, levels.ByPosition[league.PositionQB])
	assert.Equal(t, 0.0, levels.FlexLevel)
	assert.NotEmpty(t, levels.Warnings)
}
