package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tgriffin/draftedge/internal/league"
)

func TestBuildQualityReportClean(t *testing.T) {
	report := BuildQualityReport(nil)
	assert.Equal(t, 100, report.Score)
	assert.NotNil(t, report.Conflicts)
	assert.NotNil(t, report.FlaggedForReview)
	assert.Empty(t, report.Conflicts)
}

func TestBuildQualityReportDeductions(t *testing.T) {
	conflicts := []league.ConflictRecord{
		{PlayerKey: "a", Confidence: 0.9},
		{PlayerKey: "b", Confidence: 0.4, RequiresReview: true},
	}
	report := BuildQualityReport(conflicts)

	assert.Equal(t, 2, report.ConflictCount)
	assert.Equal(t, 1, report.ReviewCount)
	assert.Equal(t, 1, report.LowConfCount)
	// 100 - 2 conflicts - 3 review - 2 low confidence.
	assert.Equal(t, 93, report.Score)
	assert.Equal(t, []string{"b"}, report.FlaggedForReview)
}

func TestBuildQualityReportCapsAndFloor(t *testing.T) {
	var conflicts []league.ConflictRecord
	for i := 0; i < 100; i++ {
		conflicts = append(conflicts, league.ConflictRecord{
			PlayerKey:      "p",
			Confidence:     0.1,
			RequiresReview: true,
		})
	}
	report := BuildQualityReport(conflicts)

	// Each category is capped: 100 - 30 - 30 - 20.
	assert.Equal(t, 20, report.Score)
	// Review flags dedupe by player key.
	assert.Equal(t, []string{"p"}, report.FlaggedForReview)
}
