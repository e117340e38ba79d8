package reconcile

import (
	"github.com/tgriffin/draftedge/internal/league"
)

// QualityReport summarizes reconciliation health for a whole run.
type QualityReport struct {
	Score            int                     `json:"data_quality_score"` // 0-100
	Conflicts        []league.ConflictRecord `json:"conflicts"`
	FlaggedForReview []string                `json:"flagged_for_review"` // player keys
	ConflictCount    int                     `json:"conflict_count"`
	ReviewCount      int                     `json:"review_count"`
	LowConfCount     int                     `json:"low_confidence_count"`
}

// Per-category deduction caps. Each category is capped so no single failure
// mode can zero out the score on its own.
const (
	conflictPenalty    = 1
	conflictCap        = 30
	reviewPenalty      = 3
	reviewCap          = 30
	lowConfPenalty     = 2
	lowConfCap         = 20
	lowConfThreshold   = 0.5
)

// BuildQualityReport scores the run from its conflict log. The score starts
// at 100 and takes capped deductions per conflict, per requires-review flag,
// and per low-confidence conflict.
func BuildQualityReport(conflicts []league.ConflictRecord) QualityReport {
	report := QualityReport{
		Score:     100,
		Conflicts: conflicts,
	}
	if conflicts == nil {
		report.Conflicts = []league.ConflictRecord{}
	}

	seen := make(map[string]bool)
	for _, c := range conflicts {
		report.ConflictCount++
		if c.RequiresReview {
			report.ReviewCount++
			if !seen[c.PlayerKey] {
				seen[c.PlayerKey] = true
				report.FlaggedForReview = append(report.FlaggedForReview, c.PlayerKey)
			}
		}
		if c.Confidence < lowConfThreshold {
			report.LowConfCount++
		}
	}
	if report.FlaggedForReview == nil {
		report.FlaggedForReview = []string{}
	}

	report.Score -= capped(report.ConflictCount*conflictPenalty, conflictCap)
	report.Score -= capped(report.ReviewCount*reviewPenalty, reviewCap)
	report.Score -= capped(report.LowConfCount*lowConfPenalty, lowConfCap)
	if report.Score < 0 {
		report.Score = 0
	}

	return report
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}
