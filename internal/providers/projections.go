package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/normalize"
)

// ProjectionClient loads season point projection feeds.
type ProjectionClient struct {
	client *Client
	logger *logrus.Logger
	url    string
	source string
	weight float64
	mode   ValidationMode
}

// NewProjectionClient creates a loader for one projection feed.
func NewProjectionClient(client *Client, logger *logrus.Logger, url, source string, weight float64, mode ValidationMode) *ProjectionClient {
	if mode == "" {
		mode = ValidationStrict
	}
	return &ProjectionClient{client: client, logger: logger, url: url, source: source, weight: weight, mode: mode}
}

type projectionRow struct {
	Name            string   `json:"name"`
	Team            string   `json:"team"`
	Position        string   `json:"position"`
	ProjectedPoints float64  `json:"projected_points"`
	FloorPoints     *float64 `json:"floor_points"`
	CeilingPoints   *float64 `json:"ceiling_points"`
	PassYards       *float64 `json:"pass_yards"`
	PassTDs         *float64 `json:"pass_tds"`
	RushYards       *float64 `json:"rush_yards"`
	RushTDs         *float64 `json:"rush_tds"`
	Receptions      *float64 `json:"receptions"`
	RecYards        *float64 `json:"rec_yards"`
	RecTDs          *float64 `json:"rec_tds"`
}

// Load fetches and validates the feed. Rows without a name or with
// non-positive points are filtered silently and counted, per the
// missing-required-field policy.
func (c *ProjectionClient) Load(ctx context.Context) LoadResult[league.RawProjectionRecord] {
	cacheKey := fmt.Sprintf("projections:%s", c.source)

	var rows []projectionRow
	if err := c.client.GetJSONCached(ctx, cacheKey, c.url, &rows, 30*time.Minute); err != nil {
		c.logger.Warnf("Projection source %s unavailable: %v", c.source, err)
		return Unavailable[league.RawProjectionRecord](c.source, err.Error())
	}

	result := LoadResult[league.RawProjectionRecord]{OK: true}
	result.Diagnostics.Source = c.source

	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		result.Diagnostics.RowsParsed++

		if row.Name == "" || row.ProjectedPoints <= 0 {
			result.Diagnostics.RowsFiltered++
			continue
		}
		if _, ok := normalize.Position(row.Position); !ok {
			result.Diagnostics.RowsFiltered++
			continue
		}

		if problem := c.validate(row); problem != "" {
			if c.mode == ValidationStrict {
				result.Diagnostics.RowsQuarantined++
				result.Diagnostics.Warnings = append(result.Diagnostics.Warnings,
					fmt.Sprintf("quarantined %s: %s", row.Name, problem))
				continue
			}
			c.logger.Warnf("Projection row %s kept with issue: %s", row.Name, problem)
			result.Diagnostics.Warnings = append(result.Diagnostics.Warnings,
				fmt.Sprintf("kept %s: %s", row.Name, problem))
		}

		key := normalize.PlayerKey(row.Name, row.Team, row.Position)
		if seen[key] {
			result.Diagnostics.Duplicates++
			continue
		}
		seen[key] = true

		if code, ok := normalize.Team(row.Team); ok && code != row.Team {
			result.Diagnostics.Coercions++
		}

		result.Records = append(result.Records, league.RawProjectionRecord{
			Name:            row.Name,
			Team:            row.Team,
			Position:        row.Position,
			ProjectedPoints: row.ProjectedPoints,
			FloorPoints:     row.FloorPoints,
			CeilingPoints:   row.CeilingPoints,
			PassYards:       row.PassYards,
			PassTDs:         row.PassTDs,
			RushYards:       row.RushYards,
			RushTDs:         row.RushTDs,
			Receptions:      row.Receptions,
			RecYards:        row.RecYards,
			RecTDs:          row.RecTDs,
			Source:          c.source,
			SourceWeight:    c.weight,
		})
	}

	return result
}

func (c *ProjectionClient) validate(row projectionRow) string {
	if row.ProjectedPoints > 600 {
		return fmt.Sprintf("projected points %.1f above 600 (suggest review)", row.ProjectedPoints)
	}
	if row.FloorPoints != nil && *row.FloorPoints > row.ProjectedPoints {
		return fmt.Sprintf("floor %.1f above projection %.1f (suggest swap)", *row.FloorPoints, row.ProjectedPoints)
	}
	if row.CeilingPoints != nil && *row.CeilingPoints < row.ProjectedPoints {
		return fmt.Sprintf("ceiling %.1f below projection %.1f (suggest swap)", *row.CeilingPoints, row.ProjectedPoints)
	}
	return ""
}
