package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/normalize"
)

// ADPClient loads average-draft-position feeds, the authoritative identity
// source for the pipeline.
type ADPClient struct {
	client *Client
	logger *logrus.Logger
	url    string
	source string
	weight float64
	mode   ValidationMode
}

// NewADPClient creates a loader for one ADP feed.
func NewADPClient(client *Client, logger *logrus.Logger, url, source string, weight float64, mode ValidationMode) *ADPClient {
	if mode == "" {
		mode = ValidationStrict
	}
	return &ADPClient{client: client, logger: logger, url: url, source: source, weight: weight, mode: mode}
}

// adpRow mirrors the feed schema. Pointer fields model nullable columns;
// null stays null through reconciliation.
type adpRow struct {
	Rank         int      `json:"rank"`
	Name         string   `json:"name"`
	Team         string   `json:"team"`
	Position     string   `json:"position"`
	ADP          *float64 `json:"adp"`
	AuctionValue *float64 `json:"auction_value"`
	Age          *float64 `json:"age"`
	ByeWeek      int      `json:"bye_week"`
}

// Load fetches and validates the feed. A fetch failure yields OK=false with
// a diagnostic; row-level problems degrade the diagnostics, never the call.
func (c *ADPClient) Load(ctx context.Context) LoadResult[league.RawADPRecord] {
	cacheKey := fmt.Sprintf("adp:%s", c.source)

	var rows []adpRow
	if err := c.client.GetJSONCached(ctx, cacheKey, c.url, &rows, 30*time.Minute); err != nil {
		c.logger.Warnf("ADP source %s unavailable: %v", c.source, err)
		return Unavailable[league.RawADPRecord](c.source, err.Error())
	}

	result := LoadResult[league.RawADPRecord]{OK: true}
	result.Diagnostics.Source = c.source

	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		result.Diagnostics.RowsParsed++

		if row.Name == "" {
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
			c.logger.Warnf("ADP row %s kept with issue: %s", row.Name, problem)
			result.Diagnostics.Warnings = append(result.Diagnostics.Warnings,
				fmt.Sprintf("kept %s: %s", row.Name, problem))
		}

		key := normalize.PlayerKey(row.Name, row.Team, row.Position)
		if seen[key] {
			result.Diagnostics.Duplicates++
			continue // first row wins
		}
		seen[key] = true

		if code, ok := normalize.Team(row.Team); ok && code != row.Team {
			result.Diagnostics.Coercions++
		}

		result.Records = append(result.Records, league.RawADPRecord{
			Rank:         row.Rank,
			Name:         row.Name,
			Team:         row.Team,
			Position:     row.Position,
			ADP:          row.ADP,
			AuctionValue: row.AuctionValue,
			Age:          row.Age,
			ByeWeek:      row.ByeWeek,
			Source:       c.source,
			SourceWeight: c.weight,
		})
	}

	return result
}

// validate applies range checks. The returned string names the problem and
// a suggested fix; it is logged in warning mode, never auto-applied.
func (c *ADPClient) validate(row adpRow) string {
	if row.Rank < 1 {
		return fmt.Sprintf("rank %d below 1 (suggest 1)", row.Rank)
	}
	if row.ADP != nil && (*row.ADP < 0.5 || *row.ADP > 500) {
		return fmt.Sprintf("adp %.1f outside [0.5, 500] (suggest null)", *row.ADP)
	}
	if row.AuctionValue != nil && (*row.AuctionValue < 0 || *row.AuctionValue > 250) {
		return fmt.Sprintf("auction value %.1f outside [0, 250] (suggest null)", *row.AuctionValue)
	}
	if row.Age != nil && (*row.Age < 18 || *row.Age > 50) {
		return fmt.Sprintf("age %.1f outside [18, 50] (suggest null)", *row.Age)
	}
	return ""
}
