package providers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/normalize"
)

// AdjustmentClient consumes the advanced-metrics service through its narrow
// adjustment-factor contract. The service's scoring heuristics are opaque
// here; only the clamped factor crosses the boundary.
type AdjustmentClient struct {
	client *Client
	logger *logrus.Logger
	url    string

	mu      sync.RWMutex
	factors map[string]league.AdjustmentFactor
}

// NewAdjustmentClient creates the adjustment-factor client.
func NewAdjustmentClient(client *Client, logger *logrus.Logger, url string) *AdjustmentClient {
	return &AdjustmentClient{
		client:  client,
		logger:  logger,
		url:     url,
		factors: make(map[string]league.AdjustmentFactor),
	}
}

type adjustmentRow struct {
	Name            string   `json:"name"`
	Team            string   `json:"team"`
	Position        string   `json:"position"`
	TotalAdjustment float64  `json:"total_adjustment"`
	Confidence      float64  `json:"confidence"`
	Factors         []string `json:"factors"`
}

// Refresh pulls the full factor table. Failure leaves the previous table in
// place; the valuation engine defaults any missing player to 1.0, so a
// stale or empty table degrades gracefully.
func (c *AdjustmentClient) Refresh(ctx context.Context) error {
	var rows []adjustmentRow
	if err := c.client.GetJSONCached(ctx, "adjustments", c.url, &rows, 30*time.Minute); err != nil {
		c.logger.Warnf("Adjustment provider unavailable, factors default to 1.0: %v", err)
		return err
	}

	factors := make(map[string]league.AdjustmentFactor, len(rows)*2)
	for _, row := range rows {
		f := league.AdjustmentFactor{
			TotalAdjustment: row.TotalAdjustment,
			Confidence:      row.Confidence,
			Factors:         row.Factors,
		}
		factors[normalize.PlayerKey(row.Name, row.Team, row.Position)] = f
		// Team-relaxed key for sources that disagree on team.
		nameKey := normalize.NameKey(row.Name, row.Position)
		if _, ok := factors[nameKey]; !ok {
			factors[nameKey] = f
		}
	}

	c.mu.Lock()
	c.factors = factors
	c.mu.Unlock()

	c.logger.Infof("Loaded %d adjustment factors", len(factors))
	return nil
}

// Adjustment implements league.AdjustmentProvider.
func (c *AdjustmentClient) Adjustment(name string, position league.Position, team string) (league.AdjustmentFactor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if f, ok := c.factors[normalize.PlayerKey(name, team, string(position))]; ok {
		return f, true
	}
	// Fall back to the team-relaxed key when the metrics feed disagrees on team.
	if f, ok := c.factors[normalize.NameKey(name, string(position))]; ok {
		return f, true
	}
	return league.AdjustmentFactor{}, false
}
