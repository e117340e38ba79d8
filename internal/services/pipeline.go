package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/league"
	"github.com/tgriffin/draftedge/internal/pricing"
	"github.com/tgriffin/draftedge/internal/providers"
	"github.com/tgriffin/draftedge/internal/reconcile"
	"github.com/tgriffin/draftedge/internal/resolve"
	"github.com/tgriffin/draftedge/internal/valuation"
)

// maxQuarantineRatio triggers a run-level warning when exceeded.
const maxQuarantineRatio = 0.10

// Pipeline wires the full valuation flow: concurrent provider fetch,
// identity resolution, reconciliation, valuation, and pricing. One instance
// is constructed at startup and passed by reference; each Run rebuilds all
// per-run state from scratch.
type Pipeline struct {
	logger      *logrus.Logger
	cfg         league.Config
	tolerances  reconcile.Tolerances
	tables      valuation.Tables
	curve       pricing.Curve
	threshold   float64
	adpSources  []*providers.ADPClient
	projSources []*providers.ProjectionClient
	adjustments *providers.AdjustmentClient
}

// NewPipeline assembles the pipeline. adjustments may be nil.
func NewPipeline(
	logger *logrus.Logger,
	cfg league.Config,
	tolerances reconcile.Tolerances,
	tables valuation.Tables,
	curve pricing.Curve,
	matchThreshold float64,
	adpSources []*providers.ADPClient,
	projSources []*providers.ProjectionClient,
	adjustments *providers.AdjustmentClient,
) *Pipeline {
	return &Pipeline{
		logger:      logger,
		cfg:         cfg,
		tolerances:  tolerances,
		tables:      tables,
		curve:       curve,
		threshold:   matchThreshold,
		adpSources:  adpSources,
		projSources: projSources,
		adjustments: adjustments,
	}
}

// RunReport is the full output of one pipeline execution.
type RunReport struct {
	RunID            string                   `json:"run_id"`
	Results          []league.ValuationResult `json:"results"`
	Quality          reconcile.QualityReport  `json:"quality"`
	Diagnostics      []providers.Diagnostics  `json:"diagnostics"`
	ProvisionalCount int                      `json:"provisional_count"`
	Warnings         []string                 `json:"warnings,omitempty"`
	Duration         time.Duration            `json:"duration_ms"`
}

type adpFetch struct {
	result providers.LoadResult[league.RawADPRecord]
}

type projFetch struct {
	result providers.LoadResult[league.RawProjectionRecord]
}

// Run executes the whole pipeline. It fails only when no canonical ADP data
// is available at all; there is no legacy fallback and the caller must
// re-run ingestion.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	start := time.Now()
	report := &RunReport{RunID: uuid.NewString()}

	adpRecords, projRecords := p.fetchAll(ctx, report)

	if len(adpRecords) == 0 {
		return nil, fmt.Errorf("no canonical ADP data available from any source; re-run ingestion")
	}

	p.checkQuarantineRatio(report)

	// Single-writer phase: the index is fully built before anything reads it.
	resolver := resolve.NewResolver(p.logger, p.threshold)
	resolver.Initialize(adpRecords)

	reconciler := reconcile.NewReconciler(p.logger, resolver, p.tolerances)
	adpByPlayer := make(map[string]league.ReconciledPlayer)
	for _, rp := range reconciler.ReconcileADP(adpRecords) {
		adpByPlayer[rp.Player.ID] = rp
	}
	projections := reconciler.ReconcileProjections(projRecords)

	// The valuation pool is the projection pool enriched with ADP fields.
	// Players with zero projection sources are excluded here.
	pool := make([]league.ReconciledPlayer, 0, len(projections))
	for _, rp := range projections {
		if adp, ok := adpByPlayer[rp.Player.ID]; ok {
			rp.ADP = adp.ADP
			rp.AuctionValue = adp.AuctionValue
		}
		pool = append(pool, rp)
	}

	engine := valuation.NewEngine(p.logger, p.cfg, p.tables, p.adjProvider())
	results, levels := engine.Valuate(pool)
	report.Warnings = append(report.Warnings, levels.Warnings...)

	for i := range results {
		var auction *float64
		if adp, ok := adpByPlayer[results[i].PlayerID]; ok {
			auction = adp.AuctionValue
		}
		p.curve.Price(&results[i], auction)
	}

	report.Results = results
	report.Quality = reconcile.BuildQualityReport(reconciler.Conflicts())
	report.ProvisionalCount = resolver.ProvisionalCount()
	report.Duration = time.Since(start)

	p.logger.Infof("Pipeline run %s: %d players valued, quality %d, %d provisional, took %s",
		report.RunID, len(results), report.Quality.Score, report.ProvisionalCount, report.Duration)

	return report, nil
}

// fetchAll fans out one goroutine per source and joins before returning;
// reconciliation never sees partial in-flight state.
func (p *Pipeline) fetchAll(ctx context.Context, report *RunReport) ([]league.RawADPRecord, []league.RawProjectionRecord) {
	var wg sync.WaitGroup
	adpResults := make(chan adpFetch, len(p.adpSources))
	projResults := make(chan projFetch, len(p.projSources))

	for _, src := range p.adpSources {
		wg.Add(1)
		go func(src *providers.ADPClient) {
			defer wg.Done()
			adpResults <- adpFetch{result: src.Load(ctx)}
		}(src)
	}
	for _, src := range p.projSources {
		wg.Add(1)
		go func(src *providers.ProjectionClient) {
			defer wg.Done()
			projResults <- projFetch{result: src.Load(ctx)}
		}(src)
	}
	if p.adjustments != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Failure already downgrades factors to 1.0.
			_ = p.adjustments.Refresh(ctx)
		}()
	}

	go func() {
		wg.Wait()
		close(adpResults)
		close(projResults)
	}()

	var adpRecords []league.RawADPRecord
	for fetch := range adpResults {
		report.Diagnostics = append(report.Diagnostics, fetch.result.Diagnostics)
		if !fetch.result.OK {
			p.logger.Warnf("ADP source %s degraded to empty set", fetch.result.Diagnostics.Source)
			continue
		}
		adpRecords = append(adpRecords, fetch.result.Records...)
	}

	var projRecords []league.RawProjectionRecord
	for fetch := range projResults {
		report.Diagnostics = append(report.Diagnostics, fetch.result.Diagnostics)
		if !fetch.result.OK {
			p.logger.Warnf("Projection source %s degraded to empty set", fetch.result.Diagnostics.Source)
			continue
		}
		projRecords = append(projRecords, fetch.result.Records...)
	}

	return adpRecords, projRecords
}

func (p *Pipeline) checkQuarantineRatio(report *RunReport) {
	parsed, quarantined := 0, 0
	for _, d := range report.Diagnostics {
		parsed += d.RowsParsed
		quarantined += d.RowsQuarantined
	}
	if parsed == 0 {
		return
	}
	ratio := float64(quarantined) / float64(parsed)
	if ratio > maxQuarantineRatio {
		w := fmt.Sprintf("quarantine ratio %.1f%% exceeds maximum %.0f%%", ratio*100, maxQuarantineRatio*100)
		p.logger.Warn(w)
		report.Warnings = append(report.Warnings, w)
	}
}

func (p *Pipeline) adjProvider() league.AdjustmentProvider {
	if p.adjustments == nil {
		return nil
	}
	return p.adjustments
}
