package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefresherService re-runs the valuation pipeline on a schedule so cached
// valuations track the latest provider data during draft season.
type RefresherService struct {
	pipeline        *Pipeline
	cache           *CacheService
	hub             *Hub
	logger          *logrus.Logger
	cron            *cron.Cron
	mu              sync.Mutex
	isRunning       bool
	refreshInterval time.Duration
	lastReport      *RunReport
}

// NewRefresherService creates a new refresher service
func NewRefresherService(
	pipeline *Pipeline,
	cache *CacheService,
	hub *Hub,
	logger *logrus.Logger,
	refreshInterval time.Duration,
) *RefresherService {
	return &RefresherService{
		pipeline:        pipeline,
		cache:           cache,
		hub:             hub,
		logger:          logger,
		cron:            cron.New(),
		refreshInterval: refreshInterval,
	}
}

// Start begins the scheduled refreshes and kicks off an initial run.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.refreshInterval.String())
	_, err := s.cron.AddFunc(schedule, s.refresh)
	if err != nil {
		return fmt.Errorf("failed to schedule refresher: %w", err)
	}

	// Providers publish updated rankings overnight; refresh again at 6 AM.
	_, err = s.cron.AddFunc("0 6 * * *", s.refresh)
	if err != nil {
		return fmt.Errorf("failed to schedule morning refresh: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.refresh()

	s.logger.Info("Valuation refresher started")
	return nil
}

// Stop halts the scheduled refreshes.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Valuation refresher stopped")
}

// RefreshNow triggers a refresh outside the schedule and returns its report.
func (s *RefresherService) RefreshNow(ctx context.Context) (*RunReport, error) {
	report, err := s.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(report)
	return report, nil
}

// LastReport returns the most recent successful run, or nil before the first.
func (s *RefresherService) LastReport() *RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

func (s *RefresherService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.logger.Info("Starting scheduled valuation refresh")
	report, err := s.pipeline.Run(ctx)
	if err != nil {
		s.logger.Errorf("Scheduled refresh failed: %v", err)
		return
	}
	s.publish(report)
	s.logger.Infof("Scheduled refresh complete: run %s, %d players", report.RunID, len(report.Results))
}

// publish caches the run and notifies connected clients. Cache failures are
// logged but never fail the run; the report stays available in memory.
func (s *RefresherService) publish(report *RunReport) {
	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, ValuationCacheKey("latest"), report, 30*time.Minute); err != nil {
			s.logger.Warnf("Failed to cache valuation run: %v", err)
		}
		if err := s.cache.Set(ctx, QualityReportCacheKey("latest"), report.Quality, 30*time.Minute); err != nil {
			s.logger.Warnf("Failed to cache quality report: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("valuations_refreshed", map[string]interface{}{
			"run_id":       report.RunID,
			"player_count": len(report.Results),
			"quality":      report.Quality.Score,
		})
	}
}

// Status reports scheduler state for the health endpoint.
func (s *RefresherService) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	status := map[string]interface{}{
		"is_running":       s.isRunning,
		"refresh_interval": s.refreshInterval.String(),
		"next_runs":        nextRuns,
	}
	if s.lastReport != nil {
		status["last_run_id"] = s.lastReport.RunID
		status["last_player_count"] = len(s.lastReport.Results)
	}
	return status
}
