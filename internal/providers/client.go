// Package providers contains the HTTP clients for the external player-data
// feeds. CSV syntax and file parsing live upstream of these feeds; clients
// consume the already-structured JSON each source exposes.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/tgriffin/draftedge/internal/league"
)

// Client is the shared fetch layer: one circuit breaker and rate limiter
// per upstream source, with responses cached between pipeline runs.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	cache      league.CacheProvider
	logger     *logrus.Logger
}

// ClientOptions tune the shared fetch layer.
type ClientOptions struct {
	Name             string
	Timeout          time.Duration
	RequestsPerSec   float64
	Burst            int
	BreakerThreshold uint32
}

// NewClient creates a fetch client for one source. cache may be nil.
func NewClient(opts ClientOptions, cache league.CacheProvider, logger *logrus.Logger) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.Burst == 0 {
		opts.Burst = 1
	}
	if opts.BreakerThreshold == 0 {
		opts.BreakerThreshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    opts.Name,
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		cache:      cache,
		logger:     logger,
	}
}

// GetJSON fetches url and decodes the response body into dest, passing
// through the rate limiter and circuit breaker.
func (c *Client) GetJSON(ctx context.Context, url string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}

	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetJSONCached serves from cache when possible, caching successful fetches
// for ttl.
func (c *Client) GetJSONCached(ctx context.Context, cacheKey, url string, dest interface{}, ttl time.Duration) error {
	if c.cache != nil {
		if err := c.cache.GetSimple(cacheKey, dest); err == nil {
			return nil
		}
	}

	if err := c.GetJSON(ctx, url, dest); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.SetSimple(cacheKey, dest, ttl); err != nil {
			c.logger.Warnf("Failed to cache %s: %v", cacheKey, err)
		}
	}
	return nil
}
