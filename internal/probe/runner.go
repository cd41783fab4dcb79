package probe

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/adgenius/pkg/logger"
)

// Run checks liveness, then issues cfg.Requests trending searches across
// cfg.Workers goroutines and verifies every response.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting relay probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.Timeout)

	status, body, err := client.Get(ctx, cfg.BaseURL+"/")
	if err != nil {
		return stats, fmt.Errorf("failed to connect to relay: %w", err)
	}
	if err := verifyLiveness(status, body); err != nil {
		return stats, err
	}
	log.Info(ctx, "relay is online")

	queries := cfg.Queries
	if len(queries) == 0 {
		queries = []string{""}
	}
	workers := max(cfg.Workers, 1)

	var (
		ok, unavailable, internal, other, violations, cardsSeen atomic.Int64
		wg                                                      sync.WaitGroup
	)
	jobs := make(chan string, workers*WorkerChannelMultiplier)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range jobs {
				status, body, err := client.Get(ctx, trendingURL(cfg.BaseURL, q))
				if err != nil {
					other.Add(1)
					log.Warn(ctx, "trending request failed", logger.String("query", q), logger.Error(err))
					continue
				}
				n, verr := verifyTrending(status, body)
				if verr != nil {
					violations.Add(1)
					log.Error(ctx, "contract violation", logger.String("query", q), logger.Error(verr))
				}
				switch status {
				case http.StatusOK:
					ok.Add(1)
					cardsSeen.Add(int64(n))
				case http.StatusServiceUnavailable:
					unavailable.Add(1)
				case http.StatusInternalServerError:
					internal.Add(1)
				default:
					other.Add(1)
				}
				if cfg.Verbose {
					log.Info(ctx, "trending response", logger.String("query", q), logger.Int("status", status), logger.Int("cards", n))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Requests; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- queries[i%len(queries)]:
			}
		}
	}()
	wg.Wait()

	stats.Requests = cfg.Requests
	stats.OK = int(ok.Load())
	stats.Unavailable = int(unavailable.Load())
	stats.Internal = int(internal.Load())
	stats.Other = int(other.Load())
	stats.Violations = int(violations.Load())
	stats.CardsSeen = int(cardsSeen.Load())
	stats.Duration = time.Since(stats.StartTime)

	log.Info(ctx, "probe finished",
		logger.Int("ok", stats.OK),
		logger.Int("unavailable", stats.Unavailable),
		logger.Int("internal", stats.Internal),
		logger.Int("other", stats.Other),
		logger.Int("violations", stats.Violations),
		logger.Int("cardsSeen", stats.CardsSeen),
		logger.Duration("duration", stats.Duration))

	if stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d responses", ErrContract, stats.Violations)
	}
	return stats, nil
}
