// Package service provides the prompt search service behind the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/adgenius/internal/adapters/upstream/lexica"
	"github.com/okian/adgenius/internal/domain/model"
	"github.com/okian/adgenius/pkg/logger"
)

// DefaultQuery is searched when the caller supplies no term.
const DefaultQuery = "advertisement"

// Searcher performs one upstream search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.PromptCard, error)
}

// Service resolves trending prompt requests against a Searcher.
type Service struct {
	mu sync.RWMutex

	searcher     Searcher
	defaultQuery string
	logger       logger.Logger

	started   bool
	startedAt time.Time

	// Counters are reported by GetStats only; they never influence a search.
	searches    atomic.Int64
	failures    atomic.Int64
	cardsServed atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSearcher sets the upstream searcher.
func WithSearcher(searcher Searcher) Option {
	return func(s *Service) {
		if searcher != nil {
			s.searcher = searcher
		}
	}
}

// WithDefaultQuery overrides the term used when ?q is absent.
func WithDefaultQuery(q string) Option {
	return func(s *Service) {
		if q != "" {
			s.defaultQuery = q
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultQuery: DefaultQuery,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start fills in components left unset by options. It is idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.searcher == nil {
		s.searcher = lexica.New(lexica.WithLogger(s.logger.Named("lexica")))
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "prompt service started", logger.String("defaultQuery", s.defaultQuery))
	return nil
}

// Stop marks the service stopped. In-flight searches finish on their own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "prompt service stopped")
}

// ResolveQuery returns q, or the default term when present is false.
// An explicitly empty q is passed through unchanged.
func (s *Service) ResolveQuery(q string, present bool) string {
	if !present {
		return s.defaultQuery
	}
	return q
}

// Trending searches upstream for query. Errors are returned unchanged so the
// HTTP layer can classify them.
func (s *Service) Trending(ctx context.Context, query string) ([]model.PromptCard, error) {
	s.mu.RLock()
	searcher, log := s.searcher, s.logger
	s.mu.RUnlock()

	if searcher == nil {
		return nil, ErrNotStarted
	}
	if log == nil {
		log = logger.Nop()
	}

	s.searches.Add(1)
	log.Debug(ctx, "trending search", logger.String("query", query))

	cards, err := searcher.Search(ctx, query)
	if err != nil {
		s.failures.Add(1)
		return nil, err
	}
	s.cardsServed.Add(int64(len(cards)))
	return cards, nil
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started, startedAt := s.started, s.startedAt
	s.mu.RUnlock()

	var uptime time.Duration
	if started {
		uptime = time.Since(startedAt).Truncate(time.Second)
	}
	return map[string]interface{}{
		"started":      started,
		"uptime":       uptime.String(),
		"defaultQuery": s.defaultQuery,
		"searches":     s.searches.Load(),
		"failures":     s.failures.Load(),
		"cardsServed":  s.cardsServed.Load(),
	}
}
