package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
	"github.com/tradepulse/tradepulse/internal/store"
)

// Service runs the resolve-fetch-aggregate cycle and keeps the most recently
// committed report. It retries nothing: a failed cycle surfaces one error and
// the previous committed report stays in place.
type Service struct {
	store     store.Store
	logger    *slog.Logger
	now       func() time.Time
	onRefresh func(category string, elapsed time.Duration)

	// generation implements the stale-result guard: Refresh captures the
	// counter before fetching and commits only while no newer refresh has
	// started. Both cycles still run to completion; only the newest commit
	// wins.
	generation atomic.Uint64

	mu      sync.RWMutex
	current *Report
}

// NewService wires the dashboard pipeline to a store.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithRefreshObserver installs a callback invoked after every successful
// refresh, typically to record a duration metric.
func (s *Service) WithRefreshObserver(fn func(category string, elapsed time.Duration)) {
	s.onRefresh = fn
}

// ResolveRange turns the query's preset or custom dates into an instant range.
func (s *Service) ResolveRange(q Query) (daterange.Range, error) {
	if q.Preset == daterange.PresetCustom {
		rng, err := daterange.ResolveCustom(q.CustomFrom, q.CustomTo)
		if err != nil {
			return daterange.Range{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
		}
		return rng, nil
	}
	return daterange.Resolve(q.Preset, s.now())
}

// Refresh runs one full cycle for q and returns the resulting report. The
// report is also committed as the current snapshot unless a newer Refresh
// started in the meantime.
func (s *Service) Refresh(ctx context.Context, q Query) (*Report, error) {
	gen := s.generation.Add(1)

	rng, err := s.ResolveRange(q)
	if err != nil {
		return nil, err
	}

	started := s.now()
	ds, err := s.fetch(ctx, q, rng)
	if err != nil {
		s.logger.Error("dashboard fetch failed",
			slog.String("category", q.Category),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: dashboard load failed: %s", httpx.ErrUpstream, err)
	}

	rep := Aggregate(ds, q, rng, s.now())
	s.logger.Info("dashboard refreshed",
		slog.String("category", q.Category),
		slog.String("preset", string(q.Preset)),
		slog.Int("sales", rep.Metrics.SalesCount),
		slog.Duration("took", s.now().Sub(started)))
	if s.onRefresh != nil {
		s.onRefresh(q.Category, s.now().Sub(started))
	}

	s.mu.Lock()
	if gen == s.generation.Load() {
		s.current = rep
	}
	s.mu.Unlock()
	return rep, nil
}

// Current returns the last committed report, or nil before the first
// successful refresh.
func (s *Service) Current() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
