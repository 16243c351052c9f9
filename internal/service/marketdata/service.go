package marketdata

import (
	"context"
	"fmt"
	"time"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	"LithiumHedge/pkg/cache"
	applogger "LithiumHedge/pkg/logger"
)

// Fetcher is the upstream dependency of the accessor. *Client satisfies it.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error)
}

// Option configures Service.
type Option func(*Service)

// Service is the market data accessor: upstream fetch behind a layered
// cache, with persisted history and a simulated series as fallbacks.
type Service struct {
	fetcher        Fetcher
	cache          cache.Service
	store          repository.PriceStore
	metrics        repository.Metrics
	logger         *applogger.Logger
	ttl            time.Duration
	allowSimulated bool
	now            func() time.Time
}

// NewService creates the accessor. Cache, store and metrics are optional.
func NewService(fetcher Fetcher, logger *applogger.Logger, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		logger:  logger,
		ttl:     30 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache fronts fetches with a TTL cache.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithStore persists fetched bars and serves them when the upstream is down.
func WithStore(store repository.PriceStore) Option {
	return func(s *Service) { s.store = store }
}

// WithMetrics records fetch outcomes.
func WithMetrics(m repository.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSimulatedFallback enables the labeled simulated series as last resort.
func WithSimulatedFallback(enabled bool) Option {
	return func(s *Service) { s.allowSimulated = enabled }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Fetch returns the daily series for a symbol. Resolution order: cache,
// upstream, persisted history, simulated series (when enabled). The returned
// Source label tells the caller which one answered.
func (s *Service) Fetch(ctx context.Context, symbol string, lookbackYears int) (models.PriceSeries, error) {
	if symbol == "" {
		return models.PriceSeries{}, fmt.Errorf("%w: symbol is required", models.ErrInvalidInput)
	}
	if lookbackYears <= 0 {
		lookbackYears = 1
	}

	start := s.now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordLatency("market_fetch", time.Since(start).Seconds())
		}
	}()

	key := cache.GenerateKeyWithParams("prices", symbol, lookbackYears)

	if s.cache != nil {
		var cached models.PriceSeries
		if err := s.cache.Get(ctx, key, &cached); err == nil && !cached.Empty() {
			s.recordLookup("hit")
			cached.Source = models.SourceCached
			return cached, nil
		}
		s.recordLookup("miss")
	}

	from := s.now().AddDate(-lookbackYears, 0, 0)
	bars, err := s.fetcher.FetchDaily(ctx, symbol, from, s.now())
	if err == nil {
		series := models.PriceSeries{Symbol: symbol, Source: models.SourceLive, Bars: bars}
		s.afterFetch(ctx, key, series)
		return series, nil
	}

	s.logger.Warn("upstream fetch failed, trying fallbacks",
		applogger.String("symbol", symbol), applogger.Error(err))
	if s.metrics != nil {
		s.metrics.RecordError("market_fetch")
	}

	if s.store != nil {
		stored, serr := s.store.LoadBars(ctx, symbol, from)
		if serr != nil {
			s.logger.Warn("price store read failed", applogger.Error(serr))
		} else if len(stored) > 0 {
			return models.PriceSeries{Symbol: symbol, Source: models.SourceStore, Bars: stored}, nil
		}
	}

	if s.allowSimulated {
		s.logger.Warn("serving simulated series", applogger.String("symbol", symbol))
		return SimulatedSeries(symbol, lookbackYears, s.now()), nil
	}

	return models.PriceSeries{}, fmt.Errorf("%w: %s", models.ErrDataUnavailable, symbol)
}

func (s *Service) afterFetch(ctx context.Context, key string, series models.PriceSeries) {
	if s.metrics != nil && !series.Empty() {
		s.metrics.RecordLastPrice(series.Symbol, series.Source, series.Latest().Close)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, series, s.ttl); err != nil {
			s.logger.Warn("price cache write failed", applogger.Error(err))
		}
	}
	if s.store != nil {
		if err := s.store.SaveBars(ctx, series.Symbol, series.Bars); err != nil {
			s.logger.Warn("price store write failed", applogger.Error(err))
		}
	}
}

func (s *Service) recordLookup(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(outcome)
	}
}
