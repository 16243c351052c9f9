package di

import (
	"context"
	"fmt"
	"time"

	"LithiumHedge/internal/domain/repository"
	"LithiumHedge/internal/handler/api"
	internalrepo "LithiumHedge/internal/repository"
	"LithiumHedge/internal/service/marketdata"
	"LithiumHedge/internal/usecase"
	"LithiumHedge/pkg/cache"
	pkgch "LithiumHedge/pkg/clickhouse"
	"LithiumHedge/pkg/config"
	xhttp "LithiumHedge/pkg/http"
	pkgkafka "LithiumHedge/pkg/kafka"
	applogger "LithiumHedge/pkg/logger"
	"LithiumHedge/pkg/metrics"
	"LithiumHedge/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend: layered memory+Redis when Redis is
// enabled, plain memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideSQLiteStore opens the account and history database.
func ProvideSQLiteStore(cfg *config.Config) (*internalrepo.SQLiteStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := internalrepo.NewSQLiteStore(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: %w", err)
	}
	return store, nil
}

// ProvideClickHouseClient creates the ClickHouse client, or nil when the
// bar archive is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideEventPublisher creates the Kafka analysis event publisher, or a
// no-op one when no broker is configured.
func ProvideEventPublisher(cfg *config.Config) (repository.EventPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopEventPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideMarketData assembles the market data accessor: upstream client,
// cache, optional ClickHouse bar archive, simulated fallback.
func ProvideMarketData(
	cfg *config.Config,
	logger *applogger.Logger,
	c cache.Service,
	m repository.Metrics,
	chClient *pkgch.Client,
) (repository.MarketData, error) {
	client := marketdata.NewClient(cfg.Market.BaseURL, cfg.Market.APIKey, cfg.Market.RequestTimeout)

	opts := []marketdata.Option{
		marketdata.WithCache(c, cfg.Market.CacheTTL),
		marketdata.WithMetrics(m),
		marketdata.WithSimulatedFallback(cfg.Market.AllowSimulated),
	}
	if chClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := internalrepo.NewCHPriceStore(ctx, chClient)
		if err != nil {
			return nil, err
		}
		opts = append(opts, marketdata.WithStore(store))
	}

	return marketdata.NewService(client, logger, opts...), nil
}

// ProvideUserStore exposes the SQLite store as the account repository.
func ProvideUserStore(s *internalrepo.SQLiteStore) repository.UserStore { return s }

// ProvideHistoryStore exposes the SQLite store as the history repository.
func ProvideHistoryStore(s *internalrepo.SQLiteStore) repository.HistoryStore { return s }

// ProvideCodeStore creates the reset code store on the cache backend.
func ProvideCodeStore(c cache.Service) repository.CodeStore {
	return internalrepo.NewRedisCodeStore(c)
}

// ProvideSessionStore creates the session store on the cache backend.
func ProvideSessionStore(c cache.Service) repository.SessionStore {
	return internalrepo.NewRedisSessionStore(c)
}

// ProvideBounds maps config ceilings to calculator bounds.
func ProvideBounds(cfg *config.Config) usecase.Bounds {
	return usecase.Bounds{
		MaxCostPrice:  cfg.Defaults.MaxCostPrice,
		MaxInventory:  cfg.Defaults.MaxInventory,
		DefaultSymbol: cfg.Market.DefaultSymbol,
		LookbackYears: cfg.Market.LookbackYears,
	}
}

// ProvideAuth creates the account service.
func ProvideAuth(
	users repository.UserStore,
	codes repository.CodeStore,
	sessions repository.SessionStore,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Auth {
	return usecase.NewAuth(users, codes, sessions, logger, usecase.AuthConfig{
		BcryptCost:   cfg.Auth.BcryptCost,
		SessionTTL:   cfg.Auth.SessionTTL,
		ResetCodeTTL: cfg.Auth.ResetCodeTTL,
	})
}

// ProvideHedgeCalculator creates the hedge calculator.
func ProvideHedgeCalculator(
	market repository.MarketData,
	history repository.HistoryStore,
	events repository.EventPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
	bounds usecase.Bounds,
) *usecase.HedgeCalculator {
	return usecase.NewHedgeCalculator(market, history, events, m, logger, bounds)
}

// ProvideOptionPremium creates the option pricer.
func ProvideOptionPremium(
	market repository.MarketData,
	history repository.HistoryStore,
	events repository.EventPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
	bounds usecase.Bounds,
) *usecase.OptionPremium {
	return usecase.NewOptionPremium(market, history, events, m, logger, bounds)
}

// ProvideExposureCalculator creates the exposure calculator.
func ProvideExposureCalculator(
	history repository.HistoryStore,
	events repository.EventPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.ExposureCalculator {
	return usecase.NewExposureCalculator(history, events, m, logger)
}

// ProvideScenarioComparator creates the scenario comparator.
func ProvideScenarioComparator(
	hedge *usecase.HedgeCalculator,
	market repository.MarketData,
	history repository.HistoryStore,
	events repository.EventPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.ScenarioComparator {
	return usecase.NewScenarioComparator(hedge, market, history, events, m, logger)
}

// ProvideMarketOverview creates the period statistics reader.
func ProvideMarketOverview(market repository.MarketData, bounds usecase.Bounds) *usecase.MarketOverview {
	return usecase.NewMarketOverview(market, bounds)
}

// ProvideBasisAnalyzer creates the basis analyzer.
func ProvideBasisAnalyzer(overview *usecase.MarketOverview) *usecase.BasisAnalyzer {
	return usecase.NewBasisAnalyzer(overview)
}

// ProvideReportBuilder creates the narrative report aggregator.
func ProvideReportBuilder(
	hedge *usecase.HedgeCalculator,
	exposure *usecase.ExposureCalculator,
	scenario *usecase.ScenarioComparator,
	basis *usecase.BasisAnalyzer,
	logger *applogger.Logger,
) *usecase.ReportBuilder {
	return usecase.NewReportBuilder(hedge, exposure, scenario, basis, logger)
}

// ProvideHistory creates the history reader.
func ProvideHistory(store repository.HistoryStore) *usecase.History {
	return usecase.NewHistory(store)
}

// ProvideAuthHandler creates the account endpoints.
func ProvideAuthHandler(logger *applogger.Logger, auth *usecase.Auth) *api.AuthHandler {
	return api.NewAuthHandler(logger, auth)
}

// ProvideAnalysisHandler creates the calculator endpoints.
func ProvideAnalysisHandler(
	logger *applogger.Logger,
	hedge *usecase.HedgeCalculator,
	option *usecase.OptionPremium,
	exposure *usecase.ExposureCalculator,
	scenario *usecase.ScenarioComparator,
	report *usecase.ReportBuilder,
	history *usecase.History,
	cfg *config.Config,
) *api.AnalysisHandler {
	return api.NewAnalysisHandler(logger, hedge, option, exposure, scenario, report, history, api.CalculationDefaults{
		CostPrice:  cfg.Defaults.CostPrice,
		Inventory:  cfg.Defaults.Inventory,
		HedgeRatio: cfg.Defaults.HedgeRatio,
		MarginRate: cfg.Defaults.MarginRate,
	})
}

// ProvideMarketHandler creates the market data endpoints.
func ProvideMarketHandler(
	logger *applogger.Logger,
	overview *usecase.MarketOverview,
	basis *usecase.BasisAnalyzer,
	market repository.MarketData,
	cfg *config.Config,
) *api.MarketHandler {
	return api.NewMarketHandler(logger, overview, basis, market,
		cfg.Market.DefaultSymbol, cfg.Market.LookbackYears,
		cfg.Defaults.SpotReference, cfg.Market.QuoteInterval)
}

// ProvideRouter composes the handlers behind the session middleware.
func ProvideRouter(
	auth *usecase.Auth,
	authHandler *api.AuthHandler,
	analysisHandler *api.AnalysisHandler,
	marketHandler *api.MarketHandler,
) xhttp.Handler {
	return api.NewRouter(auth, authHandler, analysisHandler, marketHandler)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	sqlite *internalrepo.SQLiteStore,
	chClient *pkgch.Client,
	c cache.Service,
	events repository.EventPublisher,
) *server.App {
	return server.New(cfg, logger, handler, sqlite, chClient, c, events)
}
