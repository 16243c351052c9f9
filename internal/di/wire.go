//go:build wireinject
// +build wireinject

package di

import (
	"LithiumHedge/pkg/config"
	"LithiumHedge/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideSQLiteStore,
		ProvideClickHouseClient,
		ProvideEventPublisher,

		// Repositories
		ProvideMarketData,
		ProvideUserStore,
		ProvideHistoryStore,
		ProvideCodeStore,
		ProvideSessionStore,

		// Use cases
		ProvideBounds,
		ProvideAuth,
		ProvideHedgeCalculator,
		ProvideOptionPremium,
		ProvideExposureCalculator,
		ProvideScenarioComparator,
		ProvideMarketOverview,
		ProvideBasisAnalyzer,
		ProvideReportBuilder,
		ProvideHistory,

		// HTTP handlers
		ProvideAuthHandler,
		ProvideAnalysisHandler,
		ProvideMarketHandler,
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
