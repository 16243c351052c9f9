package usecase

import (
	"context"
	"fmt"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	"LithiumHedge/internal/services/pricing"
	applogger "LithiumHedge/pkg/logger"
)

// ScenarioComparator evaluates the named shocks against the latest close.
type ScenarioComparator struct {
	hedge  *HedgeCalculator
	market repository.MarketData
	rec    recorder
}

// NewScenarioComparator reuses the hedge calculator's validation and bounds.
func NewScenarioComparator(
	hedge *HedgeCalculator,
	market repository.MarketData,
	history repository.HistoryStore,
	events repository.EventPublisher,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *ScenarioComparator {
	return &ScenarioComparator{
		hedge:  hedge,
		market: market,
		rec:    recorder{history: history, events: events, metrics: metrics, logger: logger},
	}
}

// Compare produces one row per named shock: +10%, 0%, -10% and the custom
// shock, using the same profit formulas as the dense sweep.
func (s *ScenarioComparator) Compare(ctx context.Context, userID string, in models.HedgeInput, customShock float64) ([]models.ScenarioRow, error) {
	if err := s.hedge.ValidateInput(in); err != nil {
		return nil, err
	}

	symbol := in.Symbol
	if symbol == "" {
		symbol = s.hedge.bounds.DefaultSymbol
	}
	series, err := s.market.Fetch(ctx, symbol, s.hedge.bounds.LookbackYears)
	if err != nil {
		return nil, err
	}
	if series.Empty() {
		return nil, fmt.Errorf("%w: empty series for %s", models.ErrDataUnavailable, symbol)
	}

	current := series.Latest().Close
	_, n := pricing.HedgeContracts(in.Inventory, in.HedgeRatio)

	shocks := []struct {
		name  string
		delta float64
	}{
		{"+10%", 0.10},
		{"0%", 0.0},
		{"-10%", -0.10},
		{fmt.Sprintf("custom %+.0f%%", customShock*100), customShock},
	}

	rows := make([]models.ScenarioRow, 0, len(shocks))
	for _, shock := range shocks {
		rows = append(rows, models.ScenarioRow{
			Name:          shock.name,
			ScenarioPoint: pricing.ScenarioAt(shock.delta, current, in.CostPrice, in.Inventory, n),
		})
	}

	s.rec.record(ctx, userID, models.AnalysisScenario, in, rows)
	return rows, nil
}
