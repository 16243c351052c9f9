package usecase

import (
	"context"
	"fmt"
	"math"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	"LithiumHedge/internal/services/pricing"
	applogger "LithiumHedge/pkg/logger"
)

// Bounds are the config-supplied input ceilings. They come from the UI
// defaults of the deployment, not from the math.
type Bounds struct {
	MaxCostPrice  float64
	MaxInventory  float64
	DefaultSymbol string
	LookbackYears int
}

// HedgeCalculator orchestrates the pricing functions over a fetched series.
type HedgeCalculator struct {
	market repository.MarketData
	bounds Bounds
	rec    recorder
}

// NewHedgeCalculator wires the calculator. History, events and metrics are
// optional best-effort collaborators.
func NewHedgeCalculator(
	market repository.MarketData,
	history repository.HistoryStore,
	events repository.EventPublisher,
	metrics repository.Metrics,
	logger *applogger.Logger,
	bounds Bounds,
) *HedgeCalculator {
	return &HedgeCalculator{
		market: market,
		bounds: bounds,
		rec:    recorder{history: history, events: events, metrics: metrics, logger: logger},
	}
}

// ValidateInput rejects non-finite or out-of-bound parameters before any
// market call happens.
func (h *HedgeCalculator) ValidateInput(in models.HedgeInput) error {
	for name, v := range map[string]float64{
		"cost_price": in.CostPrice, "inventory": in.Inventory,
		"hedge_ratio": in.HedgeRatio, "margin_rate": in.MarginRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", models.ErrInvalidInput, name)
		}
	}
	if in.CostPrice < 0 || in.Inventory < 0 {
		return fmt.Errorf("%w: cost price and inventory must be non-negative", models.ErrInvalidInput)
	}
	if h.bounds.MaxCostPrice > 0 && in.CostPrice > h.bounds.MaxCostPrice {
		return fmt.Errorf("%w: cost price above bound %v", models.ErrInvalidInput, h.bounds.MaxCostPrice)
	}
	if h.bounds.MaxInventory > 0 && in.Inventory > h.bounds.MaxInventory {
		return fmt.Errorf("%w: inventory above bound %v", models.ErrInvalidInput, h.bounds.MaxInventory)
	}
	if in.HedgeRatio < 0 || in.HedgeRatio > 1 {
		return fmt.Errorf("%w: hedge ratio must be within [0,1]", models.ErrInvalidInput)
	}
	if in.MarginRate <= 0 || in.MarginRate >= 1 {
		return fmt.Errorf("%w: margin rate must be within (0,1)", models.ErrInvalidInput)
	}
	return nil
}

// Compute runs one hedge calculation against the latest market close.
// userID may be empty; when set, the result is appended to history.
func (h *HedgeCalculator) Compute(ctx context.Context, userID string, in models.HedgeInput) (models.HedgeResult, []models.ScenarioPoint, error) {
	if err := h.ValidateInput(in); err != nil {
		return models.HedgeResult{}, nil, err
	}

	symbol := in.Symbol
	if symbol == "" {
		symbol = h.bounds.DefaultSymbol
	}

	series, err := h.market.Fetch(ctx, symbol, h.bounds.LookbackYears)
	if err != nil {
		return models.HedgeResult{}, nil, err
	}
	if series.Empty() {
		return models.HedgeResult{}, nil, fmt.Errorf("%w: empty series for %s", models.ErrDataUnavailable, symbol)
	}

	latest := series.Latest()
	result := buildHedgeResult(in, symbol, series.Source, latest)
	sweep := pricing.ScenarioSweep(latest.Close, in.CostPrice, in.Inventory, result.HedgeContractsInt)

	h.rec.record(ctx, userID, models.AnalysisHedge, in, result)
	return result, sweep, nil
}

func buildHedgeResult(in models.HedgeInput, symbol, source string, latest models.PriceBar) models.HedgeResult {
	exact, n := pricing.HedgeContracts(in.Inventory, in.HedgeRatio)
	currentProfit := (latest.Close - in.CostPrice) * in.Inventory
	breakeven, fullyHedged := pricing.Breakeven(in.CostPrice, latest.Close, in.Inventory, n)

	return models.HedgeResult{
		Symbol:            symbol,
		CurrentPrice:      latest.Close,
		LatestDate:        latest.Date,
		PriceSource:       source,
		HedgeContracts:    exact,
		HedgeContractsInt: n,
		TotalMargin:       latest.Close * in.MarginRate * float64(n),
		CurrentProfit:     currentProfit,
		ProfitPercentage:  pricing.ProfitPercentage(currentProfit, in.CostPrice, in.Inventory),
		NoHedgeBreakeven:  in.CostPrice,
		HedgeBreakeven:    breakeven,
		FullyHedged:       fullyHedged,
		RiskBand:          pricing.ClassifyRatio(in.HedgeRatio),
	}
}
