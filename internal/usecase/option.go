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

// OptionPremium prices price-insurance options. When the caller leaves the
// spot at zero it is taken from the latest futures close.
type OptionPremium struct {
	market repository.MarketData
	bounds Bounds
	rec    recorder
}

// NewOptionPremium wires the pricer.
func NewOptionPremium(
	market repository.MarketData,
	history repository.HistoryStore,
	events repository.EventPublisher,
	metrics repository.Metrics,
	logger *applogger.Logger,
	bounds Bounds,
) *OptionPremium {
	return &OptionPremium{
		market: market,
		bounds: bounds,
		rec:    recorder{history: history, events: events, metrics: metrics, logger: logger},
	}
}

// Compute returns the per-unit premium and, when asked, the strategy
// comparison curves.
func (o *OptionPremium) Compute(ctx context.Context, userID string, req models.OptionRequest) (models.OptionResult, error) {
	if req.Type != models.OptionCall && req.Type != models.OptionPut {
		return models.OptionResult{}, fmt.Errorf("%w: option type must be call or put", models.ErrInvalidInput)
	}
	for name, v := range map[string]float64{
		"spot": req.Spot, "strike": req.Strike, "time_years": req.TimeYears,
		"risk_free": req.RiskFree, "volatility": req.Volatility,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return models.OptionResult{}, fmt.Errorf("%w: %s must be a non-negative finite number", models.ErrInvalidInput, name)
		}
	}

	spot := req.Spot
	if spot == 0 {
		series, err := o.market.Fetch(ctx, o.bounds.DefaultSymbol, o.bounds.LookbackYears)
		if err != nil {
			return models.OptionResult{}, err
		}
		if series.Empty() {
			return models.OptionResult{}, fmt.Errorf("%w: no price for spot", models.ErrDataUnavailable)
		}
		spot = series.Latest().Close
	}

	premium := pricing.BlackScholes(req.Type, spot, req.Strike, req.TimeYears, req.RiskFree, req.Volatility)

	result := models.OptionResult{Premium: premium}
	if req.WithCurves && spot > 0 && req.Strike > 0 {
		result.Curves = pricing.StrategyCurves(req.Type, spot, req.Strike, premium)
		result.Curves.Quantity = req.Quantity
	}

	o.rec.record(ctx, userID, models.AnalysisOption, req, result)
	return result, nil
}
