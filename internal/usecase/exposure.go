package usecase

import (
	"context"
	"fmt"
	"math"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	applogger "LithiumHedge/pkg/logger"
)

// ExposureCalculator quantifies the net unhedged position.
type ExposureCalculator struct {
	rec recorder
}

// NewExposureCalculator wires the calculator.
func NewExposureCalculator(
	history repository.HistoryStore,
	events repository.EventPublisher,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *ExposureCalculator {
	return &ExposureCalculator{
		rec: recorder{history: history, events: events, metrics: metrics, logger: logger},
	}
}

// Compute is pure except for the best-effort history append.
func (e *ExposureCalculator) Compute(ctx context.Context, userID string, in models.ExposureInput) (models.ExposureResult, error) {
	for name, v := range map[string]float64{
		"future_purchase": in.FuturePurchase, "inventory": in.Inventory, "locked_sales": in.LockedSales,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return models.ExposureResult{}, fmt.Errorf("%w: %s must be a non-negative finite number", models.ErrInvalidInput, name)
		}
	}

	net := in.FuturePurchase + in.Inventory - in.LockedSales
	total := in.FuturePurchase + in.Inventory + in.LockedSales

	ratio := 0.0
	if total > 0 {
		ratio = math.Abs(net) / total
	}

	level := models.ExposureHigh
	switch {
	case ratio < 0.2:
		level = models.ExposureLow
	case ratio < 0.5:
		level = models.ExposureMedium
	}

	direction := models.DirectionNeutral
	switch {
	case net > 0:
		direction = models.DirectionUp
	case net < 0:
		direction = models.DirectionDown
	}

	result := models.ExposureResult{
		NetExposure:   net,
		TotalVolume:   total,
		ExposureRatio: ratio,
		RiskLevel:     level,
		Direction:     direction,
		ImpactPer10K:  net * 10000,
	}

	e.rec.record(ctx, userID, models.AnalysisExposure, in, result)
	return result, nil
}
