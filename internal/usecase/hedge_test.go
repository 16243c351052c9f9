package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/services/pricing"
)

func testBounds() Bounds {
	return Bounds{MaxCostPrice: 500000, MaxInventory: 10000, DefaultSymbol: "LC0", LookbackYears: 1}
}

func baseInput() models.HedgeInput {
	return models.HedgeInput{CostPrice: 100000, Inventory: 100, HedgeRatio: 0.8, MarginRate: 0.15}
}

func TestHedgeComputeRoundTrip(t *testing.T) {
	market := &fakeMarket{series: seriesWithClose(120000)}
	history := &fakeHistory{}
	calc := NewHedgeCalculator(market, history, nil, nil, testLogger(t), testBounds())

	result, sweep, err := calc.Compute(context.Background(), "user-1", baseInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if result.HedgeContractsInt != 80 {
		t.Errorf("contracts = %d, want 80", result.HedgeContractsInt)
	}
	if result.HedgeContracts != 80.0 {
		t.Errorf("exact contracts = %v, want 80", result.HedgeContracts)
	}
	if result.TotalMargin != 1440000 {
		t.Errorf("total margin = %v, want 1440000", result.TotalMargin)
	}
	if result.CurrentProfit != 2000000 {
		t.Errorf("current profit = %v, want 2000000", result.CurrentProfit)
	}
	if result.ProfitPercentage != 20.0 {
		t.Errorf("profit pct = %v, want 20", result.ProfitPercentage)
	}
	if result.NoHedgeBreakeven != 100000 {
		t.Errorf("no-hedge breakeven = %v, want 100000", result.NoHedgeBreakeven)
	}
	// (100000*100 - 120000*80) / (100 - 80)
	if result.HedgeBreakeven != 20000 {
		t.Errorf("hedge breakeven = %v, want 20000", result.HedgeBreakeven)
	}
	if result.FullyHedged {
		t.Error("80% hedge reported as fully hedged")
	}
	if result.RiskBand != models.RiskAdequate {
		t.Errorf("risk band = %s, want adequate", result.RiskBand)
	}
	if result.Symbol != "LC0" || result.PriceSource != models.SourceLive {
		t.Errorf("symbol/source = %s/%s", result.Symbol, result.PriceSource)
	}

	if len(sweep) != pricing.SweepLen {
		t.Fatalf("sweep length = %d, want %d", len(sweep), pricing.SweepLen)
	}
	last := sweep[len(sweep)-1].PriceChangePct
	if sweep[0].PriceChangePct != pricing.SweepMin || math.Abs(last-pricing.SweepMax) > 1e-9 {
		t.Errorf("sweep endpoints = %v..%v", sweep[0].PriceChangePct, last)
	}

	if len(history.saved) != 1 {
		t.Fatalf("history records = %d, want 1", len(history.saved))
	}
	if history.saved[0].analysisType != models.AnalysisHedge {
		t.Errorf("analysis type = %s", history.saved[0].analysisType)
	}
}

func TestHedgeComputeAnonymousSkipsHistory(t *testing.T) {
	history := &fakeHistory{}
	calc := NewHedgeCalculator(&fakeMarket{series: seriesWithClose(120000)}, history, nil, nil, testLogger(t), testBounds())

	if _, _, err := calc.Compute(context.Background(), "", baseInput()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(history.saved) != 0 {
		t.Errorf("anonymous call wrote %d history records", len(history.saved))
	}
}

func TestHedgeComputeHistoryFailureNonFatal(t *testing.T) {
	history := &fakeHistory{saveErr: errors.New("disk full")}
	calc := NewHedgeCalculator(&fakeMarket{series: seriesWithClose(120000)}, history, nil, nil, testLogger(t), testBounds())

	result, _, err := calc.Compute(context.Background(), "user-1", baseInput())
	if err != nil {
		t.Fatalf("history failure surfaced: %v", err)
	}
	if result.HedgeContractsInt != 80 {
		t.Errorf("contracts = %d, want 80", result.HedgeContractsInt)
	}
}

func TestHedgeComputeEmptySeries(t *testing.T) {
	calc := NewHedgeCalculator(&fakeMarket{series: models.PriceSeries{Symbol: "LC0"}}, nil, nil, nil, testLogger(t), testBounds())

	_, _, err := calc.Compute(context.Background(), "", baseInput())
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestHedgeComputeMarketError(t *testing.T) {
	calc := NewHedgeCalculator(&fakeMarket{err: models.ErrDataUnavailable}, nil, nil, nil, testLogger(t), testBounds())

	_, _, err := calc.Compute(context.Background(), "", baseInput())
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestHedgeValidateInput(t *testing.T) {
	calc := NewHedgeCalculator(&fakeMarket{series: seriesWithClose(120000)}, nil, nil, nil, testLogger(t), testBounds())

	tests := []struct {
		name   string
		mutate func(*models.HedgeInput)
	}{
		{"nan cost", func(in *models.HedgeInput) { in.CostPrice = math.NaN() }},
		{"inf inventory", func(in *models.HedgeInput) { in.Inventory = math.Inf(1) }},
		{"negative cost", func(in *models.HedgeInput) { in.CostPrice = -1 }},
		{"cost above bound", func(in *models.HedgeInput) { in.CostPrice = 500001 }},
		{"inventory above bound", func(in *models.HedgeInput) { in.Inventory = 10001 }},
		{"ratio above one", func(in *models.HedgeInput) { in.HedgeRatio = 1.01 }},
		{"ratio negative", func(in *models.HedgeInput) { in.HedgeRatio = -0.1 }},
		{"margin zero", func(in *models.HedgeInput) { in.MarginRate = 0 }},
		{"margin one", func(in *models.HedgeInput) { in.MarginRate = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			if _, _, err := calc.Compute(context.Background(), "", in); !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestHedgeComputeFullyHedged(t *testing.T) {
	calc := NewHedgeCalculator(&fakeMarket{series: seriesWithClose(120000)}, nil, nil, nil, testLogger(t), testBounds())

	in := baseInput()
	in.HedgeRatio = 1.0
	result, _, err := calc.Compute(context.Background(), "", in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !result.FullyHedged {
		t.Error("100% hedge not marked fully hedged")
	}
	if result.RiskBand != models.RiskAdequate {
		t.Errorf("risk band = %s, want adequate", result.RiskBand)
	}
}
