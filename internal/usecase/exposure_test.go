package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"LithiumHedge/internal/domain/models"
)

func TestExposureCompute(t *testing.T) {
	calc := NewExposureCalculator(nil, nil, nil, testLogger(t))

	tests := []struct {
		name      string
		in        models.ExposureInput
		net       float64
		total     float64
		level     string
		direction string
	}{
		{
			name:      "long book",
			in:        models.ExposureInput{FuturePurchase: 200, Inventory: 100, LockedSales: 80},
			net:       220,
			total:     380,
			level:     models.ExposureHigh,
			direction: models.DirectionUp,
		},
		{
			name:      "balanced",
			in:        models.ExposureInput{FuturePurchase: 50, Inventory: 50, LockedSales: 100},
			net:       0,
			total:     200,
			level:     models.ExposureLow,
			direction: models.DirectionNeutral,
		},
		{
			name:      "oversold",
			in:        models.ExposureInput{FuturePurchase: 10, Inventory: 20, LockedSales: 100},
			net:       -70,
			total:     130,
			level:     models.ExposureHigh,
			direction: models.DirectionDown,
		},
		{
			name:      "medium band",
			in:        models.ExposureInput{FuturePurchase: 40, Inventory: 30, LockedSales: 30},
			net:       40,
			total:     100,
			level:     models.ExposureMedium,
			direction: models.DirectionUp,
		},
		{
			name:      "empty book",
			in:        models.ExposureInput{},
			net:       0,
			total:     0,
			level:     models.ExposureLow,
			direction: models.DirectionNeutral,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Compute(context.Background(), "", tt.in)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if result.NetExposure != tt.net {
				t.Errorf("net = %v, want %v", result.NetExposure, tt.net)
			}
			if result.TotalVolume != tt.total {
				t.Errorf("total = %v, want %v", result.TotalVolume, tt.total)
			}
			if result.RiskLevel != tt.level {
				t.Errorf("level = %s, want %s", result.RiskLevel, tt.level)
			}
			if result.Direction != tt.direction {
				t.Errorf("direction = %s, want %s", result.Direction, tt.direction)
			}
			if result.ImpactPer10K != tt.net*10000 {
				t.Errorf("impact = %v, want %v", result.ImpactPer10K, tt.net*10000)
			}
		})
	}
}

func TestExposureRatio(t *testing.T) {
	calc := NewExposureCalculator(nil, nil, nil, testLogger(t))

	result, err := calc.Compute(context.Background(), "", models.ExposureInput{
		FuturePurchase: 200, Inventory: 100, LockedSales: 80,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := 220.0 / 380.0
	if math.Abs(result.ExposureRatio-want) > 1e-12 {
		t.Errorf("ratio = %v, want %v", result.ExposureRatio, want)
	}
}

func TestExposureRejectsBadInput(t *testing.T) {
	calc := NewExposureCalculator(nil, nil, nil, testLogger(t))

	for _, in := range []models.ExposureInput{
		{FuturePurchase: -1},
		{Inventory: math.NaN()},
		{LockedSales: math.Inf(1)},
	} {
		if _, err := calc.Compute(context.Background(), "", in); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("input %+v: err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestExposureRecordsHistory(t *testing.T) {
	history := &fakeHistory{}
	calc := NewExposureCalculator(history, nil, nil, testLogger(t))

	if _, err := calc.Compute(context.Background(), "user-1", models.ExposureInput{Inventory: 10}); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(history.saved) != 1 || history.saved[0].analysisType != models.AnalysisExposure {
		t.Fatalf("history = %+v", history.saved)
	}
}
