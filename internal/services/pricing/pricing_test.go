package pricing

import (
	"math"
	"testing"

	"LithiumHedge/internal/domain/models"
)

func TestBlackScholesReferenceValue(t *testing.T) {
	call := BlackScholes(models.OptionCall, 100, 100, 1, 0, 0.2)
	if math.Abs(call-7.97) > 0.05 {
		t.Fatalf("call premium = %v, want 7.97 +/- 0.05", call)
	}

	// At r=0 and spot==strike, put and call premiums coincide.
	put := BlackScholes(models.OptionPut, 100, 100, 1, 0, 0.2)
	if math.Abs(put-call) > 1e-9 {
		t.Fatalf("put premium = %v, call = %v, want equal", put, call)
	}
}

func TestBlackScholesPutCallParity(t *testing.T) {
	spot, strike, tm, r, sigma := 120.0, 100.0, 0.5, 0.03, 0.35
	call := BlackScholes(models.OptionCall, spot, strike, tm, r, sigma)
	put := BlackScholes(models.OptionPut, spot, strike, tm, r, sigma)

	parity := call - put
	want := spot - strike*math.Exp(-r*tm)
	if math.Abs(parity-want) > 1e-9 {
		t.Fatalf("parity violated: C-P = %v, want %v", parity, want)
	}
}

func TestBlackScholesDegenerateInputs(t *testing.T) {
	cases := []struct {
		name                          string
		spot, strike, tm, r, sigma float64
	}{
		{"zero volatility", 100, 100, 1, 0.02, 0},
		{"zero time", 100, 100, 0, 0.02, 0.2},
		{"zero spot", 0, 100, 1, 0.02, 0.2},
		{"zero strike", 100, 0, 1, 0.02, 0.2},
		{"negative volatility", 100, 100, 1, 0.02, -0.1},
	}
	for _, tc := range cases {
		if got := BlackScholes(models.OptionCall, tc.spot, tc.strike, tc.tm, tc.r, tc.sigma); got != 0.0 {
			t.Fatalf("%s: premium = %v, want 0.0", tc.name, got)
		}
	}
}

func TestHedgeContractsRounding(t *testing.T) {
	// Half rounds away from zero.
	cases := []struct {
		inventory, ratio float64
		wantInt          int
	}{
		{100, 0.8, 80},
		{101, 0.5, 51},  // 50.5 -> 51
		{99, 0.5, 50},   // 49.5 -> 50
		{100, 0.333, 33}, // 33.3 -> 33
		{0, 0.8, 0},
	}
	for _, tc := range cases {
		exact, n := HedgeContracts(tc.inventory, tc.ratio)
		if n != tc.wantInt {
			t.Fatalf("HedgeContracts(%v, %v) int = %d, want %d", tc.inventory, tc.ratio, n, tc.wantInt)
		}
		if math.Abs(exact-tc.inventory*tc.ratio) > 1e-9 {
			t.Fatalf("exact contracts = %v, want %v", exact, tc.inventory*tc.ratio)
		}
	}
}

func TestBreakeven(t *testing.T) {
	// Partially hedged: linear solution.
	be, full := Breakeven(100000, 120000, 100, 80)
	if full {
		t.Fatalf("expected numeric breakeven")
	}
	// At the breakeven price, spot plus futures P&L must be zero.
	spot := (be - 100000) * 100
	futures := (120000 - be) * 80
	if math.Abs(spot+futures) > 1e-6 {
		t.Fatalf("P&L at breakeven = %v, want 0", spot+futures)
	}

	// Fully hedged: price-invariant, sentinel instead of a number.
	if _, full := Breakeven(100000, 120000, 80, 80); !full {
		t.Fatalf("expected fully hedged sentinel")
	}
}

func TestNoHedgeBreakevenIsCost(t *testing.T) {
	// Spot-only profit is zero exactly at the cost price.
	p := ScenarioAt(0, 100000, 100000, 100, 0)
	if p.NoHedgeProfit != 0 {
		t.Fatalf("no-hedge profit at cost price = %v, want 0", p.NoHedgeProfit)
	}
}

func TestScenarioSweepShape(t *testing.T) {
	points := ScenarioSweep(120000, 100000, 100, 80)
	if len(points) != SweepLen {
		t.Fatalf("sweep has %d points, want %d", len(points), SweepLen)
	}
	if math.Abs(points[0].PriceChangePct-SweepMin) > 1e-9 {
		t.Fatalf("first delta = %v, want %v", points[0].PriceChangePct, SweepMin)
	}
	if math.Abs(points[len(points)-1].PriceChangePct-SweepMax) > 1e-9 {
		t.Fatalf("last delta = %v, want %v", points[len(points)-1].PriceChangePct, SweepMax)
	}
}

func TestScenarioOverlayIdentity(t *testing.T) {
	// The hedge overlay is exactly the futures leg, independent of cost.
	current, inventory := 120000.0, 100.0
	contracts := 80
	for _, cost := range []float64{80000.0, 100000.0, 140000.0} {
		for _, p := range ScenarioSweep(current, cost, inventory, contracts) {
			overlay := p.HedgeProfit - p.NoHedgeProfit
			futures := (current - p.FuturePrice) * float64(contracts)
			if math.Abs(overlay-futures) > 1e-6 {
				t.Fatalf("delta %v: overlay = %v, futures leg = %v", p.PriceChangePct, overlay, futures)
			}
		}
	}
}

func TestFullHedgePriceInvariance(t *testing.T) {
	points := ScenarioSweep(120000, 100000, 80, 80)
	ref := points[0].HedgeProfit
	for _, i := range []int{25, 75, 150} {
		if math.Abs(points[i].HedgeProfit-ref) > 1e-6 {
			t.Fatalf("hedge profit varies under full hedge: %v vs %v at delta %v",
				points[i].HedgeProfit, ref, points[i].PriceChangePct)
		}
	}
}

func TestClassifyRatio(t *testing.T) {
	cases := []struct {
		ratio float64
		want  models.RiskBand
	}{
		{0.05, models.RiskExtreme},
		{0.10, models.RiskElevated},
		{0.29, models.RiskElevated},
		{0.30, models.RiskModerate},
		{0.69, models.RiskModerate},
		{0.70, models.RiskAdequate},
		{1.00, models.RiskAdequate},
		{1.50, models.RiskOverHedged},
	}
	for _, tc := range cases {
		if got := ClassifyRatio(tc.ratio); got != tc.want {
			t.Fatalf("ClassifyRatio(%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

func TestProfitPercentage(t *testing.T) {
	if got := ProfitPercentage(2000000, 100000, 100); got != 20.0 {
		t.Fatalf("profit percentage = %v, want 20", got)
	}
	if got := ProfitPercentage(500, 0, 100); got != 0 {
		t.Fatalf("zero basis must yield 0, got %v", got)
	}
}

func TestStrategyCurves(t *testing.T) {
	current, strike, premium := 240000.0, 250000.0, 8000.0
	c := StrategyCurves(models.OptionCall, current, strike, premium)
	if len(c.Spots) != CurvePoints {
		t.Fatalf("curve has %d points, want %d", len(c.Spots), CurvePoints)
	}
	if c.Spots[0] != current*0.7 || math.Abs(c.Spots[CurvePoints-1]-current*1.3) > 1e-6 {
		t.Fatalf("curve range [%v, %v], want [%v, %v]",
			c.Spots[0], c.Spots[CurvePoints-1], current*0.7, current*1.3)
	}
	for i, spot := range c.Spots {
		if c.Futures[i] != strike {
			t.Fatalf("futures lock must be constant at strike")
		}
		want := math.Min(spot, strike) + premium
		if math.Abs(c.Option[i]-want) > 1e-9 {
			t.Fatalf("call option cost at %v = %v, want %v", spot, c.Option[i], want)
		}
	}

	p := StrategyCurves(models.OptionPut, current, strike, premium)
	for i, spot := range p.Spots {
		want := math.Max(spot, strike) - premium
		if math.Abs(p.Option[i]-want) > 1e-9 {
			t.Fatalf("put option revenue at %v = %v, want %v", spot, p.Option[i], want)
		}
	}
}
