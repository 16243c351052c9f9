// Package pricing holds the pure hedge and option math. Every function is
// total and deterministic; validation of user input happens in the callers.
package pricing

import (
	"math"

	"LithiumHedge/internal/domain/models"
)

// Scenario sweep grid: -50% to +100% in 1% steps, 151 points.
const (
	SweepMin  = -0.50
	SweepMax  = 1.00
	SweepStep = 0.01
	SweepLen  = 151
)

// NormCDF is the standard normal CDF via the error function.
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// BlackScholes returns the per-unit premium. Degenerate inputs (spot, strike,
// time or volatility at or below zero) return 0.0 rather than an error.
func BlackScholes(optionType string, spot, strike, timeYears, riskFree, volatility float64) float64 {
	if spot <= 0 || strike <= 0 || timeYears <= 0 || volatility <= 0 {
		return 0.0
	}

	sqrtT := math.Sqrt(timeYears)
	d1 := (math.Log(spot/strike) + (riskFree+0.5*volatility*volatility)*timeYears) / (volatility * sqrtT)
	d2 := d1 - volatility*sqrtT
	discount := math.Exp(-riskFree * timeYears)

	if optionType == models.OptionPut {
		return strike*discount*NormCDF(-d2) - spot*NormCDF(-d1)
	}
	return spot*NormCDF(d1) - strike*discount*NormCDF(d2)
}

// HedgeContracts returns the real and integer contract counts for an
// inventory and ratio. The integer count rounds half away from zero.
func HedgeContracts(inventory, hedgeRatio float64) (float64, int) {
	exact := inventory * hedgeRatio
	return exact, int(math.Round(exact))
}

// Breakeven solves for the future price at which spot plus futures P&L is
// zero. When the integer contract count equals the inventory the position is
// price-invariant and fullyHedged is true with no numeric breakeven.
func Breakeven(costPrice, currentPrice, inventory float64, contractsInt int) (breakeven float64, fullyHedged bool) {
	n := float64(contractsInt)
	if inventory == n {
		return 0, true
	}
	return (costPrice*inventory - currentPrice*n) / (inventory - n), false
}

// ScenarioAt evaluates the profit pair at one percentage shock.
func ScenarioAt(delta, currentPrice, costPrice, inventory float64, contractsInt int) models.ScenarioPoint {
	futurePrice := currentPrice * (1 + delta)
	noHedge := (futurePrice - costPrice) * inventory
	futures := (currentPrice - futurePrice) * float64(contractsInt)
	return models.ScenarioPoint{
		PriceChangePct: delta,
		FuturePrice:    futurePrice,
		NoHedgeProfit:  noHedge,
		HedgeProfit:    noHedge + futures,
	}
}

// ScenarioSweep produces the fixed 151-point P&L grid.
func ScenarioSweep(currentPrice, costPrice, inventory float64, contractsInt int) []models.ScenarioPoint {
	points := make([]models.ScenarioPoint, 0, SweepLen)
	for i := 0; i < SweepLen; i++ {
		delta := SweepMin + float64(i)*SweepStep
		points = append(points, ScenarioAt(delta, currentPrice, costPrice, inventory, contractsInt))
	}
	return points
}

// ClassifyRatio maps a hedge ratio to its advisory risk band.
func ClassifyRatio(hedgeRatio float64) models.RiskBand {
	switch {
	case hedgeRatio < 0.10:
		return models.RiskExtreme
	case hedgeRatio < 0.30:
		return models.RiskElevated
	case hedgeRatio < 0.70:
		return models.RiskModerate
	case hedgeRatio <= 1.00:
		return models.RiskAdequate
	default:
		return models.RiskOverHedged
	}
}

// ProfitPercentage is current profit relative to the cost basis, in percent.
// Defined as 0 when the basis is zero.
func ProfitPercentage(currentProfit, costPrice, inventory float64) float64 {
	basis := costPrice * inventory
	if basis == 0 {
		return 0
	}
	return currentProfit / basis * 100
}
