package pricing

import "LithiumHedge/internal/domain/models"

// CurvePoints is the terminal-spot grid size for strategy comparison,
// spanning 0.7x to 1.3x of the current price.
const CurvePoints = 60

// StrategyCurves compares per-unit outcomes of no protection, a futures
// lock at strike, and an option at strike, across terminal spot prices.
// For a call the values are purchase cost; for a put, sale revenue.
func StrategyCurves(optionType string, currentPrice, strike, premium float64) *models.InsuranceCurves {
	lo := currentPrice * 0.7
	hi := currentPrice * 1.3
	step := (hi - lo) / float64(CurvePoints-1)

	curves := &models.InsuranceCurves{
		Spots:   make([]float64, CurvePoints),
		Bare:    make([]float64, CurvePoints),
		Futures: make([]float64, CurvePoints),
		Option:  make([]float64, CurvePoints),
	}

	for i := 0; i < CurvePoints; i++ {
		spot := lo + float64(i)*step
		curves.Spots[i] = spot
		curves.Bare[i] = spot
		curves.Futures[i] = strike
		if optionType == models.OptionPut {
			curves.Option[i] = max(spot, strike) - premium
		} else {
			curves.Option[i] = min(spot, strike) + premium
		}
	}
	return curves
}
