package marketdata

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"LithiumHedge/internal/domain/models"
)

const simulatedBasePrice = 230000.0

// SimulatedSeries builds a deterministic random-walk daily series so the
// calculators can degrade instead of failing when no upstream is reachable.
// The result is always labeled models.SourceSimulated.
func SimulatedSeries(symbol string, lookbackYears int, now time.Time) models.PriceSeries {
	days := lookbackYears * 365
	if days <= 0 {
		days = 365
	}

	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	series := models.PriceSeries{Symbol: symbol, Source: models.SourceSimulated}
	price := simulatedBasePrice * (0.9 + 0.2*rng.Float64())
	start := now.AddDate(0, 0, -days)

	for i := 0; i <= days; i++ {
		date := start.AddDate(0, 0, i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		drift := rng.NormFloat64() * 0.012
		price = math.Max(price*(1+drift), 1000)
		open := price * (1 + rng.NormFloat64()*0.004)
		spread := math.Abs(rng.NormFloat64()) * 0.006 * price
		series.Bars = append(series.Bars, models.PriceBar{
			Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			Open:   open,
			High:   math.Max(open, price) + spread,
			Low:    math.Min(open, price) - spread,
			Close:  price,
			Volume: 1000 + rng.Float64()*9000,
		})
	}
	return series
}
