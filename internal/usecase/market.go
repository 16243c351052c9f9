package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	"LithiumHedge/pkg/util"
)

// MarketOverview computes period statistics over the fetched series.
type MarketOverview struct {
	market repository.MarketData
	bounds Bounds
	now    func() time.Time
}

// NewMarketOverview wires the overview reader.
func NewMarketOverview(market repository.MarketData, bounds Bounds) *MarketOverview {
	return &MarketOverview{market: market, bounds: bounds, now: time.Now}
}

// Series returns the (period-filtered) raw series.
func (m *MarketOverview) Series(ctx context.Context, symbol, period string) (models.PriceSeries, error) {
	if symbol == "" {
		symbol = m.bounds.DefaultSymbol
	}
	series, err := m.market.Fetch(ctx, symbol, m.bounds.LookbackYears)
	if err != nil {
		return models.PriceSeries{}, err
	}
	filtered := series.Since(util.PeriodCutoff(period, m.now()))
	if filtered.Empty() {
		return models.PriceSeries{}, fmt.Errorf("%w: no bars in period %s", models.ErrDataUnavailable, period)
	}
	return filtered, nil
}

// Overview summarizes the period: extremes, dispersion, up/down days.
func (m *MarketOverview) Overview(ctx context.Context, symbol, period string) (models.OverviewStats, error) {
	series, err := m.Series(ctx, symbol, period)
	if err != nil {
		return models.OverviewStats{}, err
	}

	stats := models.OverviewStats{
		Symbol:     series.Symbol,
		Period:     period,
		Source:     series.Source,
		Latest:     series.Latest().Close,
		LatestDate: series.Latest().Date,
		Low:        math.MaxFloat64,
		Days:       len(series.Bars),
	}

	var sum float64
	for i, b := range series.Bars {
		sum += b.Close
		stats.TotalVolume += b.Volume
		if b.Close > stats.High {
			stats.High = b.Close
		}
		if b.Close < stats.Low {
			stats.Low = b.Close
		}
		if i == 0 {
			continue
		}
		change := b.Close - series.Bars[i-1].Close
		switch {
		case change > 0:
			stats.UpDays++
			if change > stats.MaxDayRise {
				stats.MaxDayRise = change
			}
		case change < 0:
			stats.DownDays++
			if change < stats.MaxDayFall {
				stats.MaxDayFall = change
			}
		default:
			stats.FlatDays++
		}
	}

	stats.Mean = sum / float64(len(series.Bars))
	var variance float64
	for _, b := range series.Bars {
		d := b.Close - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(series.Bars)))

	return stats, nil
}

// BasisAnalyzer compares futures closes with a spot reference price.
type BasisAnalyzer struct {
	overview *MarketOverview
}

// NewBasisAnalyzer wires the analyzer on top of the overview reader.
func NewBasisAnalyzer(overview *MarketOverview) *BasisAnalyzer {
	return &BasisAnalyzer{overview: overview}
}

// Basis builds the basis series (futures close minus spot reference).
func (b *BasisAnalyzer) Basis(ctx context.Context, symbol string, spotReference float64, period string) (models.BasisReport, error) {
	if spotReference <= 0 || math.IsNaN(spotReference) || math.IsInf(spotReference, 0) {
		return models.BasisReport{}, fmt.Errorf("%w: spot reference must be positive", models.ErrInvalidInput)
	}

	series, err := b.overview.Series(ctx, symbol, period)
	if err != nil {
		return models.BasisReport{}, err
	}

	report := models.BasisReport{
		Symbol:        series.Symbol,
		SpotReference: spotReference,
		Source:        series.Source,
		Points:        make([]models.BasisPoint, 0, len(series.Bars)),
	}

	var sum float64
	for _, bar := range series.Bars {
		p := models.BasisPoint{Date: bar.Date, Futures: bar.Close, Basis: bar.Close - spotReference}
		report.Points = append(report.Points, p)
		sum += p.Basis
	}
	report.Latest = report.Points[len(report.Points)-1]
	report.MeanBasis = sum / float64(len(report.Points))

	return report, nil
}
