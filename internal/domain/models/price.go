package models

import "time"

// Price series source labels.
const (
	SourceLive      = "live"
	SourceCached    = "cached"
	SourceStore     = "store"
	SourceSimulated = "simulated"
)

// PriceBar is one daily futures bar. Close is the only field every upstream
// provides; the rest may be zero.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open,omitempty"`
	High   float64   `json:"high,omitempty"`
	Low    float64   `json:"low,omitempty"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// PriceSeries is a date-ascending run of daily bars with a provenance label.
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Source string     `json:"source"`
	Bars   []PriceBar `json:"bars"`
}

// Empty reports whether the series has no usable bars.
func (s PriceSeries) Empty() bool {
	return len(s.Bars) == 0
}

// Latest returns the last bar. Callers must check Empty first.
func (s PriceSeries) Latest() PriceBar {
	return s.Bars[len(s.Bars)-1]
}

// Since returns the sub-series of bars at or after cutoff. A zero cutoff
// returns the whole series.
func (s PriceSeries) Since(cutoff time.Time) PriceSeries {
	if cutoff.IsZero() {
		return s
	}
	out := PriceSeries{Symbol: s.Symbol, Source: s.Source}
	for _, b := range s.Bars {
		if !b.Date.Before(cutoff) {
			out.Bars = append(out.Bars, b)
		}
	}
	return out
}

// Quote is a point-in-time view of the latest bar, pushed on the live stream.
type Quote struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Date   time.Time `json:"date"`
	Source string    `json:"source"`
	SentAt time.Time `json:"sent_at"`
}
