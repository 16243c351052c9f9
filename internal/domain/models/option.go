package models

// Option types.
const (
	OptionCall = "call"
	OptionPut  = "put"
)

// OptionInput are Black-Scholes parameters.
type OptionInput struct {
	Type       string  `json:"type"`
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	TimeYears  float64 `json:"time_years"`
	RiskFree   float64 `json:"risk_free"`
	Volatility float64 `json:"volatility"`
}

// OptionResult carries the per-unit premium and, when requested, the
// strategy comparison curves over a spot range.
type OptionResult struct {
	Premium float64          `json:"premium"`
	Curves  *InsuranceCurves `json:"curves,omitempty"`
}

// InsuranceCurves compares no-protection, futures-hedge and option-hedge
// outcomes over a range of terminal spot prices.
type InsuranceCurves struct {
	Spots    []float64 `json:"spots"`
	Bare     []float64 `json:"bare"`
	Futures  []float64 `json:"futures"`
	Option   []float64 `json:"option"`
	Quantity float64   `json:"quantity"`
}
