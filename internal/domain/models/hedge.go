package models

import "time"

// Risk bands classify the chosen hedge ratio for advisory output.
type RiskBand string

const (
	RiskExtreme    RiskBand = "extreme"
	RiskElevated   RiskBand = "elevated"
	RiskModerate   RiskBand = "moderate"
	RiskAdequate   RiskBand = "adequate"
	RiskOverHedged RiskBand = "over_hedged"
)

// HedgeInput are the caller-supplied hedge parameters. Immutable per call.
type HedgeInput struct {
	CostPrice  float64 `json:"cost_price"`
	Inventory  float64 `json:"inventory"`
	HedgeRatio float64 `json:"hedge_ratio"`
	MarginRate float64 `json:"margin_rate"`
	Symbol     string  `json:"symbol,omitempty"`
}

// HedgeResult is the structured outcome of one hedge calculation.
// FullyHedged marks the price-invariant case where HedgeBreakeven has no
// numeric value.
type HedgeResult struct {
	Symbol            string    `json:"symbol"`
	CurrentPrice      float64   `json:"current_price"`
	LatestDate        time.Time `json:"latest_date"`
	PriceSource       string    `json:"price_source"`
	HedgeContracts    float64   `json:"hedge_contracts"`
	HedgeContractsInt int       `json:"hedge_contracts_int"`
	TotalMargin       float64   `json:"total_margin"`
	CurrentProfit     float64   `json:"current_profit"`
	ProfitPercentage  float64   `json:"profit_percentage"`
	NoHedgeBreakeven  float64   `json:"no_hedge_breakeven"`
	HedgeBreakeven    float64   `json:"hedge_breakeven"`
	FullyHedged       bool      `json:"fully_hedged"`
	RiskBand          RiskBand  `json:"risk_band"`
}

// ScenarioPoint is one point of the P&L sweep.
type ScenarioPoint struct {
	PriceChangePct float64 `json:"price_change_pct"`
	FuturePrice    float64 `json:"future_price"`
	NoHedgeProfit  float64 `json:"no_hedge_profit"`
	HedgeProfit    float64 `json:"hedge_profit"`
}

// ScenarioRow is one named shock in the multi-scenario comparison.
type ScenarioRow struct {
	Name string `json:"name"`
	ScenarioPoint
}
