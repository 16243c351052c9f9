package models

// Exposure risk levels and directions.
const (
	ExposureLow    = "low"
	ExposureMedium = "medium"
	ExposureHigh   = "high"

	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"
)

// ExposureInput are the position quantities in tons.
type ExposureInput struct {
	FuturePurchase float64 `json:"future_purchase"`
	Inventory      float64 `json:"inventory"`
	LockedSales    float64 `json:"locked_sales"`
}

// ExposureResult quantifies the net unhedged position.
// ImpactPer10K is the cost change per 10,000 yuan/ton price move.
type ExposureResult struct {
	NetExposure   float64 `json:"net_exposure"`
	TotalVolume   float64 `json:"total_volume"`
	ExposureRatio float64 `json:"exposure_ratio"`
	RiskLevel     string  `json:"risk_level"`
	Direction     string  `json:"direction"`
	ImpactPer10K  float64 `json:"impact_per_10k"`
}
