package models

// Request bodies for the API layer. Validation tags are enforced at bind
// time; config-supplied bounds (max cost, max inventory) are checked in the
// usecase layer so they stay configurable.

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

type ResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

type SettingsRequest struct {
	DefaultCostPrice  float64 `json:"default_cost_price" validate:"gte=0"`
	DefaultInventory  float64 `json:"default_inventory" validate:"gte=0"`
	DefaultHedgeRatio float64 `json:"default_hedge_ratio" validate:"gte=0,lte=1"`
	ThemeColor        string  `json:"theme_color" validate:"omitempty,max=32"`
}

type HedgeRequest struct {
	Symbol     string  `json:"symbol"`
	CostPrice  float64 `json:"cost_price" validate:"gte=0"`
	Inventory  float64 `json:"inventory" validate:"gte=0"`
	HedgeRatio float64 `json:"hedge_ratio" default:"0.8" validate:"gte=0,lte=1"`
	MarginRate float64 `json:"margin_rate" default:"0.15" validate:"gt=0,lt=1"`
}

// Input converts the request to calculator input.
func (r HedgeRequest) Input() HedgeInput {
	return HedgeInput{
		CostPrice:  r.CostPrice,
		Inventory:  r.Inventory,
		HedgeRatio: r.HedgeRatio,
		MarginRate: r.MarginRate,
		Symbol:     r.Symbol,
	}
}

type OptionRequest struct {
	Type       string  `json:"type" validate:"required,oneof=call put"`
	Spot       float64 `json:"spot" validate:"gte=0"`
	Strike     float64 `json:"strike" validate:"gte=0"`
	TimeYears  float64 `json:"time_years" validate:"gte=0"`
	RiskFree   float64 `json:"risk_free" validate:"gte=0,lte=1"`
	Volatility float64 `json:"volatility" validate:"gte=0,lte=5"`
	Quantity   float64 `json:"quantity" default:"1" validate:"gt=0"`
	WithCurves bool    `json:"with_curves"`
}

type ExposureRequest struct {
	FuturePurchase float64 `json:"future_purchase" validate:"gte=0"`
	Inventory      float64 `json:"inventory" validate:"gte=0"`
	LockedSales    float64 `json:"locked_sales" validate:"gte=0"`
}

type ScenarioRequest struct {
	HedgeRequest
	CustomShock float64 `json:"custom_shock" default:"0.2" validate:"gte=-0.5,lte=1"`
}

type ReportRequest struct {
	Hedge       HedgeRequest     `json:"hedge" validate:"required"`
	Exposure    *ExposureRequest `json:"exposure" validate:"omitempty"`
	CustomShock float64          `json:"custom_shock" default:"0.2" validate:"gte=-0.5,lte=1"`
	SpotPrice   float64          `json:"spot_price" validate:"gte=0"`
}
