package models

import (
	"encoding/json"
	"time"
)

// User is a registered account. PasswordHash is bcrypt and never serialized.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Active       bool       `json:"active"`
}

// UserSettings are per-user calculation defaults.
type UserSettings struct {
	UserID            string  `json:"-"`
	DefaultCostPrice  float64 `json:"default_cost_price"`
	DefaultInventory  float64 `json:"default_inventory"`
	DefaultHedgeRatio float64 `json:"default_hedge_ratio"`
	ThemeColor        string  `json:"theme_color,omitempty"`
}

// DefaultUserSettings returns the settings applied to fresh accounts.
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:            userID,
		DefaultCostPrice:  100000,
		DefaultInventory:  100,
		DefaultHedgeRatio: 0.8,
	}
}

// Session is an opaque bearer token bound to a user.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AnalysisRecord is one saved analysis run.
type AnalysisRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	AnalysisType  string          `json:"analysis_type"`
	InputParams   json.RawMessage `json:"input_params"`
	ResultSummary json.RawMessage `json:"result_summary"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Analysis type labels used in history records and event payloads.
const (
	AnalysisHedge    = "hedge"
	AnalysisExposure = "exposure"
	AnalysisScenario = "scenario"
	AnalysisOption   = "option"
	AnalysisBasis    = "basis"
	AnalysisReport   = "report"
)
