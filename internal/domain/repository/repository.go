package repository

import (
	"context"
	"encoding/json"
	"time"

	"LithiumHedge/internal/domain/models"
)

// MarketData supplies daily price series for a futures symbol.
type MarketData interface {
	Fetch(ctx context.Context, symbol string, lookbackYears int) (models.PriceSeries, error)
}

// PriceStore persists daily bars for fallback when the upstream is down.
type PriceStore interface {
	SaveBars(ctx context.Context, symbol string, bars []models.PriceBar) error
	LoadBars(ctx context.Context, symbol string, from time.Time) ([]models.PriceBar, error)
}

// HistoryStore keeps per-user analysis records.
type HistoryStore interface {
	Save(ctx context.Context, userID, analysisType string, inputParams, resultSummary json.RawMessage) (string, error)
	List(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error)
	Delete(ctx context.Context, recordID, userID string) (bool, error)
}

// UserStore manages accounts and per-user settings.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	TouchLogin(ctx context.Context, userID string, at time.Time) error
	Settings(ctx context.Context, userID string) (models.UserSettings, error)
	SaveSettings(ctx context.Context, s models.UserSettings) error
}

// CodeStore issues and redeems single-use password reset codes.
type CodeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Redeem(ctx context.Context, email, code string) (bool, error)
}

// SessionStore holds bearer-token sessions.
type SessionStore interface {
	Put(ctx context.Context, s models.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Drop(ctx context.Context, token string) error
}

// EventPublisher streams analysis events to an optional broker.
type EventPublisher interface {
	PublishAnalysis(ctx context.Context, userID, analysisType string, payload interface{}) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordCalculation(kind string)
	RecordError(kind string)
	RecordLastPrice(symbol, source string, price float64)
	RecordCacheLookup(outcome string)
	RecordLatency(op string, seconds float64)
}
