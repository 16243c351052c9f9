package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"LithiumHedge/internal/domain/models"
	applogger "LithiumHedge/pkg/logger"

	"github.com/google/uuid"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

type fakeMarket struct {
	series models.PriceSeries
	err    error
	calls  int
}

func (f *fakeMarket) Fetch(context.Context, string, int) (models.PriceSeries, error) {
	f.calls++
	return f.series, f.err
}

func seriesWithClose(close float64) models.PriceSeries {
	return models.PriceSeries{
		Symbol: "LC0",
		Source: models.SourceLive,
		Bars: []models.PriceBar{
			{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Close: close * 0.98},
			{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Close: close},
		},
	}
}

type savedRecord struct {
	userID, analysisType string
	input, result        json.RawMessage
}

type fakeHistory struct {
	saved   []savedRecord
	saveErr error
}

func (f *fakeHistory) Save(_ context.Context, userID, analysisType string, input, result json.RawMessage) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, savedRecord{userID, analysisType, input, result})
	return uuid.NewString(), nil
}

func (f *fakeHistory) List(_ context.Context, userID string, _ int) ([]models.AnalysisRecord, error) {
	var out []models.AnalysisRecord
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].userID == userID {
			out = append(out, models.AnalysisRecord{
				AnalysisType:  f.saved[i].analysisType,
				InputParams:   f.saved[i].input,
				ResultSummary: f.saved[i].result,
			})
		}
	}
	return out, nil
}

func (f *fakeHistory) Delete(context.Context, string, string) (bool, error) {
	return false, nil
}

type fakeUserStore struct {
	users    map[string]*models.User // by id
	settings map[string]models.UserSettings
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:    make(map[string]*models.User),
		settings: make(map[string]models.UserSettings),
	}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return models.ErrUserExists
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) ByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) ByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID, hash string) error {
	u, ok := f.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserStore) TouchLogin(_ context.Context, userID string, at time.Time) error {
	if u, ok := f.users[userID]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (f *fakeUserStore) Settings(_ context.Context, userID string) (models.UserSettings, error) {
	if s, ok := f.settings[userID]; ok {
		return s, nil
	}
	return models.DefaultUserSettings(userID), nil
}

func (f *fakeUserStore) SaveSettings(_ context.Context, s models.UserSettings) error {
	f.settings[s.UserID] = s
	return nil
}

type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) Put(_ context.Context, email, code string, _ time.Duration) error {
	f.codes[email] = code
	return nil
}

func (f *fakeCodeStore) Redeem(_ context.Context, email, code string) (bool, error) {
	stored, ok := f.codes[email]
	if !ok || stored != code {
		return false, nil
	}
	delete(f.codes, email)
	return true, nil
}

type fakeSessionStore struct {
	sessions map[string]models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionStore) Put(_ context.Context, s models.Session, _ time.Duration) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (*models.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return &s, nil
	}
	return nil, models.ErrUnauthorized
}

func (f *fakeSessionStore) Drop(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}
