package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"LithiumHedge/internal/domain/models"
	internalrepo "LithiumHedge/internal/repository"
	"LithiumHedge/internal/usecase"
	"LithiumHedge/pkg/cache"
	applogger "LithiumHedge/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type stubMarket struct {
	series models.PriceSeries
	err    error
}

func (s *stubMarket) Fetch(context.Context, string, int) (models.PriceSeries, error) {
	return s.series, s.err
}

func recentSeries(close float64) models.PriceSeries {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	return models.PriceSeries{
		Symbol: "LC0",
		Source: models.SourceLive,
		Bars: []models.PriceBar{
			{Date: now.AddDate(0, 0, -2), Close: close * 0.98, Volume: 1000},
			{Date: now.AddDate(0, 0, -1), Close: close, Volume: 1200},
		},
	}
}

func newTestServer(t *testing.T, market *stubMarket) *echo.Echo {
	t.Helper()

	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := internalrepo.NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	mem := cache.NewMemoryCache()
	auth := usecase.NewAuth(store,
		internalrepo.NewRedisCodeStore(mem),
		internalrepo.NewRedisSessionStore(mem),
		logger,
		usecase.AuthConfig{BcryptCost: bcrypt.MinCost, SessionTTL: time.Hour, ResetCodeTTL: time.Minute},
	)

	bounds := usecase.Bounds{MaxCostPrice: 500000, MaxInventory: 10000, DefaultSymbol: "LC0", LookbackYears: 1}
	events := internalrepo.NopEventPublisher{}
	hedge := usecase.NewHedgeCalculator(market, store, events, nil, logger, bounds)
	option := usecase.NewOptionPremium(market, store, events, nil, logger, bounds)
	exposure := usecase.NewExposureCalculator(store, events, nil, logger)
	scenario := usecase.NewScenarioComparator(hedge, market, store, events, nil, logger)
	overview := usecase.NewMarketOverview(market, bounds)
	basis := usecase.NewBasisAnalyzer(overview)
	report := usecase.NewReportBuilder(hedge, exposure, scenario, basis, logger)
	history := usecase.NewHistory(store)

	router := NewRouter(auth,
		NewAuthHandler(logger, auth),
		NewAnalysisHandler(logger, hedge, option, exposure, scenario, report, history,
			CalculationDefaults{CostPrice: 100000, Inventory: 100, HedgeRatio: 0.8, MarginRate: 0.15}),
		NewMarketHandler(logger, overview, basis, market, "LC0", 1, 235000, time.Second),
	)

	e := echo.New()
	router.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
	}
	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			t.Fatalf("decode data: %v\n%s", err, env.Data)
		}
	}
	return env
}

func registerAndLogin(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "trader", "email": "trader@example.com", "password": "secret1",
	})
	env := decodeEnvelope(t, rec, nil)
	if env.Status != http.StatusCreated {
		t.Fatalf("register status = %d: %s", env.Status, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "trader", "password": "secret1",
	})
	var login struct {
		Token string `json:"token"`
	}
	env = decodeEnvelope(t, rec, &login)
	if env.Status != http.StatusOK || login.Token == "" {
		t.Fatalf("login failed: %s", rec.Body.String())
	}
	return login.Token
}

func TestHedgeEndpointWithHistory(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})
	token := registerAndLogin(t, e)

	rec := doJSON(e, http.MethodPost, "/api/hedge", token, map[string]interface{}{
		"cost_price": 100000, "inventory": 100, "hedge_ratio": 0.8, "margin_rate": 0.15,
	})
	var hedge struct {
		Result models.HedgeResult     `json:"result"`
		Curve  []models.ScenarioPoint `json:"curve"`
	}
	env := decodeEnvelope(t, rec, &hedge)
	if env.Status != http.StatusOK {
		t.Fatalf("hedge status = %d: %s", env.Status, rec.Body.String())
	}
	if hedge.Result.HedgeContractsInt != 80 || hedge.Result.TotalMargin != 1440000 {
		t.Errorf("result = %+v", hedge.Result)
	}
	if len(hedge.Curve) != 151 {
		t.Errorf("curve points = %d, want 151", len(hedge.Curve))
	}

	rec = doJSON(e, http.MethodGet, "/api/history", token, nil)
	var list struct {
		Rows  []models.AnalysisRecord `json:"rows"`
		Total int64                   `json:"total"`
	}
	env = decodeEnvelope(t, rec, &list)
	if env.Status != http.StatusOK || len(list.Rows) != 1 {
		t.Fatalf("history = %s", rec.Body.String())
	}
	if list.Rows[0].AnalysisType != models.AnalysisHedge {
		t.Errorf("history type = %s", list.Rows[0].AnalysisType)
	}

	rec = doJSON(e, http.MethodDelete, "/api/history/"+list.Rows[0].ID, token, nil)
	if env := decodeEnvelope(t, rec, nil); env.Status != http.StatusOK {
		t.Fatalf("delete status = %d", env.Status)
	}
}

func TestHedgeEndpointAnonymous(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	rec := doJSON(e, http.MethodPost, "/api/hedge", "", map[string]interface{}{
		"cost_price": 100000, "inventory": 100,
	})
	var hedge struct {
		Result models.HedgeResult `json:"result"`
	}
	env := decodeEnvelope(t, rec, &hedge)
	if env.Status != http.StatusOK {
		t.Fatalf("hedge status = %d: %s", env.Status, rec.Body.String())
	}
	// Defaults applied at bind time: ratio 0.8, margin 0.15.
	if hedge.Result.HedgeContractsInt != 80 {
		t.Errorf("contracts = %d, want 80", hedge.Result.HedgeContractsInt)
	}
}

func TestHedgeEndpointValidation(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	rec := doJSON(e, http.MethodPost, "/api/hedge", "", map[string]interface{}{
		"cost_price": 100000, "inventory": 100, "hedge_ratio": 2, "margin_rate": 0.15,
	})
	if env := decodeEnvelope(t, rec, nil); env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

func TestHedgeEndpointUpstreamDown(t *testing.T) {
	e := newTestServer(t, &stubMarket{err: models.ErrDataUnavailable})

	rec := doJSON(e, http.MethodPost, "/api/hedge", "", map[string]interface{}{
		"cost_price": 100000, "inventory": 100,
	})
	if env := decodeEnvelope(t, rec, nil); env.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", env.Status)
	}
}

func TestHedgeCurveCSVEndpoint(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	req := httptest.NewRequest(http.MethodGet, "/api/hedge/curve.csv?cost_price=100000&inventory=100", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %s", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Header plus the 151 sweep points.
	if len(lines) != 152 {
		t.Fatalf("lines = %d, want 152", len(lines))
	}
	if lines[0] != "price_change_pct,future_price,no_hedge_profit,hedge_profit" {
		t.Errorf("header = %q", lines[0])
	}
}

func TestExposureEndpoint(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	rec := doJSON(e, http.MethodPost, "/api/exposure", "", map[string]interface{}{
		"future_purchase": 200, "inventory": 100, "locked_sales": 80,
	})
	var result models.ExposureResult
	env := decodeEnvelope(t, rec, &result)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}
	if result.NetExposure != 220 || result.RiskLevel != models.ExposureHigh {
		t.Errorf("result = %+v", result)
	}
}

func TestHistoryRequiresSession(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	rec := doJSON(e, http.MethodGet, "/api/history", "", nil)
	if env := decodeEnvelope(t, rec, nil); env.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", env.Status)
	}
}

func TestMarketOverviewEndpoint(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	rec := doJSON(e, http.MethodGet, "/api/market/overview?period=1m", "", nil)
	var stats models.OverviewStats
	env := decodeEnvelope(t, rec, &stats)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}
	if stats.Symbol != "LC0" || stats.Latest != 120000 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t, &stubMarket{series: recentSeries(120000)})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
