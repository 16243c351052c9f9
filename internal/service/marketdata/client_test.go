package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"LithiumHedge/internal/domain/models"
	applogger "LithiumHedge/pkg/logger"
)

func rawRow(t *testing.T, m map[string]interface{}) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		out[k] = b
	}
	return out
}

func TestNormalizeRowsEnglishColumns(t *testing.T) {
	rows := []map[string]json.RawMessage{
		rawRow(t, map[string]interface{}{"date": "2025-03-14", "close": 85000.0, "volume": 1200.0}),
		rawRow(t, map[string]interface{}{"date": "2025-03-13", "close": 84500.0}),
	}
	bars, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	// Sorted ascending regardless of input order.
	if !bars[0].Date.Before(bars[1].Date) {
		t.Fatalf("bars not sorted ascending: %v, %v", bars[0].Date, bars[1].Date)
	}
	if bars[1].Close != 85000 {
		t.Fatalf("latest close = %v, want 85000", bars[1].Close)
	}
}

func TestNormalizeRowsChineseColumnsAndFormattedNumbers(t *testing.T) {
	rows := []map[string]json.RawMessage{
		rawRow(t, map[string]interface{}{
			"日期": "2025/03/14", "收盘价": "¥85,000", "开盘价": "84,200",
			"最高价": "85,500", "最低价": "84,000", "成交量": "12,000",
		}),
	}
	bars, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := bars[0]
	if b.Close != 85000 || b.Open != 84200 || b.High != 85500 || b.Low != 84000 || b.Volume != 12000 {
		t.Fatalf("unexpected bar: %+v", b)
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !b.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", b.Date, want)
	}
}

func TestNormalizeRowsDropsUnusableBars(t *testing.T) {
	rows := []map[string]json.RawMessage{
		rawRow(t, map[string]interface{}{"date": "2025-03-14", "close": 0.0}),
		rawRow(t, map[string]interface{}{"close": 85000.0}),
		rawRow(t, map[string]interface{}{"date": "2025-03-15", "close": 85100.0}),
	}
	bars, err := NormalizeRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
}

func TestNormalizeRowsEmpty(t *testing.T) {
	if _, err := NormalizeRows(nil); !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

type stubFetcher struct {
	bars []models.PriceBar
	err  error
}

func (f *stubFetcher) FetchDaily(context.Context, string, time.Time, time.Time) ([]models.PriceBar, error) {
	return f.bars, f.err
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestServiceFetchLive(t *testing.T) {
	bars := []models.PriceBar{{Date: time.Now(), Close: 85000}}
	svc := NewService(&stubFetcher{bars: bars}, testLogger(t))

	series, err := svc.Fetch(context.Background(), "LC0", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Source != models.SourceLive {
		t.Fatalf("source = %q, want live", series.Source)
	}
	if series.Latest().Close != 85000 {
		t.Fatalf("latest close = %v", series.Latest().Close)
	}
}

func TestServiceFetchFailsWithoutFallback(t *testing.T) {
	svc := NewService(&stubFetcher{err: errors.New("upstream down")}, testLogger(t))

	_, err := svc.Fetch(context.Background(), "LC0", 1)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestServiceFetchSimulatedFallback(t *testing.T) {
	svc := NewService(&stubFetcher{err: errors.New("upstream down")}, testLogger(t),
		WithSimulatedFallback(true))

	series, err := svc.Fetch(context.Background(), "LC0", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Source != models.SourceSimulated {
		t.Fatalf("source = %q, want simulated", series.Source)
	}
	if series.Empty() {
		t.Fatalf("simulated series must not be empty")
	}
	for _, b := range series.Bars {
		if b.Close <= 0 {
			t.Fatalf("simulated close must be positive, got %v", b.Close)
		}
	}
}

func TestServiceRejectsEmptySymbol(t *testing.T) {
	svc := NewService(&stubFetcher{}, testLogger(t))
	if _, err := svc.Fetch(context.Background(), "", 1); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulatedSeriesDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := SimulatedSeries("LC0", 1, now)
	b := SimulatedSeries("LC0", 1, now)
	if len(a.Bars) != len(b.Bars) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Bars), len(b.Bars))
	}
	for i := range a.Bars {
		if a.Bars[i].Close != b.Bars[i].Close {
			t.Fatalf("series not deterministic at %d", i)
		}
	}
}
