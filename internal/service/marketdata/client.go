package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"LithiumHedge/internal/domain/models"
	xhttp "LithiumHedge/pkg/http"
	"LithiumHedge/pkg/util"
)

// Column aliases seen across daily-bar feeds. Chinese names come from the
// SHFE-style exports, English ones from western data vendors.
var columnAliases = map[string]string{
	"date": "date", "day": "date", "日期": "date", "时间": "date",
	"close": "close", "price": "close", "收盘价": "close", "收盘": "close",
	"open": "open", "开盘价": "open", "开盘": "open",
	"high": "high", "最高价": "high", "最高": "high",
	"low": "low", "最低价": "low", "最低": "low",
	"volume": "volume", "vol": "volume", "成交量": "volume",
}

// Client fetches daily bars from the configured JSON endpoint.
type Client struct {
	http    *xhttp.Client
	baseURL string
	apiKey  string
}

// NewClient creates an upstream daily-bar client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent("lithium-hedge/1.0")),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// FetchDaily pulls and normalizes the daily series for a symbol.
func (c *Client) FetchDaily(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error) {
	var rows []map[string]json.RawMessage
	opts := &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/daily",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"start":  {from.Format("2006-01-02")},
			"end":    {to.Format("2006-01-02")},
		},
	}
	if c.apiKey != "" {
		opts.Headers = map[string]string{"X-Api-Key": c.apiKey}
	}

	if err := c.http.SendAndParse(ctx, opts, &rows); err != nil {
		return nil, fmt.Errorf("fetch daily %s: %w", symbol, err)
	}

	return NormalizeRows(rows)
}

// NormalizeRows maps heterogeneous upstream rows onto PriceBars: resolves
// column aliases, parses formatted numbers, drops rows without a positive
// close, and sorts ascending by date.
func NormalizeRows(rows []map[string]json.RawMessage) ([]models.PriceBar, error) {
	bars := make([]models.PriceBar, 0, len(rows))
	for _, row := range rows {
		var bar models.PriceBar
		var haveDate bool
		for key, raw := range row {
			canon, ok := columnAliases[strings.ToLower(strings.TrimSpace(key))]
			if !ok {
				continue
			}
			switch canon {
			case "date":
				if d, ok := parseDateValue(raw); ok {
					bar.Date = d
					haveDate = true
				}
			case "close":
				bar.Close, _ = parseNumberValue(raw)
			case "open":
				bar.Open, _ = parseNumberValue(raw)
			case "high":
				bar.High, _ = parseNumberValue(raw)
			case "low":
				bar.Low, _ = parseNumberValue(raw)
			case "volume":
				bar.Volume, _ = parseNumberValue(raw)
			}
		}
		if !haveDate || bar.Close <= 0 {
			continue
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, models.ErrDataUnavailable
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func parseDateValue(raw json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return util.ParseDate(s)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return util.ParseDate(strconv.FormatInt(n, 10))
	}
	return time.Time{}, false
}

func parseNumberValue(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return util.ParseAmount(s)
	}
	return 0, false
}
