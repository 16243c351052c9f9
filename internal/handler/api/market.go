package api

import (
	"context"
	"net/http"
	"time"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/internal/domain/repository"
	"LithiumHedge/internal/usecase"
	xhttp "LithiumHedge/pkg/http"
	applogger "LithiumHedge/pkg/logger"
	"LithiumHedge/pkg/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// MarketHandler exposes price series, period statistics, basis analysis and
// the live quote stream.
type MarketHandler struct {
	logger        *applogger.Logger
	overview      *usecase.MarketOverview
	basis         *usecase.BasisAnalyzer
	market        repository.MarketData
	defaultSymbol string
	lookbackYears int
	spotReference float64
	quoteInterval time.Duration
	upgrader      websocket.Upgrader
}

func NewMarketHandler(
	logger *applogger.Logger,
	overview *usecase.MarketOverview,
	basis *usecase.BasisAnalyzer,
	market repository.MarketData,
	defaultSymbol string,
	lookbackYears int,
	spotReference float64,
	quoteInterval time.Duration,
) *MarketHandler {
	if quoteInterval <= 0 {
		quoteInterval = 10 * time.Second
	}
	return &MarketHandler{
		logger:        logger,
		overview:      overview,
		basis:         basis,
		market:        market,
		defaultSymbol: defaultSymbol,
		lookbackYears: lookbackYears,
		spotReference: spotReference,
		quoteInterval: quoteInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin from the dashboard.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.GET("/prices", h.Prices)
	g.GET("/overview", h.Overview)
	g.GET("/basis", h.Basis)
	g.GET("/live", h.Live)
}

func (h *MarketHandler) Prices(c echo.Context) error {
	series, err := h.overview.Series(c.Request().Context(), c.QueryParam("symbol"), c.QueryParam("period"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, series)
}

func (h *MarketHandler) Overview(c echo.Context) error {
	stats, err := h.overview.Overview(c.Request().Context(), c.QueryParam("symbol"), c.QueryParam("period"))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, stats)
}

func (h *MarketHandler) Basis(c echo.Context) error {
	spot := util.ParseFloatDefault(c.QueryParam("spot_price"), h.spotReference)
	period := c.QueryParam("period")
	if period == "" {
		period = "3m"
	}

	report, err := h.basis.Basis(c.Request().Context(), c.QueryParam("symbol"), spot, period)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

// Live upgrades to WebSocket and pushes the latest quote on a fixed
// interval until the client disconnects.
func (h *MarketHandler) Live(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		symbol = h.defaultSymbol
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.logger.Info("live quote stream opened", applogger.String("symbol", symbol))

	// Reader goroutine: surface client close, discard anything else.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.quoteInterval)
	defer ticker.Stop()

	if err := h.pushQuote(ctx, conn, symbol); err != nil {
		return nil
	}
	for {
		select {
		case <-done:
			h.logger.Info("live quote stream closed", applogger.String("symbol", symbol))
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.pushQuote(ctx, conn, symbol); err != nil {
				h.logger.Warn("live quote push failed", applogger.Error(err))
				return nil
			}
		}
	}
}

func (h *MarketHandler) pushQuote(ctx context.Context, conn *websocket.Conn, symbol string) error {
	series, err := h.market.Fetch(ctx, symbol, h.lookbackYears)
	if err != nil || series.Empty() {
		// Keep the stream alive through upstream hiccups.
		return conn.WriteJSON(map[string]string{"symbol": symbol, "status": "unavailable"})
	}

	latest := series.Latest()
	return conn.WriteJSON(models.Quote{
		Symbol: symbol,
		Price:  latest.Close,
		Date:   latest.Date,
		Source: series.Source,
		SentAt: time.Now().UTC(),
	})
}
