package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"LithiumHedge/internal/domain/models"
	mid "LithiumHedge/internal/middleware"
	"LithiumHedge/internal/usecase"
	xhttp "LithiumHedge/pkg/http"
	applogger "LithiumHedge/pkg/logger"
	"LithiumHedge/pkg/util"

	"github.com/labstack/echo/v4"
)

// CalculationDefaults fill omitted query parameters on the CSV export.
type CalculationDefaults struct {
	CostPrice  float64
	Inventory  float64
	HedgeRatio float64
	MarginRate float64
}

// AnalysisHandler exposes the hedge, option, exposure, scenario and report
// calculators plus the per-user history.
type AnalysisHandler struct {
	logger   *applogger.Logger
	hedge    *usecase.HedgeCalculator
	option   *usecase.OptionPremium
	exposure *usecase.ExposureCalculator
	scenario *usecase.ScenarioComparator
	report   *usecase.ReportBuilder
	history  *usecase.History
	defaults CalculationDefaults
}

func NewAnalysisHandler(
	logger *applogger.Logger,
	hedge *usecase.HedgeCalculator,
	option *usecase.OptionPremium,
	exposure *usecase.ExposureCalculator,
	scenario *usecase.ScenarioComparator,
	report *usecase.ReportBuilder,
	history *usecase.History,
	defaults CalculationDefaults,
) *AnalysisHandler {
	return &AnalysisHandler{
		logger:   logger,
		hedge:    hedge,
		option:   option,
		exposure: exposure,
		scenario: scenario,
		report:   report,
		history:  history,
		defaults: defaults,
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/hedge", h.Hedge)
	g.GET("/hedge/curve.csv", h.HedgeCurveCSV)
	g.POST("/options/premium", h.OptionPremium)
	g.POST("/exposure", h.Exposure)
	g.POST("/scenarios", h.Scenarios)
	g.POST("/report", h.Report)

	hist := e.Group("/api/history", mid.RequireSession)
	hist.GET("", h.HistoryList)
	hist.DELETE("/:id", h.HistoryDelete)
}

type hedgeResponse struct {
	Result models.HedgeResult     `json:"result"`
	Curve  []models.ScenarioPoint `json:"curve"`
}

func (h *AnalysisHandler) Hedge(c echo.Context) error {
	req := &models.HedgeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, curve, err := h.hedge.Compute(c.Request().Context(), mid.UserID(c), req.Input())
	if err != nil {
		h.logger.Error("hedge calculation error", applogger.Error(err))
		return domainErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, hedgeResponse{Result: result, Curve: curve})
}

// HedgeCurveCSV streams the sweep as CSV for spreadsheet import. Parameters
// come from the query string; omitted ones use the deployment defaults.
func (h *AnalysisHandler) HedgeCurveCSV(c echo.Context) error {
	in := models.HedgeInput{
		Symbol:     c.QueryParam("symbol"),
		CostPrice:  util.ParseFloatDefault(c.QueryParam("cost_price"), h.defaults.CostPrice),
		Inventory:  util.ParseFloatDefault(c.QueryParam("inventory"), h.defaults.Inventory),
		HedgeRatio: util.ParseFloatDefault(c.QueryParam("hedge_ratio"), h.defaults.HedgeRatio),
		MarginRate: util.ParseFloatDefault(c.QueryParam("margin_rate"), h.defaults.MarginRate),
	}

	_, curve, err := h.hedge.Compute(c.Request().Context(), mid.UserID(c), in)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set("Content-Disposition", `attachment; filename="hedge_curve.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"price_change_pct", "future_price", "no_hedge_profit", "hedge_profit"}); err != nil {
		return err
	}
	for _, p := range curve {
		row := []string{
			strconv.FormatFloat(p.PriceChangePct*100, 'f', 0, 64),
			strconv.FormatFloat(p.FuturePrice, 'f', 2, 64),
			strconv.FormatFloat(p.NoHedgeProfit, 'f', 2, 64),
			strconv.FormatFloat(p.HedgeProfit, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *AnalysisHandler) OptionPremium(c echo.Context) error {
	req := &models.OptionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.option.Compute(c.Request().Context(), mid.UserID(c), *req)
	if err != nil {
		h.logger.Error("option pricing error", applogger.Error(err))
		return domainErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalysisHandler) Exposure(c echo.Context) error {
	req := &models.ExposureRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.exposure.Compute(c.Request().Context(), mid.UserID(c), models.ExposureInput{
		FuturePurchase: req.FuturePurchase,
		Inventory:      req.Inventory,
		LockedSales:    req.LockedSales,
	})
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalysisHandler) Scenarios(c echo.Context) error {
	req := &models.ScenarioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.scenario.Compare(c.Request().Context(), mid.UserID(c), req.Input(), req.CustomShock)
	if err != nil {
		h.logger.Error("scenario comparison error", applogger.Error(err))
		return domainErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, rows)
}

func (h *AnalysisHandler) Report(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	text, err := h.report.Build(c.Request().Context(), mid.UserID(c), *req)
	if err != nil {
		h.logger.Error("report build error", applogger.Error(err))
		return domainErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"report": text})
}

func (h *AnalysisHandler) HistoryList(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 50)
	records, err := h.history.List(c.Request().Context(), mid.UserID(c), limit)
	if err != nil {
		return domainErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

func (h *AnalysisHandler) HistoryDelete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("record id is required"))
	}

	deleted, err := h.history.Delete(c.Request().Context(), id, mid.UserID(c))
	if err != nil {
		return domainErrorResponse(c, err)
	}
	if !deleted {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(fmt.Sprintf("record %s not found", id)))
	}
	return xhttp.SuccessResponse(c, nil)
}
