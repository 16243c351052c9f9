package api

import (
	"net/http"

	mid "LithiumHedge/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Router composes the feature handlers behind one route registrar and
// installs the session middleware in front of the API group.
type Router struct {
	resolver mid.SessionResolver
	auth     *AuthHandler
	analysis *AnalysisHandler
	market   *MarketHandler
}

func NewRouter(resolver mid.SessionResolver, auth *AuthHandler, analysis *AnalysisHandler, market *MarketHandler) *Router {
	return &Router{resolver: resolver, auth: auth, analysis: analysis, market: market}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.Use(mid.Session(r.resolver))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	r.auth.RegisterRoutes(e)
	r.analysis.RegisterRoutes(e)
	r.market.RegisterRoutes(e)
}
