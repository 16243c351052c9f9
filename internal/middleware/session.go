package middleware

import (
	"context"
	"strings"

	"LithiumHedge/internal/domain/models"
	xhttp "LithiumHedge/pkg/http"

	"github.com/labstack/echo/v4"
)

const sessionContextKey = "session"

// SessionResolver maps a bearer token to its session. *usecase.Auth
// satisfies it.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// Session attaches the caller's session to the Echo context when a valid
// bearer token is present. Requests without a token pass through anonymous;
// handlers that need an identity use RequireSession.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}
			sess, err := resolver.Resolve(c.Request().Context(), token)
			if err == nil {
				c.Set(sessionContextKey, sess)
			}
			return next(c)
		}
	}
}

// RequireSession rejects requests that did not resolve to a session.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if SessionFrom(c) == nil {
			return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("authentication required"))
		}
		return next(c)
	}
}

// SessionFrom returns the resolved session, or nil for anonymous callers.
func SessionFrom(c echo.Context) *models.Session {
	sess, _ := c.Get(sessionContextKey).(*models.Session)
	return sess
}

// UserID returns the caller's user id, or "" for anonymous callers.
func UserID(c echo.Context) string {
	if sess := SessionFrom(c); sess != nil {
		return sess.UserID
	}
	return ""
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
