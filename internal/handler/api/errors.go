package api

import (
	"errors"

	"LithiumHedge/internal/domain/models"
	xhttp "LithiumHedge/pkg/http"

	"github.com/labstack/echo/v4"
)

// domainErrorResponse translates usecase sentinel errors to the wire shape.
func domainErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.AppErrorResponse(c, xhttp.DataUnavailableError(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	case errors.Is(err, models.ErrUserExists):
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("username or email already registered"))
	case errors.Is(err, models.ErrBadCredentials):
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("invalid credentials"))
	case errors.Is(err, models.ErrCodeInvalid):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("reset code is invalid or expired"))
	case errors.Is(err, models.ErrUnauthorized):
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("authentication required"))
	case errors.Is(err, models.ErrPersistence):
		return xhttp.AppErrorResponse(c, xhttp.PersistenceError("storage failure"))
	default:
		return xhttp.AppErrorResponse(c, xhttp.InternalError("internal error"))
	}
}
