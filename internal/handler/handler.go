package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "volunflow/internal/errors"
	"volunflow/internal/validation"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// pageParams reads the page/limit query params, falling back to defaults on
// absent or unusable values.
func pageParams(c echo.Context) (int64, int64) {
	page := int64(defaultPage)
	limit := int64(defaultLimit)
	if v, err := strconv.ParseInt(c.QueryParam("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// httpError maps a domain or validation error onto the wire contract:
// validation failures become `{"error": [fields]}`, domain errors become
// `{"message": ...}` at their mapped status, and anything unrecognized is a
// 500 with no internal detail.
func httpError(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": verr.Fields})
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	status := apperrors.StatusOf(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, "Internal server error")
	}
	return echo.NewHTTPError(status, err.Error())
}
