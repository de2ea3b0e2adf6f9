package handler

import (
	"net/http"
	"strconv"
	"time"

	"sales-report-service/internal/report"

	"github.com/labstack/echo/v4"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
	defaultTopLimit  = 10
	maxTopLimit      = 100
)

// queryInt parses an integer query parameter, falling back to a default on
// absent or unparseable values.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// queryLimit parses and clamps the limit query parameter.
func queryLimit(c echo.Context, def, max int) int {
	n := queryInt(c, "limit", def)
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// monthParam parses the optional purchase_month query parameter. A missing
// parameter means no month filter; a malformed one is a validation error.
func monthParam(c echo.Context) (*time.Time, error) {
	s := c.QueryParam("purchase_month")
	if s == "" {
		return nil, nil
	}
	m, err := report.ParseMonth(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// badMonth writes the 400 response for a malformed month token.
func badMonth(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
