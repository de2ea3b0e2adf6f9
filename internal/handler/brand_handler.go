package handler

import (
	"net/http"
	"strconv"

	"sales-report-service/internal/analytics"
	"sales-report-service/pkg/database"
	"sales-report-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListBrands handles the brand listing. Aggregate mode (the default) returns
// per-brand summed amounts ranked by total; raw mode returns individual sale
// lines in storage order.
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)

	aggregate := true
	if v := c.QueryParam("aggregate"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			log.Warn("Invalid aggregate parameter", zap.String("value", v))
		} else {
			aggregate = parsed
		}
	}

	month, err := monthParam(c)
	if err != nil {
		return badMonth(c, err)
	}
	offset := queryInt(c, "offset", 0)
	limit := queryLimit(c, defaultListLimit, maxListLimit)

	if aggregate {
		totals, err := analytics.ListBrandTotals(database.GetDB(), month, offset, limit)
		if err != nil {
			log.Error("Failed to aggregate brand sales", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to retrieve brands",
			})
		}
		log.Info("Brand totals retrieved", zap.Int("count", len(totals)))
		return c.JSON(http.StatusOK, totals)
	}

	sales, err := analytics.ListBrandSales(database.GetDB(), month, offset, limit)
	if err != nil {
		log.Error("Failed to list brand sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve brands",
		})
	}
	log.Info("Brand sales retrieved", zap.Int("count", len(sales)))
	return c.JSON(http.StatusOK, sales)
}
