package handler

import (
	"net/http"

	"sales-report-service/internal/analytics"
	"sales-report-service/pkg/database"
	"sales-report-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TotalSalesSummary handles the total sales rollup, optionally restricted to
// customers active in one month
func TotalSalesSummary(c echo.Context) error {
	log := logger.FromContext(c)

	month, err := monthParam(c)
	if err != nil {
		return badMonth(c, err)
	}

	total, err := analytics.TotalSales(database.GetDB(), month)
	if err != nil {
		log.Error("Failed to compute total sales summary", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute total sales",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total})
}

// TopCustomers handles the top-N customers ranking by total bought
func TopCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	month, err := monthParam(c)
	if err != nil {
		return badMonth(c, err)
	}
	limit := queryLimit(c, defaultTopLimit, maxTopLimit)

	customers, err := analytics.TopCustomers(database.GetDB(), limit, month)
	if err != nil {
		log.Error("Failed to rank customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve top customers",
		})
	}

	log.Info("Top customers retrieved", zap.Int("count", len(customers)), zap.Int("limit", limit))
	return c.JSON(http.StatusOK, customers)
}

// TopBrands handles the top-N brands ranking by summed sale amount
func TopBrands(c echo.Context) error {
	log := logger.FromContext(c)

	month, err := monthParam(c)
	if err != nil {
		return badMonth(c, err)
	}
	limit := queryLimit(c, defaultTopLimit, maxTopLimit)

	totals, err := analytics.TopBrands(database.GetDB(), limit, month)
	if err != nil {
		log.Error("Failed to rank brands", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve top brands",
		})
	}

	log.Info("Top brands retrieved", zap.Int("count", len(totals)), zap.Int("limit", limit))
	return c.JSON(http.StatusOK, totals)
}
