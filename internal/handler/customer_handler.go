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

// ListCustomers handles retrieving customers with optional filtering by
// salesman or customer code
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	filter := analytics.CustomerFilter{
		Salesman:     c.QueryParam("salesman"),
		CustomerCode: c.QueryParam("customer_code"),
		Offset:       queryInt(c, "offset", 0),
		Limit:        queryLimit(c, defaultListLimit, maxListLimit),
	}

	customers, err := analytics.ListCustomers(database.GetDB(), filter)
	if err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve customers",
		})
	}

	log.Info("Customers retrieved", zap.Int("count", len(customers)))
	return c.JSON(http.StatusOK, customers)
}

// GetCustomerBrands handles retrieving all sale lines of one customer,
// optionally scoped to a month
func GetCustomerBrands(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid customer id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	month, err := monthParam(c)
	if err != nil {
		return badMonth(c, err)
	}

	sales, err := analytics.CustomerBrandSales(database.GetDB(), uint(id), month)
	if err != nil {
		log.Error("Failed to retrieve customer brand sales",
			zap.Uint64("customer_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve customer brand sales",
		})
	}

	return c.JSON(http.StatusOK, sales)
}
