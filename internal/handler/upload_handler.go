package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"sales-report-service/internal/ingest"
	"sales-report-service/internal/report"
	"sales-report-service/pkg/config"
	"sales-report-service/pkg/database"
	"sales-report-service/pkg/logger"
	"sales-report-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// headerRow is the zero-based index of the column-label row in uploaded
// workbooks. Overridden from config during bootstrap.
var headerRow = 4

// Init applies upload configuration to the handler package
func Init(cfg *config.Config) {
	headerRow = cfg.Upload.HeaderRow
}

// UploadMonthData handles a monthly report upload: a purchase_month form
// value and a spreadsheet file part. The month's data is replaced for every
// customer present in the file.
func UploadMonthData(c echo.Context) error {
	log := logger.FromContext(c)
	start := time.Now()

	monthStr := c.FormValue("purchase_month")
	month, err := report.ParseMonth(monthStr)
	if err != nil {
		log.Warn("Invalid purchase_month form value", zap.String("purchase_month", monthStr))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Upload request without report file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing report file"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable report file"})
	}
	defer src.Close()

	log.Info("Ingesting monthly report",
		zap.String("purchase_month", monthStr),
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size_bytes", fileHeader.Size))

	var ds *report.Dataset
	if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		ds, err = report.ParseCSV(src, headerRow)
	} else {
		ds, err = report.ParseXLSX(src, headerRow)
	}
	if err != nil {
		var verr *report.ValidationError
		if errors.As(err, &verr) {
			log.Warn("Rejected malformed report", zap.String("filename", fileHeader.Filename), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		}
		log.Error("Failed to parse report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse report"})
	}

	res, err := ingest.New(database.GetDB()).Ingest(month, ds)
	if err != nil {
		var verr *report.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		}
		// Detail is already logged by the engine; the caller gets an opaque failure.
		prometheus.RecordUpload("error", res.CreatedCustomers, res.CreatedSales, res.SkippedRows, start)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed, see logs"})
	}

	prometheus.RecordUpload("ok", res.CreatedCustomers, res.CreatedSales, res.SkippedRows, start)
	log.Info("Upload successful",
		zap.String("purchase_month", monthStr),
		zap.Int("inserted_customers", res.CreatedCustomers),
		zap.Int("inserted_brand_sales", res.CreatedSales))
	return c.JSON(http.StatusOK, echo.Map{
		"message":              fmt.Sprintf("Upload successful for month %s", monthStr),
		"inserted_customers":   res.CreatedCustomers,
		"inserted_brand_sales": res.CreatedSales,
	})
}
