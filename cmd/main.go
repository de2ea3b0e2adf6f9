package main

import (
	"net/http"

	"sales-report-service/internal/handler"
	mid "sales-report-service/internal/middleware"
	"sales-report-service/internal/model"
	"sales-report-service/pkg/config"
	"sales-report-service/pkg/database"
	"sales-report-service/pkg/jwtutil"
	"sales-report-service/pkg/logger"
	"sales-report-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; ignore absence, production environments set real env vars
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting sales-report-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Apply upload settings to handlers
	handler.Init(appConfig)

	// Initialize database and run schema migration
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Report whether any data has been uploaded yet
	var customerCount int64
	if err := database.GetDB().Model(&model.Customer{}).Count(&customerCount).Error; err == nil {
		if customerCount == 0 {
			log.Info("Database empty, waiting for a monthly report upload before queries return data")
		} else {
			log.Info("Database has existing data, ready for queries",
				zap.Int64("customers", customerCount))
		}
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(appConfig.Upload.MaxBodySize))
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes - JWT-guarded
	api := e.Group("/api", mid.AuthMiddleware)
	api.POST("/reports/upload", handler.UploadMonthData)
	api.GET("/customers", handler.ListCustomers)
	api.GET("/customers/:id/brands", handler.GetCustomerBrands)
	api.GET("/brands", handler.ListBrands)
	api.GET("/summary/total-sales", handler.TotalSalesSummary)
	api.GET("/top-customers", handler.TopCustomers)
	api.GET("/top-brands", handler.TopBrands)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
