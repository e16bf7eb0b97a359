package main

import (
	"fmt"
	"net/http"
	"os"

	"folio/internal/config"
	apperrors "folio/internal/errors"
	"folio/internal/handlers"
	"folio/internal/logger"
	"folio/internal/middleware"
	"folio/internal/oracle"
	"folio/internal/portfolio"
	"folio/internal/render"
	"folio/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "folio/internal/docs" // Import swagger docs
)

// @title           Folio API
// @version         1.0
// @description     Folio prices a portfolio of holdings, scores each position with a fixed rule set and reports trim and buy candidates.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	source, closeSource, err := portfolio.OpenSource(appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			log.Warnf("failed to close holdings source: %v", err)
		}
	}()

	oracles, err := oracle.New(appConfig, nil)
	if err != nil {
		return err
	}

	service := portfolio.NewService(source, oracles.Prices, oracles.Fundamentals, appConfig.FetchConcurrency)
	portfolioHandler := handlers.NewPortfolioHandler(service)

	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.SetHTMLTemplate(render.Templates())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// HTML views
	router.GET("/", portfolioHandler.Index)
	router.GET("/insights", portfolioHandler.InsightsPage)

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.GET("/portfolio", portfolioHandler.GetPortfolio)
	v1.GET("/holdings", portfolioHandler.ListHoldings)
	v1.GET("/insights", portfolioHandler.GetInsights)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	log.Infow("Starting Folio server",
		"port", appConfig.Port,
		"holdings_source", appConfig.HoldingsSource,
		"fetch_concurrency", appConfig.FetchConcurrency,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
