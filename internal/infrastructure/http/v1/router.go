package v1

import (
	"github.com/gin-gonic/gin"

	"stockflow/internal/infrastructure/http/v1/handlers"
	"stockflow/internal/infrastructure/http/v1/middleware"
	"stockflow/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Reports serves movement and as-of reports
	Reports handlers.ReportService

	// Products and Warehouses serve picker data
	Products   handlers.ProductSearcher
	Warehouses handlers.WarehouseLister

	// DB is pinged by the readiness probe
	DB handlers.Pinger

	// Logger for request logging
	Logger *logger.Logger

	// Version is reported by the liveness probe
	Version string

	// Debug switches gin to debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	baseHandler := handlers.NewBaseHandler()

	v1 := router.Group("/api/v1")
	{
		RegisterReportRoutes(v1.Group("/report"), handlers.NewReportsHandler(baseHandler, cfg.Reports))
		RegisterCatalogRoutes(v1.Group("/catalog"), handlers.NewCatalogHandler(baseHandler, cfg.Products, cfg.Warehouses))
	}

	return router
}
