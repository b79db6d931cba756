// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// ReportRouteHandler defines the interface for report handlers.
type ReportRouteHandler interface {
	Report(c *gin.Context)
	AsOf(c *gin.Context)
	ExportReport(c *gin.Context)
	ExportAsOf(c *gin.Context)
}

// CatalogRouteHandler defines the interface for picker catalog handlers.
type CatalogRouteHandler interface {
	Products(c *gin.Context)
	Warehouses(c *gin.Context)
}

// RegisterReportRoutes registers the movement and as-of report routes
// together with their export variants.
//
// Usage:
//
//	handler := handlers.NewReportsHandler(baseHandler, reportService)
//	RegisterReportRoutes(v1.Group("/report"), handler)
func RegisterReportRoutes(group *gin.RouterGroup, handler ReportRouteHandler) {
	group.POST("", handler.Report)
	group.POST("/export", handler.ExportReport)
	group.POST("/as-of", handler.AsOf)
	group.POST("/as-of/export", handler.ExportAsOf)
}

// RegisterCatalogRoutes registers read-only picker routes.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("/products", handler.Products)
	group.GET("/warehouses", handler.Warehouses)
}
