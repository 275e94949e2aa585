package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_pos/internal/catalog"
	"api_pos/internal/sales"
)

// Services groups the services exposed over HTTP.
type Services struct {
	Sales   *sales.Service
	Catalog *catalog.Service
}

// InitRoutes registers every endpoint on the given Gin engine.
func InitRoutes(e *gin.Engine, svc Services, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.Use(requestLogger(logger))

	salesHandler := NewSalesHandler(svc.Sales, logger)
	catalogHandler := NewCatalogHandler(svc.Catalog, logger)

	e.POST("/sales", salesHandler.handleCreateSale)
	e.POST("/sales/validate", salesHandler.handleValidateSale)
	e.GET("/sales", salesHandler.handleSearchSales)
	e.GET("/sales/:id", salesHandler.handleGetSale)
	e.GET("/dashboard", salesHandler.handleDashboard)

	products := e.Group("/products")
	products.GET("", catalogHandler.listProducts)
	products.POST("", catalogHandler.createProduct)
	products.GET("/:id", catalogHandler.getProduct)
	products.PUT("/:id", catalogHandler.updateProduct)
	products.PATCH("/:id/stock", catalogHandler.adjustStock)
	products.DELETE("/:id", catalogHandler.deleteProduct)

	customers := e.Group("/customers")
	customers.GET("", catalogHandler.listCustomers)
	customers.POST("", catalogHandler.createCustomer)
	customers.GET("/:id", catalogHandler.getCustomer)
	customers.PUT("/:id", catalogHandler.updateCustomer)
	customers.DELETE("/:id", catalogHandler.deleteCustomer)

	promotions := e.Group("/promotions")
	promotions.GET("", catalogHandler.listPromotions)
	promotions.POST("", catalogHandler.createPromotion)
	promotions.GET("/applicable", catalogHandler.applicablePromotions)
	promotions.GET("/:id", catalogHandler.getPromotion)
	promotions.PUT("/:id", catalogHandler.updatePromotion)
	promotions.DELETE("/:id", catalogHandler.deletePromotion)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
