package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopping-backend/internal/shared/middleware"
	"shopping-backend/internal/shared/problem"
	"shopping-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Unknown paths get a problem-detail body instead of gin's plain 404.
	router.NoRoute(problem.RouteNotFound)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupProductRoutes(v1, c)
		setupOfficerRoutes(v1, c)
		setupAstroRoutes(v1, c)
		setupJokeRoutes(v1, c)
	}

	return router
}

func setupProductRoutes(rg *gin.RouterGroup, c *container.Container) {
	products := rg.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.GET("/search", c.ProductHandler.SearchProducts)
		products.GET("/price-range", c.ProductHandler.PriceRange)
		products.GET("/low-stock", c.ProductHandler.LowStock)
		products.GET("/expensive", c.ProductHandler.Expensive)
		products.GET("/:id", c.ProductHandler.GetProduct)
		products.POST("", c.ProductHandler.CreateProduct)
		products.PUT("/:id", c.ProductHandler.UpdateProduct)
		products.DELETE("/:id", c.ProductHandler.DeleteProduct)

		// Stock operations
		products.PUT("/:id/stock", c.ProductHandler.SetStock)
		products.POST("/:id/add-stock", c.ProductHandler.AddStock)
		products.POST("/:id/reserve-stock", c.ProductHandler.ReserveStock)
	}
}

func setupOfficerRoutes(rg *gin.RouterGroup, c *container.Container) {
	officers := rg.Group("/officers")
	{
		officers.GET("", c.OfficerHandler.ListOfficers)
		officers.GET("/:id", c.OfficerHandler.GetOfficer)
		officers.POST("", c.OfficerHandler.CreateOfficer)
		officers.DELETE("/:id", c.OfficerHandler.DeleteOfficer)
	}
}

func setupAstroRoutes(rg *gin.RouterGroup, c *container.Container) {
	rg.GET("/astro", c.AstroHandler.GetAstronauts)
}

func setupJokeRoutes(rg *gin.RouterGroup, c *container.Container) {
	rg.GET("/joke", c.JokeHandler.GetJoke)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Healthy(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   c.Config.App.Name,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
