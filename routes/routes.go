package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/controllers"
	_ "github.com/FelipeAraujoBS/weather-monitoring-system/docs"
	"github.com/FelipeAraujoBS/weather-monitoring-system/middleware"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services/container"
)

// SetupRouter builds the Gin engine, the service container and all routes.
func SetupRouter(db *gorm.DB, cfg *config.Config, serviceContainer *container.ServiceContainer) *gin.Engine {
	r := gin.Default()

	// CORS for the SPA frontend.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitAuthMiddleware(cfg)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	// Health check
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api.POST("/users", controllers.HandleUserFunc(container, "register"))
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	auth := api.Group("/")
	auth.Use(middleware.Authenticate())

	weather := auth.Group("/weather")
	weather.POST("", controllers.HandleWeatherFunc(container, "create"))
	weather.GET("/latest", controllers.HandleWeatherFunc(container, "getLatest"))
	weather.GET("/history", controllers.HandleWeatherFunc(container, "getHistory"))
	weather.GET("/stats", controllers.HandleWeatherFunc(container, "getStats"))
	weather.GET("/export", controllers.HandleWeatherFunc(container, "exportData"))
	// Each insight request costs an AI provider call; keep it rate-limited.
	weather.POST("/:id/insight", middleware.RateLimit(1, 5),
		controllers.HandleWeatherFunc(container, "generateInsight"))
}
