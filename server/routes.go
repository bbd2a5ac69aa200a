package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"spravochnik/server/handlers"
	"spravochnik/server/middleware"
)

// Router собирает gin-роутер со всеми маршрутами API
func (s *Server) Router() http.Handler {
	// Можно переопределить через переменную окружения GIN_MODE
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinLoggerMiddleware(s.logger))
	router.Use(middleware.GinRecoveryMiddleware(s.logger))

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)
	router.GET("/health", s.handler.HandleHealth)

	limiter := middleware.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)

	api := router.Group("/api")
	{
		api.GET("/health", s.handler.HandleHealth)
		api.GET("/formats", s.handler.HandleFormats)
		api.GET("/conversions", s.handler.HandleConversions)
		api.GET("/conversions/:id", s.handler.HandleConversion)

		uploads := api.Group("", limiter.Middleware())
		uploads.POST("/convert", s.handler.HandleConvert)
		uploads.POST("/validate", s.handler.HandleValidate)
	}

	return router
}
