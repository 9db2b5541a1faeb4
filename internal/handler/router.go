package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kseleznev/url-alias/internal/middleware"
	"github.com/kseleznev/url-alias/internal/service"
	"go.uber.org/zap"
)

func NewRouter(
	authService service.AuthService,
	aliasService service.AliasService,
	statsAggregator service.StatsAggregator,
	logger *zap.Logger,
	baseURL string,
) *gin.Engine {
	router := gin.Default()

	// Middleware для логгирования
	router.Use(func(c *gin.Context) {
		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
		)
		c.Next()
	})

	accountHandler := NewAccountHandler(authService, logger)
	aliasHandler := NewAliasHandler(aliasService, logger, baseURL)
	statsHandler := NewStatsHandler(statsAggregator, logger)

	// Открытые эндпоинты
	router.GET("/health/", HealthCheck)
	router.POST("/register/", accountHandler.Register)

	// Эндпоинты владельца под Basic аутентификацией
	authorized := router.Group("/", middleware.BasicAuth(authService, logger))
	{
		authorized.POST("/urls/", aliasHandler.CreateURL)
		authorized.GET("/urls/", aliasHandler.ListURLs)
		authorized.POST("/urls/:id/deactivate", aliasHandler.DeactivateURL)
		authorized.GET("/stats/detailed/", statsHandler.DetailedStats)
	}

	// Переход по короткому коду — без аутентификации
	router.GET("/:code", aliasHandler.Redirect)

	return router
}
