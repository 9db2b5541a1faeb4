package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck отвечает маркером живости сервиса
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "url-alias",
	})
}
