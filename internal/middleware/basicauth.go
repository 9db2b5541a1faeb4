package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/service"
	"go.uber.org/zap"
)

// Ключ контекста gin, под которым хранится аутентифицированная учётная запись
const accountContextKey = "account"

// BasicAuth возвращает Gin middleware для HTTP Basic аутентификации.
// Пара логин/пароль сверяется с хранимой учётной записью; любое несовпадение
// даёт одинаковый ответ 401 без уточнения причины.
func BasicAuth(auth service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}

		account, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				unauthorized(c)
				return
			}
			logger.Error("Authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to authenticate",
			})
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="url-alias"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "invalid_credentials",
		"message": "Invalid credentials",
	})
}

// AccountFromContext извлекает учётную запись, сохранённую BasicAuth.
func AccountFromContext(c *gin.Context) (*models.Account, bool) {
	value, exists := c.Get(accountContextKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*models.Account)
	return account, ok
}
