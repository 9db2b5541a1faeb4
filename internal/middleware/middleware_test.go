package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kseleznev/url-alias/internal/middleware"
	"github.com/kseleznev/url-alias/internal/service"
	"github.com/kseleznev/url-alias/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(mocks.NewMockAccountRepository())

	router := gin.New()
	router.Use(middleware.BasicAuth(auth, zap.NewNop()))
	router.GET("/protected", func(c *gin.Context) {
		account, ok := middleware.AccountFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": account.Username})
	})

	return router, auth
}

// TestBasicAuth_ValidCredentials проверяет пропуск с верной парой логин/пароль
func TestBasicAuth_ValidCredentials(t *testing.T) {
	router, auth := setupAuthRouter(t)

	_, err := auth.Register(t.Context(), "admin", "password")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.SetBasicAuth("admin", "password")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

// TestBasicAuth_MissingHeader проверяет запрос без заголовка Authorization
func TestBasicAuth_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

// TestBasicAuth_WrongPassword проверяет отказ при неверном пароле
func TestBasicAuth_WrongPassword(t *testing.T) {
	router, auth := setupAuthRouter(t)

	_, err := auth.Register(t.Context(), "admin", "password")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.SetBasicAuth("admin", "wrong")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestBasicAuth_UnknownUser проверяет, что неизвестный логин отвечает так же,
// как неверный пароль
func TestBasicAuth_UnknownUser(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.SetBasicAuth("ghost", "password")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
