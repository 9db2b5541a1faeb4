package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kseleznev/url-alias/internal/middleware"
	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
	"github.com/kseleznev/url-alias/internal/service"
	"go.uber.org/zap"
)

type AliasHandler struct {
	service service.AliasService
	logger  *zap.Logger
	baseURL string
}

func NewAliasHandler(service service.AliasService, logger *zap.Logger, baseURL string) *AliasHandler {
	return &AliasHandler{
		service: service,
		logger:  logger,
		baseURL: baseURL,
	}
}

type CreateAliasResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateURL выпускает новый алиас для владельца из контекста запроса
func (h *AliasHandler) CreateURL(c *gin.Context) {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid credentials",
		})
		return
	}

	var req models.CreateAliasInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	alias, err := h.service.Create(c.Request.Context(), account.ID, &req)
	if err != nil {
		h.logger.Error("Failed to create alias", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create URL alias",
		})
		return
	}

	c.JSON(http.StatusCreated, CreateAliasResponse{
		ID:          alias.ID,
		ShortCode:   alias.ShortCode,
		ShortURL:    h.baseURL + "/" + alias.ShortCode,
		OriginalURL: alias.OriginalURL,
		ExpiresAt:   alias.ExpiresAt,
		CreatedAt:   alias.CreatedAt,
	})
}

// ListURLs возвращает алиасы владельца с пагинацией.
// active_only (по умолчанию true) фильтрует только по флагу активности.
func (h *AliasHandler) ListURLs(c *gin.Context) {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid credentials",
		})
		return
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active_only", "true"))
	if err != nil {
		activeOnly = true
	}

	aliases, err := h.service.List(c.Request.Context(), account.ID, activeOnly, skip, limit)
	if err != nil {
		h.logger.Error("Failed to list aliases", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list URL aliases",
		})
		return
	}

	if aliases == nil {
		aliases = []*models.Alias{}
	}
	c.JSON(http.StatusOK, aliases)
}

// DeactivateURL переводит алиас владельца в неактивное состояние
func (h *AliasHandler) DeactivateURL(c *gin.Context) {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid credentials",
		})
		return
	}

	aliasID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Alias id must be an integer",
		})
		return
	}

	alias, err := h.service.Deactivate(c.Request.Context(), account.ID, aliasID)
	if err != nil {
		if errors.Is(err, repository.ErrAliasNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "URL not found",
			})
			return
		}
		h.logger.Error("Failed to deactivate alias", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to deactivate URL alias",
		})
		return
	}

	c.JSON(http.StatusOK, alias)
}

// Redirect разрешает переход по короткому коду. Отсутствующий, неактивный и
// истёкший алиасы отвечают одинаковым 404: причина смерти алиаса наружу
// не раскрывается.
func (h *AliasHandler) Redirect(c *gin.Context) {
	code := c.Param("code")
	if code == "favicon.ico" {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Not found",
		})
		return
	}

	visit := &models.Visit{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	alias, err := h.service.ResolveRedirect(c.Request.Context(), code, visit)
	if err != nil {
		if errors.Is(err, repository.ErrAliasNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "URL not found or expired",
			})
			return
		}
		h.logger.Error("Failed to resolve redirect", zap.String("code", code), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to resolve redirect",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect_url": alias.OriginalURL})
}
