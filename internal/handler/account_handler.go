package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
	"github.com/kseleznev/url-alias/internal/service"
	"go.uber.org/zap"
)

type AccountHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAccountHandler(auth service.AuthService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		auth:   auth,
		logger: logger,
	}
}

// Register создаёт новую учётную запись
func (h *AccountHandler) Register(c *gin.Context) {
	var req models.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	account, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "username_taken",
				Message: "Username already registered",
			})
			return
		}
		h.logger.Error("Failed to register account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to register account",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "User created successfully",
		"username":   account.Username,
		"created_at": account.CreatedAt,
	})
}
