package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kseleznev/url-alias/internal/middleware"
	"github.com/kseleznev/url-alias/internal/service"
	"go.uber.org/zap"
)

type StatsHandler struct {
	aggregator service.StatsAggregator
	logger     *zap.Logger
}

func NewStatsHandler(aggregator service.StatsAggregator, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// DetailedStats возвращает сводки по алиасам владельца,
// отсортированные по убыванию total_clicks
func (h *StatsHandler) DetailedStats(c *gin.Context) {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid credentials",
		})
		return
	}

	stats, err := h.aggregator.DetailedStats(c.Request.Context(), account.ID)
	if err != nil {
		h.logger.Error("Failed to build detailed stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to build stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
