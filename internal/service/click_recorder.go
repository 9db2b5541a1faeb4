package service

import (
	"context"
	"time"

	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
)

// ClickRecorder фиксирует успешный переход: инкремент счётчика алиаса и
// неизменяемое событие клика, оба эффекта атомарно.
type ClickRecorder interface {
	Record(ctx context.Context, aliasID int64, visit *models.Visit) error
}

type clickRecorder struct {
	clickRepo repository.ClickRepository
}

func NewClickRecorder(clickRepo repository.ClickRepository) ClickRecorder {
	return &clickRecorder{clickRepo: clickRepo}
}

func (r *clickRecorder) Record(ctx context.Context, aliasID int64, visit *models.Visit) error {
	click := &models.Click{
		AliasID:   aliasID,
		ClickedAt: time.Now().UTC(),
	}
	if visit != nil {
		click.IPAddress = visit.IPAddress
		click.UserAgent = visit.UserAgent
	}

	return r.clickRepo.RecordRedirect(ctx, click)
}
