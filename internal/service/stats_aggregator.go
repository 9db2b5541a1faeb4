package service

import (
	"context"
	"sort"
	"time"

	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
)

// Окна агрегации
const (
	hourWindow = time.Hour
	dayWindow  = 24 * time.Hour
)

// StatsAggregator сводит события кликов в сводки по алиасам владельца.
type StatsAggregator interface {
	DetailedStats(ctx context.Context, ownerID int64) ([]*models.AliasStats, error)
}

type statsAggregator struct {
	aliasRepo repository.AliasRepository
	clickRepo repository.ClickRepository
	baseURL   string
}

// NewStatsAggregator создаёт агрегатор статистики. baseURL используется для
// построения полной короткой ссылки в сводках.
func NewStatsAggregator(aliasRepo repository.AliasRepository, clickRepo repository.ClickRepository, baseURL string) StatsAggregator {
	return &statsAggregator{
		aliasRepo: aliasRepo,
		clickRepo: clickRepo,
		baseURL:   baseURL,
	}
}

// DetailedStats строит по одной сводке на каждый алиас владельца.
// Оконные счётчики пересчитываются из событий с границей clicked_at >= срез;
// total_clicks берётся из счётчика алиаса, а не пересчитывается — O(1) на
// алиас. Операция только читает; ноль событий даёт нулевые счётчики.
func (s *statsAggregator) DetailedStats(ctx context.Context, ownerID int64) ([]*models.AliasStats, error) {
	aliases, err := s.aliasRepo.ListByOwner(ctx, ownerID, false, 0, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hourAgo := now.Add(-hourWindow)
	dayAgo := now.Add(-dayWindow)

	stats := make([]*models.AliasStats, 0, len(aliases))
	for _, alias := range aliases {
		lastHour, err := s.clickRepo.CountSince(ctx, alias.ID, hourAgo)
		if err != nil {
			return nil, err
		}

		lastDay, err := s.clickRepo.CountSince(ctx, alias.ID, dayAgo)
		if err != nil {
			return nil, err
		}

		stats = append(stats, &models.AliasStats{
			ShortURL:       s.baseURL + "/" + alias.ShortCode,
			OriginalURL:    alias.OriginalURL,
			LastHourClicks: lastHour,
			LastDayClicks:  lastDay,
			TotalClicks:    alias.ClicksCount,
			CreatedAt:      alias.CreatedAt,
			ExpiresAt:      alias.ExpiresAt,
			IsActive:       alias.IsActive,
		})
	}

	// Сортировка по убыванию total_clicks; при равенстве сохраняется
	// порядок выборки из хранилища.
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalClicks > stats[j].TotalClicks
	})

	return stats, nil
}
