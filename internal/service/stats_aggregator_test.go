package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/service"
	"github.com/kseleznev/url-alias/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

func setupAggregator() (service.StatsAggregator, *mocks.MockAliasRepository, *mocks.MockClickRepository) {
	aliasRepo := mocks.NewMockAliasRepository()
	clickRepo := mocks.NewMockClickRepository(aliasRepo)
	agg := service.NewStatsAggregator(aliasRepo, clickRepo, testBaseURL)
	return agg, aliasRepo, clickRepo
}

func seedAlias(t *testing.T, repo *mocks.MockAliasRepository, code string, totalClicks int64) *models.Alias {
	t.Helper()
	alias := &models.Alias{
		OwnerID:     testOwnerID,
		ShortCode:   code,
		OriginalURL: "https://example.com/" + code,
		IsActive:    true,
		ClicksCount: totalClicks,
		CreatedAt:   time.Now().UTC().AddDate(0, 0, -1),
		ExpiresAt:   time.Now().UTC().AddDate(0, 0, 29),
	}
	require.NoError(t, repo.Create(context.Background(), alias))
	return alias
}

// TestStatsAggregator_Windows проверяет оконные счётчики: события в t-2h,
// t-30m и t-5m дают last_hour=2, last_day=3 при total=3
func TestStatsAggregator_Windows(t *testing.T) {
	agg, aliasRepo, clickRepo := setupAggregator()

	alias := seedAlias(t, aliasRepo, "windowed", 3)

	now := time.Now().UTC()
	clickRepo.Seed(alias.ID, now.Add(-2*time.Hour))
	clickRepo.Seed(alias.ID, now.Add(-30*time.Minute))
	clickRepo.Seed(alias.ID, now.Add(-5*time.Minute))

	stats, err := agg.DetailedStats(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, int64(2), stats[0].LastHourClicks)
	assert.Equal(t, int64(3), stats[0].LastDayClicks)
	assert.Equal(t, int64(3), stats[0].TotalClicks)
	assert.Equal(t, testBaseURL+"/windowed", stats[0].ShortURL)
	assert.Equal(t, "https://example.com/windowed", stats[0].OriginalURL)
}

// TestStatsAggregator_SortedByTotal проверяет сортировку по убыванию total_clicks
func TestStatsAggregator_SortedByTotal(t *testing.T) {
	agg, aliasRepo, _ := setupAggregator()

	seedAlias(t, aliasRepo, "cold", 1)
	seedAlias(t, aliasRepo, "hot", 5)
	seedAlias(t, aliasRepo, "warm", 3)

	stats, err := agg.DetailedStats(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, int64(5), stats[0].TotalClicks)
	assert.Equal(t, int64(3), stats[1].TotalClicks)
	assert.Equal(t, int64(1), stats[2].TotalClicks)
}

// TestStatsAggregator_StableTies проверяет, что при равных total_clicks
// сохраняется порядок вставки
func TestStatsAggregator_StableTies(t *testing.T) {
	agg, aliasRepo, _ := setupAggregator()

	seedAlias(t, aliasRepo, "firsttie", 2)
	seedAlias(t, aliasRepo, "secondti", 2)

	stats, err := agg.DetailedStats(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, testBaseURL+"/firsttie", stats[0].ShortURL)
	assert.Equal(t, testBaseURL+"/secondti", stats[1].ShortURL)
}

// TestStatsAggregator_NoClicks проверяет, что отсутствие событий даёт нули,
// а не ошибку
func TestStatsAggregator_NoClicks(t *testing.T) {
	agg, aliasRepo, _ := setupAggregator()

	seedAlias(t, aliasRepo, "untouched", 0)

	stats, err := agg.DetailedStats(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Zero(t, stats[0].LastHourClicks)
	assert.Zero(t, stats[0].LastDayClicks)
	assert.Zero(t, stats[0].TotalClicks)
}

// TestStatsAggregator_EmptyOwner проверяет владельца без алиасов
func TestStatsAggregator_EmptyOwner(t *testing.T) {
	agg, _, _ := setupAggregator()

	stats, err := agg.DetailedStats(context.Background(), testOwnerID)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

// TestStatsAggregator_IncludesInactive проверяет, что сводки строятся и по
// деактивированным алиасам владельца
func TestStatsAggregator_IncludesInactive(t *testing.T) {
	agg, aliasRepo, _ := setupAggregator()

	alias := seedAlias(t, aliasRepo, "switched", 4)
	_, err := aliasRepo.Deactivate(context.Background(), alias.ID, testOwnerID)
	require.NoError(t, err)

	stats, err := agg.DetailedStats(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.False(t, stats[0].IsActive)
	assert.Equal(t, int64(4), stats[0].TotalClicks)
}
