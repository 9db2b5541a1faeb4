package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kseleznev/url-alias/internal/models"
	"github.com/kseleznev/url-alias/internal/repository"
)

// Ошибки сервиса алиасов
var (
	ErrGenerateExhausted = errors.New("не удалось подобрать уникальный код")
)

const defaultValidityDays = 30

// CodeGenerator выдаёт кандидатов коротких кодов.
type CodeGenerator interface {
	Generate() (string, error)
}

// AliasConfig параметризует жизненный цикл алиасов.
type AliasConfig struct {
	// ValidityDays — срок действия по умолчанию, если клиент не задал свой.
	ValidityDays int
	// MaxGenerateAttempts ограничивает число попыток при коллизиях кода.
	// 0 — без ограничения, поведение исходной схемы генерации.
	MaxGenerateAttempts int
}

// AliasService владеет жизненным циклом алиаса: создание, деактивация,
// листинг и разрешение перехода.
type AliasService interface {
	Create(ctx context.Context, ownerID int64, input *models.CreateAliasInput) (*models.Alias, error)
	Deactivate(ctx context.Context, ownerID, aliasID int64) (*models.Alias, error)
	List(ctx context.Context, ownerID int64, activeOnly bool, skip, limit int) ([]*models.Alias, error)
	ResolveRedirect(ctx context.Context, code string, visit *models.Visit) (*models.Alias, error)
}

type aliasService struct {
	aliasRepo repository.AliasRepository
	recorder  ClickRecorder
	gen       CodeGenerator
	cfg       AliasConfig
}

// NewAliasService создаёт сервис алиасов.
func NewAliasService(aliasRepo repository.AliasRepository, recorder ClickRecorder, gen CodeGenerator, cfg AliasConfig) AliasService {
	if cfg.ValidityDays <= 0 {
		cfg.ValidityDays = defaultValidityDays
	}
	return &aliasService{
		aliasRepo: aliasRepo,
		recorder:  recorder,
		gen:       gen,
		cfg:       cfg,
	}
}

// Create выпускает новый алиас с уникальным кодом.
// Кандидат генерируется случайно, вставка опирается на ограничение
// уникальности short_code в хранилище: нарушение ограничения означает
// коллизию и приводит к повтору с новым кандидатом, наружу не выходит.
func (s *aliasService) Create(ctx context.Context, ownerID int64, input *models.CreateAliasInput) (*models.Alias, error) {
	days := s.cfg.ValidityDays
	if input.ExpirationDays != nil && *input.ExpirationDays > 0 {
		days = *input.ExpirationDays
	}

	now := time.Now().UTC()
	alias := &models.Alias{
		OwnerID:     ownerID,
		OriginalURL: input.OriginalURL,
		IsActive:    true,
		ClicksCount: 0,
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 0, days),
	}

	for attempt := 1; ; attempt++ {
		code, err := s.gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate code: %w", err)
		}
		alias.ShortCode = code

		err = s.aliasRepo.Create(ctx, alias)
		if err == nil {
			return alias, nil
		}
		if !errors.Is(err, repository.ErrCodeExists) {
			return nil, err
		}
		if s.cfg.MaxGenerateAttempts > 0 && attempt >= s.cfg.MaxGenerateAttempts {
			return nil, fmt.Errorf("%w: %d попыток", ErrGenerateExhausted, attempt)
		}
	}
}

// Deactivate переводит алиас владельца в терминальное состояние.
// Чужой или отсутствующий алиас — ErrAliasNotFound, без уточнения причины.
func (s *aliasService) Deactivate(ctx context.Context, ownerID, aliasID int64) (*models.Alias, error) {
	return s.aliasRepo.Deactivate(ctx, aliasID, ownerID)
}

// List возвращает алиасы владельца в порядке вставки с пагинацией.
func (s *aliasService) List(ctx context.Context, ownerID int64, activeOnly bool, skip, limit int) ([]*models.Alias, error) {
	return s.aliasRepo.ListByOwner(ctx, ownerID, activeOnly, skip, limit)
}

// ResolveRedirect разрешает переход по коду. Отсутствующий, деактивированный
// и истёкший алиасы снаружи неразличимы: все три случая — ErrAliasNotFound.
// Счётчик и событие клика записываются до возврата ответа; сбой записи
// фатален для перехода.
func (s *aliasService) ResolveRedirect(ctx context.Context, code string, visit *models.Visit) (*models.Alias, error) {
	alias, err := s.aliasRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !alias.IsActive || alias.Expired(time.Now().UTC()) {
		return nil, repository.ErrAliasNotFound
	}

	if err := s.recorder.Record(ctx, alias.ID, visit); err != nil {
		return nil, err
	}

	// Счётчик в хранилище уже увеличен, отражаем это в выдаваемой копии.
	alias.ClicksCount++

	return alias, nil
}
