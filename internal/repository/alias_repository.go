package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kseleznev/url-alias/internal/models"
)

var (
	ErrAliasNotFound = errors.New("alias not found")
	ErrCodeExists    = errors.New("short code already exists")
)

type AliasRepository interface {
	Create(ctx context.Context, alias *models.Alias) error
	GetByCode(ctx context.Context, code string) (*models.Alias, error)
	Deactivate(ctx context.Context, id, ownerID int64) (*models.Alias, error)
	ListByOwner(ctx context.Context, ownerID int64, activeOnly bool, skip, limit int) ([]*models.Alias, error)
}

type aliasRepository struct {
	db *PostgresDB
}

func NewAliasRepository(db *PostgresDB) AliasRepository {
	return &aliasRepository{db: db}
}

func (r *aliasRepository) Create(ctx context.Context, alias *models.Alias) error {
	query := `
		INSERT INTO aliases (owner_id, short_code, original_url, is_active, clicks_count, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(
		ctx,
		query,
		alias.OwnerID,
		alias.ShortCode,
		alias.OriginalURL,
		alias.IsActive,
		alias.ClicksCount,
		alias.CreatedAt,
		alias.ExpiresAt,
	).Scan(&alias.ID, &alias.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeExists
		}
		return fmt.Errorf("failed to create alias: %w", err)
	}

	return nil
}

// GetByCode возвращает алиас по коду без фильтрации по состоянию:
// проверка активности и срока действия — ответственность сервисного слоя,
// чтобы мёртвые состояния были неотличимы для внешнего вызова.
func (r *aliasRepository) GetByCode(ctx context.Context, code string) (*models.Alias, error) {
	query := `
		SELECT id, owner_id, short_code, original_url, is_active, clicks_count, created_at, expires_at
		FROM aliases
		WHERE short_code = $1
	`

	alias := &models.Alias{}
	err := r.db.Pool.QueryRow(ctx, query, code).Scan(
		&alias.ID,
		&alias.OwnerID,
		&alias.ShortCode,
		&alias.OriginalURL,
		&alias.IsActive,
		&alias.ClicksCount,
		&alias.CreatedAt,
		&alias.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAliasNotFound
		}
		return nil, fmt.Errorf("failed to get alias: %w", err)
	}

	return alias, nil
}

// Deactivate выставляет is_active = false. Запись переписывается при каждом
// вызове, поэтому повторная деактивация возвращает то же терминальное
// состояние без ошибки.
func (r *aliasRepository) Deactivate(ctx context.Context, id, ownerID int64) (*models.Alias, error) {
	query := `
		UPDATE aliases
		SET is_active = FALSE
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, short_code, original_url, is_active, clicks_count, created_at, expires_at
	`

	alias := &models.Alias{}
	err := r.db.Pool.QueryRow(ctx, query, id, ownerID).Scan(
		&alias.ID,
		&alias.OwnerID,
		&alias.ShortCode,
		&alias.OriginalURL,
		&alias.IsActive,
		&alias.ClicksCount,
		&alias.CreatedAt,
		&alias.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAliasNotFound
		}
		return nil, fmt.Errorf("failed to deactivate alias: %w", err)
	}

	return alias, nil
}

// ListByOwner возвращает алиасы владельца в порядке вставки.
// Фильтр activeOnly смотрит только на флаг is_active, срок действия
// не учитывается. limit <= 0 означает выборку без пагинации.
func (r *aliasRepository) ListByOwner(ctx context.Context, ownerID int64, activeOnly bool, skip, limit int) ([]*models.Alias, error) {
	query := `
		SELECT id, owner_id, short_code, original_url, is_active, clicks_count, created_at, expires_at
		FROM aliases
		WHERE owner_id = $1
	`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY id`

	args := []any{ownerID}
	if limit > 0 {
		query += ` OFFSET $2 LIMIT $3`
		args = append(args, skip, limit)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	defer rows.Close()

	var aliases []*models.Alias
	for rows.Next() {
		alias := &models.Alias{}
		if err := rows.Scan(
			&alias.ID,
			&alias.OwnerID,
			&alias.ShortCode,
			&alias.OriginalURL,
			&alias.IsActive,
			&alias.ClicksCount,
			&alias.CreatedAt,
			&alias.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, alias)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aliases: %w", err)
	}

	return aliases, nil
}

// isUniqueViolation распознаёт нарушение ограничения уникальности PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
