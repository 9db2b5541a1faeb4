package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kseleznev/url-alias/internal/models"
)

type ClickRepository interface {
	RecordRedirect(ctx context.Context, click *models.Click) error
	CountSince(ctx context.Context, aliasID int64, since time.Time) (int64, error)
}

type clickRepository struct {
	db *PostgresDB
}

func NewClickRepository(db *PostgresDB) ClickRepository {
	return &clickRepository{db: db}
}

// RecordRedirect применяет оба эффекта перехода одной транзакцией:
// инкремент счётчика алиаса и добавление записи о клике. Инварианта
// clicks_count == COUNT(clicks) это касается напрямую — порознь эффекты
// не фиксируются. Конкурентные переходы по одному алиасу сериализуются
// блокировкой строки, которую берёт UPDATE.
func (r *clickRepository) RecordRedirect(ctx context.Context, click *models.Click) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE aliases SET clicks_count = clicks_count + 1 WHERE id = $1`,
		click.AliasID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment clicks counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAliasNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO clicks (alias_id, ip_address, user_agent, clicked_at) VALUES ($1, $2, $3, $4)`,
		click.AliasID,
		click.IPAddress,
		click.UserAgent,
		click.ClickedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit click: %w", err)
	}

	return nil
}

// CountSince считает клики алиаса с clicked_at >= since (граница включающая).
func (r *clickRepository) CountSince(ctx context.Context, aliasID int64, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM clicks WHERE alias_id = $1 AND clicked_at >= $2`

	var count int64
	err := r.db.Pool.QueryRow(ctx, query, aliasID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	return count, nil
}
