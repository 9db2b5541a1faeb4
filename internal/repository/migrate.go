package repository

import (
	"context"
	"fmt"
)

// Схема применяется идемпотентно при старте процесса.
// Уникальный индекс на short_code — гарантия уникальности кода на уровне
// хранилища, а не только проверки в приложении.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS aliases (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL REFERENCES accounts(id),
		short_code TEXT NOT NULL UNIQUE,
		original_url TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		clicks_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clicks (
		id BIGSERIAL PRIMARY KEY,
		alias_id BIGINT NOT NULL REFERENCES aliases(id),
		ip_address TEXT,
		user_agent TEXT,
		clicked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_aliases_owner_id ON aliases (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_alias_id_clicked_at ON clicks (alias_id, clicked_at)`,
}

// Migrate создаёт таблицы и индексы, если их ещё нет.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
