package models

import (
	"time"
)

type Alias struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	IsActive    bool      `json:"is_active"`
	ClicksCount int64     `json:"clicks_count"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired сообщает, истёк ли срок действия алиаса на момент now.
// Граница включающая: в момент expires_at алиас уже мёртв.
func (a *Alias) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

type CreateAliasInput struct {
	OriginalURL    string `json:"original_url" binding:"required"`
	ExpirationDays *int   `json:"expiration_days,omitempty"`
}
