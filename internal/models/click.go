package models

import (
	"time"
)

// Click — неизменяемая запись об одном переходе по алиасу.
type Click struct {
	ID        int64     `json:"id"`
	AliasID   int64     `json:"alias_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ClickedAt time.Time `json:"clicked_at"`
}

// Visit — данные запроса, сопровождающие переход.
type Visit struct {
	IPAddress string
	UserAgent string
}

// AliasStats — агрегированная статистика переходов по одному алиасу.
type AliasStats struct {
	ShortURL       string    `json:"link"`
	OriginalURL    string    `json:"orig_link"`
	LastHourClicks int64     `json:"last_hour_clicks"`
	LastDayClicks  int64     `json:"last_day_clicks"`
	TotalClicks    int64     `json:"total_clicks"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	IsActive       bool      `json:"is_active"`
}
