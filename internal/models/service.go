package models

import "time"

type Service struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	BotID uint `gorm:"index;not null" json:"bot_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
