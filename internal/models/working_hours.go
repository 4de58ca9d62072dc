package models

import "time"

type WorkingHours struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	BotID uint `gorm:"uniqueIndex:idx_working_hours_bot_day;not null" json:"bot_id"`

	// 0 = Sunday ... 6 = Saturday
	DayOfWeek int `gorm:"uniqueIndex:idx_working_hours_bot_day;not null" json:"day_of_week"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`
	IsWorking  bool   `json:"is_working"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
