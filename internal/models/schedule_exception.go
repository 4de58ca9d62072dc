package models

import (
	"time"

	"gorm.io/datatypes"
)

type ScheduleException struct {
	ID    uint           `gorm:"primaryKey" json:"id"`
	BotID uint           `gorm:"uniqueIndex:idx_schedule_exceptions_bot_date;not null" json:"bot_id"`
	Date  datatypes.Date `gorm:"uniqueIndex:idx_schedule_exceptions_bot_date;not null" json:"date"`

	IsDayOff    bool   `json:"is_day_off"`
	CustomStart string `gorm:"size:5" json:"custom_start"`
	CustomEnd   string `gorm:"size:5" json:"custom_end"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
