package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ScheduleTypeWeekly = "weekly"
	ScheduleTypeShift  = "shift"
)

type WorkingSchedule struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	BotID uint `gorm:"uniqueIndex;not null" json:"bot_id"`

	ScheduleType        string `gorm:"size:10;not null;default:'weekly'" json:"schedule_type"`
	SlotDurationMinutes int    `gorm:"not null;default:60" json:"slot_duration_minutes"`
	BufferMinutes       int    `gorm:"not null;default:0" json:"buffer_minutes"`
	Timezone            string `gorm:"size:64;not null;default:'UTC'" json:"timezone"`

	// shift only
	CycleStartDate *datatypes.Date `json:"cycle_start_date"`
	ShiftWorkDays  int             `json:"shift_work_days"`
	ShiftOffDays   int             `json:"shift_off_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
