package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BotID uint `gorm:"index:idx_appointments_bot_start;not null" json:"bot_id"`

	LeadID    *uint    `json:"lead_id"`
	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	StartTime time.Time `gorm:"index:idx_appointments_bot_start;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;not null;index" json:"status"`

	ClientName      string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone     string `gorm:"size:20" json:"client_phone"`
	Notes           string `gorm:"size:255" json:"notes"`
	ReminderMinutes *int   `json:"reminder_minutes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
