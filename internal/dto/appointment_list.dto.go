package dto

import (
	"time"

	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID              uint       `json:"id"`
	LeadID          *uint      `json:"lead_id,omitempty"`
	ServiceID       *uint      `json:"service_id,omitempty"`
	ServiceName     string     `json:"service_name,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	Status          string     `json:"status"`
	ClientName      string     `json:"client_name"`
	ClientPhone     string     `json:"client_phone,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ReminderMinutes *int       `json:"reminder_minutes,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:              ap.ID,
		LeadID:          ap.LeadID,
		ServiceID:       ap.ServiceID,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Status:          ap.Status,
		ClientName:      ap.ClientName,
		ClientPhone:     ap.ClientPhone,
		Notes:           ap.Notes,
		ReminderMinutes: ap.ReminderMinutes,
		ConfirmedAt:     ap.ConfirmedAt,
		CompletedAt:     ap.CompletedAt,
		CancelledAt:     ap.CancelledAt,
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	return out
}
