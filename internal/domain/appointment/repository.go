package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

// ScheduleConfigStore is the read-only view of tenant configuration. Nothing
// behind it is cached; every call reflects the current settings.
type ScheduleConfigStore interface {
	// -------- Bot --------
	GetBot(
		ctx context.Context,
		botID uint,
	) (*models.Bot, error)

	// -------- Schedule --------
	GetSchedule(
		ctx context.Context,
		botID uint,
	) (*models.WorkingSchedule, error)

	GetWorkingHours(
		ctx context.Context,
		botID uint,
	) ([]models.WorkingHours, error)

	GetExceptions(
		ctx context.Context,
		botID uint,
		fromDate time.Time,
	) ([]models.ScheduleException, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		botID uint,
		serviceID uint,
	) (*models.Service, error)
}

type ListFilter struct {
	BotID  uint
	From   *time.Time
	To     *time.Time
	Status *Status
}

type AppointmentStore interface {
	// -------- Appointment (create / conflict) --------
	ListOverlapping(
		ctx context.Context,
		botID uint,
		start time.Time,
		end time.Time,
		includeCancelled bool,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		botID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus persists ap's status and timestamps only if
	// the stored row is still in status from. A row that moved on in the
	// meantime yields an InvalidTransition error.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	DeleteAppointment(
		ctx context.Context,
		botID uint,
		appointmentID uint,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}

// Transactor runs fn inside one write transaction. The store handed to fn
// locks the rows it reads, so a conflict check and the insert that follows
// it cannot interleave with another booking for the same bot.
type Transactor interface {
	WithinBookingTx(
		ctx context.Context,
		fn func(store AppointmentStore) error,
	) error
}
