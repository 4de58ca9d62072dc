package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	config       domain.ScheduleConfigStore
	appointments domain.AppointmentStore
	audit        *audit.Dispatcher
	log          *zap.Logger
}

func NewDeleteAppointment(
	config domain.ScheduleConfigStore,
	appointments domain.AppointmentStore,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteAppointment {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeleteAppointment{
		config:       config,
		appointments: appointments,
		audit:        audit,
		log:          log,
	}
}

// Execute hard deletes the appointment regardless of its status.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	botID uint,
	appointmentID uint,
) error {

	if _, err := authorizeBot(ctx, uc.config, tenantID, botID); err != nil {
		return err
	}

	if err := uc.appointments.DeleteAppointment(ctx, botID, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BotID:    botID,
		TenantID: &tenantID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   audit.EntityAppointment,
		EntityID: &appointmentID,
	})

	uc.log.Info("appointment deleted",
		zap.Uint("bot_id", botID),
		zap.Uint("appointment_id", appointmentID),
	)
	return nil
}
