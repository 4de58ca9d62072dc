package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/metrics"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

type UpdateAppointmentStatus struct {
	config       domain.ScheduleConfigStore
	appointments domain.AppointmentStore
	audit        *audit.Dispatcher
	now          Clock
	log          *zap.Logger
}

func NewUpdateAppointmentStatus(
	config domain.ScheduleConfigStore,
	appointments domain.AppointmentStore,
	audit *audit.Dispatcher,
	now Clock,
	log *zap.Logger,
) *UpdateAppointmentStatus {
	if log == nil {
		log = zap.NewNop()
	}
	return &UpdateAppointmentStatus{
		config:       config,
		appointments: appointments,
		audit:        audit,
		now:          orNow(now),
		log:          log,
	}
}

// Execute applies one state machine step. The stored appointment is left
// unchanged when the step is not allowed.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	tenantID uint,
	botID uint,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	if _, err := authorizeBot(ctx, uc.config, tenantID, botID); err != nil {
		return nil, err
	}

	ap, err := uc.appointments.GetAppointment(ctx, botID, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Transition(ap, to, uc.now()); err != nil {
		return nil, err
	}

	// conditional on the status read above; a concurrent change turns this
	// into an invalid transition instead of overwriting it
	if err := uc.appointments.UpdateAppointmentStatus(ctx, ap, domain.Status(from)); err != nil {
		return nil, err
	}

	metrics.IncStatusTransition(string(to))

	uc.audit.Dispatch(audit.Event{
		BotID:    botID,
		TenantID: &tenantID,
		Action:   audit.ActionAppointmentStatus,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": from, "to": ap.Status},
	})

	uc.log.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", from),
		zap.String("to", ap.Status),
	)

	return ap, nil
}
