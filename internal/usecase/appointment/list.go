package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/dto"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
)

type ListAppointmentsInput struct {
	TenantID uint
	BotID    uint

	// half-open [From, To) on start time; either may be nil
	From *time.Time
	To   *time.Time

	Status string
}

type ListAppointments struct {
	config       domain.ScheduleConfigStore
	appointments domain.AppointmentStore
}

func NewListAppointments(
	config domain.ScheduleConfigStore,
	appointments domain.AppointmentStore,
) *ListAppointments {
	return &ListAppointments{config: config, appointments: appointments}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	filter := domain.ListFilter{
		BotID: in.BotID,
		From:  in.From,
		To:    in.To,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}

	if in.From != nil && in.To != nil && !in.To.After(*in.From) {
		return nil, httperr.Validation("invalid_date_range")
	}

	if _, err := authorizeBot(ctx, uc.config, in.TenantID, in.BotID); err != nil {
		return nil, err
	}

	apps, err := uc.appointments.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}
	return out, nil
}
