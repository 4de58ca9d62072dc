package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/metrics"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

const MaxRangeDays = 31

type AvailabilityRangeInput struct {
	TenantID  uint
	BotID     uint
	ServiceID *uint
	From      time.Time
	Days      int
}

// GetAvailability reads the current configuration and bookings and hands
// them to the pure slot calculator. Nothing is cached between calls.
type GetAvailability struct {
	config       domain.ScheduleConfigStore
	appointments domain.AppointmentStore
	now          Clock
	log          *zap.Logger
}

func NewGetAvailability(
	config domain.ScheduleConfigStore,
	appointments domain.AppointmentStore,
	now Clock,
	log *zap.Logger,
) *GetAvailability {
	if log == nil {
		log = zap.NewNop()
	}
	return &GetAvailability{
		config:       config,
		appointments: appointments,
		now:          orNow(now),
		log:          log,
	}
}

type botCalendar struct {
	schedule   *models.WorkingSchedule
	hours      []models.WorkingHours
	exceptions []models.ScheduleException
	service    *models.Service
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (out *domain.DayAvailability, err error) {

	started := time.Now()
	defer func() { metrics.ObserveAvailability(started, err) }()

	if in.Date.IsZero() {
		return nil, httperr.Validation("missing_date")
	}

	cal, err := uc.loadCalendar(ctx, in.TenantID, in.BotID, in.ServiceID, in.Date)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := dayBounds(in.Date, timezone.Location(cal.schedule.Timezone))
	booked, err := uc.appointments.ListOverlapping(ctx, in.BotID, dayStart, dayEnd, false)
	if err != nil {
		return nil, err
	}

	out, err = domain.CalculateSlots(domain.SlotsInput{
		Schedule:     cal.schedule,
		Hours:        cal.hours,
		Exceptions:   cal.exceptions,
		Service:      cal.service,
		Appointments: booked,
		Date:         in.Date,
		Now:          uc.now(),
	})
	if err != nil {
		uc.log.Warn("availability failed",
			zap.Uint("bot_id", in.BotID),
			zap.String("date", in.Date.Format(timezone.DateLayout)),
			zap.Error(err),
		)
		return nil, err
	}

	return out, nil
}

// ExecuteRange evaluates consecutive days against one read of the
// configuration and bookings.
func (uc *GetAvailability) ExecuteRange(
	ctx context.Context,
	in AvailabilityRangeInput,
) (out []*domain.DayAvailability, err error) {

	started := time.Now()
	defer func() { metrics.ObserveAvailability(started, err) }()

	if in.From.IsZero() {
		return nil, httperr.Validation("missing_date")
	}
	if in.Days < 1 || in.Days > MaxRangeDays {
		return nil, httperr.Validation("invalid_range")
	}

	cal, err := uc.loadCalendar(ctx, in.TenantID, in.BotID, in.ServiceID, in.From)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(cal.schedule.Timezone)
	rangeStart, _ := dayBounds(in.From, loc)
	rangeEnd := rangeStart.AddDate(0, 0, in.Days)

	booked, err := uc.appointments.ListOverlapping(ctx, in.BotID, rangeStart, rangeEnd, false)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	out = make([]*domain.DayAvailability, 0, in.Days)

	for i := 0; i < in.Days; i++ {
		day, err := domain.CalculateSlots(domain.SlotsInput{
			Schedule:     cal.schedule,
			Hours:        cal.hours,
			Exceptions:   cal.exceptions,
			Service:      cal.service,
			Appointments: booked,
			Date:         in.From.AddDate(0, 0, i),
			Now:          now,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}

	return out, nil
}

func (uc *GetAvailability) loadCalendar(
	ctx context.Context,
	tenantID uint,
	botID uint,
	serviceID *uint,
	from time.Time,
) (*botCalendar, error) {

	if _, err := authorizeBot(ctx, uc.config, tenantID, botID); err != nil {
		return nil, err
	}

	schedule, err := uc.config.GetSchedule(ctx, botID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.Config("schedule_not_configured", "")
		}
		return nil, err
	}

	hours, err := uc.config.GetWorkingHours(ctx, botID)
	if err != nil {
		return nil, err
	}

	exceptions, err := uc.config.GetExceptions(ctx, botID, from)
	if err != nil {
		return nil, err
	}

	cal := &botCalendar{schedule: schedule, hours: hours, exceptions: exceptions}

	if serviceID != nil {
		cal.service, err = uc.config.GetService(ctx, botID, *serviceID)
		if err != nil {
			return nil, err
		}
	}

	return cal, nil
}
