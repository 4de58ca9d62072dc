package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/lock"
	"github.com/BruksfildServices01/bot-scheduler/internal/metrics"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID uint
	BotID    uint

	LeadID    *uint
	ServiceID *uint

	StartTime time.Time

	ClientName      string
	ClientPhone     string
	Notes           string
	ReminderMinutes *int

	// pending or confirmed; the caller decides which
	InitialStatus domain.Status

	// reject intervals outside the day's working hours or inside the break
	RequireWorkingHours bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	config   domain.ScheduleConfigStore
	tx       domain.Transactor
	locker   lock.Locker
	detector ConflictDetector
	audit    *audit.Dispatcher
	log      *zap.Logger
}

// NewCreateAppointment wires the booking path. locker may be nil, in which
// case the transaction and the storage constraint alone guard the slot.
func NewCreateAppointment(
	config domain.ScheduleConfigStore,
	tx domain.Transactor,
	locker lock.Locker,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateAppointment {
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateAppointment{
		config: config,
		tx:     tx,
		locker: locker,
		audit:  audit,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Shape checks
	// --------------------------------------------------
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	if _, err := authorizeBot(ctx, uc.config, in.TenantID, in.BotID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Duration and derived end
	// --------------------------------------------------
	duration := DefaultBookingMinutes
	if in.ServiceID != nil {
		service, err := uc.config.GetService(ctx, in.BotID, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if service.DurationMinutes <= 0 {
			return nil, httperr.Config("non_positive_duration", "service duration must be positive")
		}
		duration = service.DurationMinutes
	}

	start := in.StartTime.UTC()
	end := start.Add(time.Duration(duration) * time.Minute)

	// --------------------------------------------------
	// 3. Working hours (optional)
	// --------------------------------------------------
	if in.RequireWorkingHours {
		if err := uc.assertWithinWorkingHours(ctx, in.BotID, start, end); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Per-bot writer
	// --------------------------------------------------
	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, lock.BotKey(in.BotID))
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	// --------------------------------------------------
	// 5. Conflict check + insert, one transaction
	// --------------------------------------------------
	ap := &models.Appointment{
		BotID:           in.BotID,
		LeadID:          in.LeadID,
		ServiceID:       in.ServiceID,
		StartTime:       start,
		EndTime:         end,
		Status:          string(in.InitialStatus),
		ClientName:      strings.TrimSpace(in.ClientName),
		ClientPhone:     in.ClientPhone,
		Notes:           in.Notes,
		ReminderMinutes: in.ReminderMinutes,
	}
	if in.InitialStatus == domain.StatusConfirmed {
		confirmedAt := timezone.Now()
		ap.ConfirmedAt = &confirmedAt
	}

	var conflicting []uint
	err := uc.tx.WithinBookingTx(ctx, func(store domain.AppointmentStore) error {
		found, ids, err := uc.detector.Check(ctx, store, in.BotID, start, end, true)
		if err != nil {
			return err
		}
		if found {
			conflicting = ids
			return httperr.ErrSlotUnavailable
		}
		return store.CreateAppointment(ctx, ap)
	})

	if errors.Is(err, httperr.ErrSlotUnavailable) {
		uc.rejectConflict(in, start, end, conflicting)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Bookkeeping
	// --------------------------------------------------
	metrics.IncBookingCreated(ap.Status)

	uc.audit.Dispatch(audit.Event{
		BotID:    in.BotID,
		TenantID: &in.TenantID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"status": ap.Status,
			"start":  ap.StartTime,
			"end":    ap.EndTime,
		},
	})

	uc.log.Info("appointment created",
		zap.Uint("bot_id", in.BotID),
		zap.Uint("appointment_id", ap.ID),
		zap.String("status", ap.Status),
		zap.Time("start", ap.StartTime),
	)

	return ap, nil
}

func validateCreate(in CreateAppointmentInput) error {
	if in.BotID == 0 {
		return httperr.Validation("missing_bot_id")
	}
	if in.StartTime.IsZero() {
		return httperr.Validation("invalid_start_time")
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return httperr.Validation("missing_client_name")
	}
	if in.ReminderMinutes != nil && *in.ReminderMinutes < 0 {
		return httperr.Validation("invalid_reminder_minutes")
	}
	return domain.ValidateInitialStatus(in.InitialStatus)
}

func (uc *CreateAppointment) assertWithinWorkingHours(
	ctx context.Context,
	botID uint,
	start time.Time,
	end time.Time,
) error {

	schedule, err := uc.config.GetSchedule(ctx, botID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return httperr.Config("schedule_not_configured", "")
		}
		return err
	}

	hours, err := uc.config.GetWorkingHours(ctx, botID)
	if err != nil {
		return err
	}

	local := start.In(timezone.Location(schedule.Timezone))
	exceptions, err := uc.config.GetExceptions(ctx, botID, local)
	if err != nil {
		return err
	}

	plan, err := domain.ResolveDay(schedule, hours, exceptions, local)
	if err != nil {
		return err
	}
	if !plan.Contains(start, end) {
		return httperr.Validation("outside_working_hours")
	}
	return nil
}

func (uc *CreateAppointment) rejectConflict(
	in CreateAppointmentInput,
	start time.Time,
	end time.Time,
	conflicting []uint,
) {
	metrics.IncBookingConflict()

	uc.audit.Dispatch(audit.Event{
		BotID:    in.BotID,
		TenantID: &in.TenantID,
		Action:   audit.ActionAppointmentConflict,
		Entity:   audit.EntityAppointment,
		Metadata: map[string]any{
			"start":       start,
			"end":         end,
			"conflicting": conflicting,
		},
	})

	uc.log.Info("slot unavailable",
		zap.Uint("bot_id", in.BotID),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Uints("conflicting", conflicting),
	)
}
