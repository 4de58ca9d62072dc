package appointment

import (
	"time"

	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	TenantID  uint
	BotID     uint
	ServiceID *uint
	Date      time.Time
}

type TimeSlot struct {
	Time      time.Time `json:"time"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayAvailability struct {
	Date            string     `json:"date"`
	IsWorkingDay    bool       `json:"is_working_day"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	WorkingHours    *Window    `json:"working_hours,omitempty"`
	Break           *Window    `json:"break,omitempty"`
	Slots           []TimeSlot `json:"slots"`
}

// SlotsInput carries everything the calculator reads. Appointments may
// include cancelled ones; they are ignored.
type SlotsInput struct {
	Schedule     *models.WorkingSchedule
	Hours        []models.WorkingHours
	Exceptions   []models.ScheduleException
	Service      *models.Service
	Appointments []models.Appointment
	Date         time.Time
	Now          time.Time
}

// CalculateSlots turns a day's configuration and bookings into the ordered
// list of candidate slots. It performs no I/O.
func CalculateSlots(in SlotsInput) (*DayAvailability, error) {
	if in.Schedule == nil {
		return nil, httperr.Config("schedule_not_configured", "")
	}

	plan, err := ResolveDay(in.Schedule, in.Hours, in.Exceptions, in.Date)
	if err != nil {
		return nil, err
	}

	out := &DayAvailability{
		Date:  plan.Date.Format(timezone.DateLayout),
		Slots: []TimeSlot{},
	}
	if !plan.IsWorkingDay {
		return out, nil
	}

	duration, err := EffectiveDuration(in.Schedule, in.Service)
	if err != nil {
		return nil, err
	}
	if in.Schedule.BufferMinutes < 0 {
		return nil, httperr.Config("invalid_buffer", "buffer must not be negative")
	}

	out.IsWorkingDay = true
	out.DurationMinutes = duration
	out.WorkingHours = &Window{
		Start: plan.Start.Format(timezone.HMLayout),
		End:   plan.End.Format(timezone.HMLayout),
	}
	if plan.HasBreak {
		out.Break = &Window{
			Start: plan.BreakStart.Format(timezone.HMLayout),
			End:   plan.BreakEnd.Format(timezone.HMLayout),
		}
	}

	slotLen := time.Duration(duration) * time.Minute
	step := slotLen + time.Duration(in.Schedule.BufferMinutes)*time.Minute

	for cur := plan.Start; !cur.Add(slotLen).After(plan.End); cur = cur.Add(step) {
		slotStart := cur
		slotEnd := cur.Add(slotLen)

		// break
		if plan.HasBreak && Overlaps(slotStart, slotEnd, plan.BreakStart, plan.BreakEnd) {
			continue
		}

		out.Slots = append(out.Slots, TimeSlot{
			Time:      slotStart,
			End:       slotEnd,
			Available: !HasConflict(in.Appointments, slotStart, slotEnd) && !slotStart.Before(in.Now),
		})
	}

	return out, nil
}

// EffectiveDuration is the service length when a service is given, else the
// schedule's default slot length.
func EffectiveDuration(schedule *models.WorkingSchedule, service *models.Service) (int, error) {
	if service != nil {
		if service.DurationMinutes <= 0 {
			return 0, httperr.Config("non_positive_duration", "service duration must be positive")
		}
		return service.DurationMinutes, nil
	}
	if schedule.SlotDurationMinutes <= 0 {
		return 0, httperr.Config("non_positive_duration", "slot duration must be positive")
	}
	return schedule.SlotDurationMinutes, nil
}
