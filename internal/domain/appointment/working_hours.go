package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

const (
	// shift schedules reuse the Monday row as the daily template
	shiftTemplateWeekday = int(time.Monday)

	DefaultShiftStart = "09:00"
	DefaultShiftEnd   = "18:00"
)

// DayPlan is the resolved working window of one calendar day.
type DayPlan struct {
	Date         time.Time
	IsWorkingDay bool

	Start time.Time
	End   time.Time

	HasBreak   bool
	BreakStart time.Time
	BreakEnd   time.Time
}

type clockHours struct {
	start, end           string
	breakStart, breakEnd string
}

// ResolveDay applies the weekly or shift rules and then the date exception
// to decide whether date is a working day and what its hours are. date is
// read as a calendar day in the schedule's timezone.
func ResolveDay(
	schedule *models.WorkingSchedule,
	hours []models.WorkingHours,
	exceptions []models.ScheduleException,
	date time.Time,
) (*DayPlan, error) {

	loc := timezone.Location(schedule.Timezone)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	var (
		working bool
		ch      clockHours
		err     error
	)

	switch schedule.ScheduleType {
	case models.ScheduleTypeShift:
		working, ch, err = shiftDay(schedule, hours, day)
	case models.ScheduleTypeWeekly, "":
		working, ch = weeklyDay(hours, day)
	default:
		return nil, httperr.Config("invalid_schedule_type", schedule.ScheduleType)
	}
	if err != nil {
		return nil, err
	}

	// exceptions always win over the computed status
	if ex := exceptionFor(exceptions, day); ex != nil {
		if ex.IsDayOff {
			working = false
		}
		if ex.CustomStart != "" {
			ch.start = ex.CustomStart
		}
		if ex.CustomEnd != "" {
			ch.end = ex.CustomEnd
		}
	}

	plan := &DayPlan{Date: day, IsWorkingDay: working}
	if !working {
		return plan, nil
	}

	if err := plan.setHours(day, ch); err != nil {
		return nil, err
	}
	return plan, nil
}

// ShiftOffset is the position of date inside the shift cycle, always in
// [0, cycleLength) including for dates before the cycle start.
func ShiftOffset(cycleStart, date time.Time, cycleLength int) int {
	return floorMod(timezone.DaysBetween(cycleStart, date), cycleLength)
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func shiftDay(
	schedule *models.WorkingSchedule,
	hours []models.WorkingHours,
	day time.Time,
) (bool, clockHours, error) {

	cycle := schedule.ShiftWorkDays + schedule.ShiftOffDays
	if schedule.ShiftWorkDays < 0 || schedule.ShiftOffDays < 0 || cycle <= 0 {
		return false, clockHours{}, httperr.Config(
			"invalid_shift_cycle",
			fmt.Sprintf("work=%d off=%d", schedule.ShiftWorkDays, schedule.ShiftOffDays),
		)
	}
	if schedule.CycleStartDate == nil {
		return false, clockHours{}, httperr.Config("invalid_shift_cycle", "missing cycle start date")
	}

	offset := ShiftOffset(time.Time(*schedule.CycleStartDate), day, cycle)

	ch := clockHours{start: DefaultShiftStart, end: DefaultShiftEnd}
	if tpl := hoursFor(hours, shiftTemplateWeekday); tpl != nil && tpl.StartTime != "" && tpl.EndTime != "" {
		ch = clockHours{
			start:      tpl.StartTime,
			end:        tpl.EndTime,
			breakStart: tpl.BreakStart,
			breakEnd:   tpl.BreakEnd,
		}
	}

	return offset < schedule.ShiftWorkDays, ch, nil
}

func weeklyDay(hours []models.WorkingHours, day time.Time) (bool, clockHours) {
	wh := hoursFor(hours, int(day.Weekday()))
	if wh == nil {
		return false, clockHours{}
	}
	return wh.IsWorking, clockHours{
		start:      wh.StartTime,
		end:        wh.EndTime,
		breakStart: wh.BreakStart,
		breakEnd:   wh.BreakEnd,
	}
}

func hoursFor(hours []models.WorkingHours, weekday int) *models.WorkingHours {
	for i := range hours {
		if hours[i].DayOfWeek == weekday {
			return &hours[i]
		}
	}
	return nil
}

func exceptionFor(exceptions []models.ScheduleException, day time.Time) *models.ScheduleException {
	for i := range exceptions {
		if timezone.SameDate(time.Time(exceptions[i].Date), day) {
			return &exceptions[i]
		}
	}
	return nil
}

func (p *DayPlan) setHours(day time.Time, ch clockHours) error {
	if ch.start == "" || ch.end == "" {
		return httperr.Config("invalid_working_hours", "missing start or end")
	}

	start, err := timezone.AtClock(day, ch.start)
	if err != nil {
		return httperr.Config("invalid_working_hours", ch.start)
	}
	end, err := timezone.AtClock(day, ch.end)
	if err != nil {
		return httperr.Config("invalid_working_hours", ch.end)
	}
	if !end.After(start) {
		return httperr.Config("invalid_working_hours", ch.start+"-"+ch.end)
	}
	p.Start, p.End = start, end

	if ch.breakStart == "" || ch.breakEnd == "" {
		return nil
	}

	bs, err := timezone.AtClock(day, ch.breakStart)
	if err != nil {
		return httperr.Config("invalid_working_hours", ch.breakStart)
	}
	be, err := timezone.AtClock(day, ch.breakEnd)
	if err != nil {
		return httperr.Config("invalid_working_hours", ch.breakEnd)
	}
	if !be.After(bs) {
		return httperr.Config("invalid_working_hours", ch.breakStart+"-"+ch.breakEnd)
	}

	p.HasBreak = true
	p.BreakStart, p.BreakEnd = bs, be
	return nil
}

// Contains reports whether [start,end) lies inside the working window and
// clear of the break.
func (p *DayPlan) Contains(start, end time.Time) bool {
	if !p.IsWorkingDay {
		return false
	}
	if start.Before(p.Start) || end.After(p.End) {
		return false
	}
	if p.HasBreak && Overlaps(start, end, p.BreakStart, p.BreakEnd) {
		return false
	}
	return true
}
