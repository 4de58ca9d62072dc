package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/bot-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/bot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

const tenantID uint = 7

// 2024-01-08 is a Monday.
var monday = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type env struct {
	db           *gorm.DB
	bot          models.Bot
	config       *repository.ScheduleGormRepository
	appointments *repository.AppointmentGormRepository
}

// newEnv seeds a bot with a weekly schedule open Monday 09:00-18:00.
func newEnv(t *testing.T) *env {
	t.Helper()

	db := dbtest.Open(t)

	bot := models.Bot{TenantID: tenantID, Name: "clinic"}
	require.NoError(t, db.Create(&bot).Error)

	require.NoError(t, db.Create(&models.WorkingSchedule{
		BotID:               bot.ID,
		ScheduleType:        models.ScheduleTypeWeekly,
		SlotDurationMinutes: 60,
		Timezone:            "UTC",
	}).Error)
	require.NoError(t, db.Create(&models.WorkingHours{
		BotID: bot.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: true,
	}).Error)

	return &env{
		db:           db,
		bot:          bot,
		config:       repository.NewScheduleGormRepository(db),
		appointments: repository.NewAppointmentGormRepository(db),
	}
}

func (e *env) addService(t *testing.T, minutes int) *models.Service {
	t.Helper()
	svc := &models.Service{BotID: e.bot.ID, Name: "svc", DurationMinutes: minutes, IsActive: true}
	require.NoError(t, e.db.Create(svc).Error)
	return svc
}

func (e *env) addAppointment(t *testing.T, start, end time.Time, status string) models.Appointment {
	t.Helper()
	ap := models.Appointment{BotID: e.bot.ID, StartTime: start, EndTime: end, Status: status, ClientName: "seed"}
	require.NoError(t, e.appointments.CreateAppointment(context.Background(), &ap))
	return ap
}

func (e *env) addException(t *testing.T, ex models.ScheduleException) {
	t.Helper()
	ex.BotID = e.bot.ID
	require.NoError(t, e.db.Create(&ex).Error)
}

func dateOf(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}
