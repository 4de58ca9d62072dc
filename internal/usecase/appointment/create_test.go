package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/bot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/bot-scheduler/internal/lock"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

func (e *env) newCreate(locker lock.Locker, d *audit.Dispatcher) *CreateAppointment {
	return NewCreateAppointment(e.config, e.appointments, locker, d, nil)
}

func baseInput(e *env, start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		TenantID:      tenantID,
		BotID:         e.bot.ID,
		StartTime:     start,
		ClientName:    "Ana",
		ClientPhone:   "+5511999990000",
		InitialStatus: domain.StatusPending,
	}
}

func TestCreateAppointment_DefaultDuration(t *testing.T) {
	e := newEnv(t)
	uc := e.newCreate(lock.NewLocalLocker(time.Second), nil)

	ap, err := uc.Execute(context.Background(), baseInput(e, at(monday, 10, 0)))
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, time.Duration(DefaultBookingMinutes)*time.Minute, ap.EndTime.Sub(ap.StartTime))
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Nil(t, ap.ConfirmedAt)
}

func TestCreateAppointment_ServiceDurationAndConfirmed(t *testing.T) {
	e := newEnv(t)
	svc := e.addService(t, 45)
	uc := e.newCreate(nil, nil)

	in := baseInput(e, at(monday, 10, 0))
	in.ServiceID = &svc.ID
	in.InitialStatus = domain.StatusConfirmed

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, at(monday, 10, 45), ap.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)
}

func TestCreateAppointment_OverlapIsSlotUnavailable(t *testing.T) {
	e := newEnv(t)
	svc := e.addService(t, 30)
	e.addAppointment(t, at(monday, 10, 0), at(monday, 11, 0), string(domain.StatusConfirmed))

	uc := e.newCreate(lock.NewLocalLocker(time.Second), nil)

	in := baseInput(e, at(monday, 10, 30))
	in.ServiceID = &svc.ID

	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, httperr.ErrSlotUnavailable)

	// touching the existing booking is fine
	in.StartTime = at(monday, 11, 0)
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_SameIntervalTwice(t *testing.T) {
	e := newEnv(t)
	uc := e.newCreate(lock.NewLocalLocker(time.Second), nil)
	in := baseInput(e, at(monday, 14, 0))

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	e := newEnv(t)
	e.addAppointment(t, at(monday, 10, 0), at(monday, 11, 0), string(domain.StatusCancelled))

	_, err := e.newCreate(nil, nil).Execute(context.Background(), baseInput(e, at(monday, 10, 0)))
	assert.NoError(t, err)
}

func TestCreateAppointment_Validation(t *testing.T) {
	e := newEnv(t)
	uc := e.newCreate(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		code   string
	}{
		{"missing bot", func(in *CreateAppointmentInput) { in.BotID = 0 }, "missing_bot_id"},
		{"missing start", func(in *CreateAppointmentInput) { in.StartTime = time.Time{} }, "invalid_start_time"},
		{"blank client", func(in *CreateAppointmentInput) { in.ClientName = "  " }, "missing_client_name"},
		{"no status", func(in *CreateAppointmentInput) { in.InitialStatus = "" }, "missing_initial_status"},
		{"terminal status", func(in *CreateAppointmentInput) { in.InitialStatus = domain.StatusCompleted }, "invalid_initial_status"},
		{"negative reminder", func(in *CreateAppointmentInput) { v := -5; in.ReminderMinutes = &v }, "invalid_reminder_minutes"},
		{"foreign tenant", func(in *CreateAppointmentInput) { in.TenantID = 99 }, "bot_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput(e, at(monday, 9, 0))
			tt.mutate(&in)

			_, err := uc.Execute(ctx, in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}

	var count int64
	require.NoError(t, e.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateAppointment_ServiceProblems(t *testing.T) {
	e := newEnv(t)
	uc := e.newCreate(nil, nil)

	broken := e.addService(t, 30)
	require.NoError(t, e.db.Model(broken).Update("duration_minutes", 0).Error)

	in := baseInput(e, at(monday, 9, 0))
	in.ServiceID = &broken.ID
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "non_positive_duration"))

	missing := uint(12345)
	in.ServiceID = &missing
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCreateAppointment_RequireWorkingHours(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.db.Model(&models.WorkingHours{}).
		Where("bot_id = ? AND day_of_week = 1", e.bot.ID).
		Updates(map[string]any{"break_start": "12:00", "break_end": "13:00"}).Error)

	uc := e.newCreate(nil, nil)

	cases := []struct {
		start time.Time
		ok    bool
	}{
		{at(monday, 9, 0), true},
		{at(monday, 8, 30), false},
		{at(monday, 17, 30), false},
		{at(monday, 12, 30), false},
		{at(monday, 13, 0), true},
		{at(monday.AddDate(0, 0, 1), 10, 0), false},
	}

	for _, c := range cases {
		in := baseInput(e, c.start)
		in.RequireWorkingHours = true

		_, err := uc.Execute(context.Background(), in)
		if c.ok {
			assert.NoError(t, err, c.start.String())
		} else {
			assert.True(t, httperr.IsBusiness(err, "outside_working_hours"), c.start.String())
		}
	}
}

func TestCreateAppointment_AuditsOutcome(t *testing.T) {
	e := newEnv(t)
	d := audit.NewDispatcher(audit.New(repository.NewAuditLogGormRepository(e.db)), nil)
	uc := e.newCreate(nil, d)

	in := baseInput(e, at(monday, 9, 0))
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), in)
	require.Error(t, err)

	d.Close()

	var actions []string
	require.NoError(t, e.db.Model(&models.AuditLog{}).Order("id ASC").Pluck("action", &actions).Error)
	assert.Equal(t, []string{audit.ActionAppointmentCreated, audit.ActionAppointmentConflict}, actions)
}

func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	lockers := map[string]lock.Locker{
		"local lock": lock.NewLocalLocker(5 * time.Second),
		"no lock":    nil,
	}

	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t)
			uc := e.newCreate(locker, nil)

			const callers = 10
			var (
				wg          sync.WaitGroup
				mu          sync.Mutex
				created     int
				unavailable int
			)

			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					// overlapping starts: 10:00, 10:05, ... all inside 10:00-11:45
					in := baseInput(e, at(monday, 10, 5*(i%4)))
					_, err := uc.Execute(context.Background(), in)

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						created++
					case httperr.IsKind(err, httperr.KindSlotUnavailable):
						unavailable++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			wg.Wait()

			assert.Equal(t, 1, created)
			assert.Equal(t, callers-1, unavailable)

			var stored []models.Appointment
			require.NoError(t, e.db.Find(&stored).Error)
			require.Len(t, stored, 1)
		})
	}
}

type stuckLocker struct{}

func (stuckLocker) Lock(context.Context, string) (func(), error) {
	return nil, lock.ErrLockTimeout
}

func TestCreateAppointment_LockTimeout(t *testing.T) {
	e := newEnv(t)
	uc := e.newCreate(stuckLocker{}, nil)

	_, err := uc.Execute(context.Background(), baseInput(e, at(monday, 9, 0)))
	assert.ErrorIs(t, err, lock.ErrLockTimeout)
}
