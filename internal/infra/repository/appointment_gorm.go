package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
	"github.com/BruksfildServices01/bot-scheduler/internal/timezone"
)

// AppointmentGormRepository persists appointments. Times are written and
// compared in UTC.
type AppointmentGormRepository struct {
	db *gorm.DB

	// row locks and SERIALIZABLE are postgres-only
	postgres bool
	inTx     bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		db:       db,
		postgres: db.Dialector.Name() == "postgres",
	}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinBookingTx(
	ctx context.Context,
	fn func(store domain.AppointmentStore) error,
) error {

	var opts []*sql.TxOptions
	if r.postgres {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{
			db:       tx,
			postgres: r.postgres,
			inTx:     true,
		})
	}, opts...)

	// only the exclusion constraint proves an overlap; a serialization
	// abort may come from an unrelated write and is worth retrying
	switch {
	case httperr.IsExclusionConflict(err):
		return httperr.ErrSlotUnavailable
	case httperr.IsSerializationFailure(err):
		return httperr.ErrBookingBusy
	}
	return err
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOverlapping(
	ctx context.Context,
	botID uint,
	start time.Time,
	end time.Time,
	includeCancelled bool,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"bot_id = ? AND start_time < ? AND end_time > ?",
			botID, end.UTC(), start.UTC(),
		)

	if !includeCancelled {
		q = q.Where("status <> ?", string(domain.StatusCancelled))
	}
	if r.inTx && r.postgres {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list overlapping appointments: %w", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	botID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND bot_id = ?", appointmentID, botID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	ap.UpdatedAt = timezone.Now()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND bot_id = ? AND status = ?", ap.ID, ap.BotID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"completed_at": ap.CompletedAt,
			"cancelled_at": ap.CancelledAt,
			"updated_at":   ap.UpdatedAt,
		})

	if httperr.IsExclusionConflict(res.Error) {
		return httperr.ErrSlotUnavailable
	}
	if res.Error != nil {
		return fmt.Errorf("update appointment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.InvalidTransition(string(from), ap.Status)
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	botID uint,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND bot_id = ?", appointmentID, botID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return fmt.Errorf("delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("appointment_not_found")
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("bot_id = ?", filter.BotID)

	if filter.From != nil {
		q = q.Where("start_time >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("start_time < ?", filter.To.UTC())
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apps, nil
}

// Compile-time check
var (
	_ domain.AppointmentStore = (*AppointmentGormRepository)(nil)
	_ domain.Transactor       = (*AppointmentGormRepository)(nil)
)
