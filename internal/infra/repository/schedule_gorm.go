package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

// ScheduleGormRepository reads bot configuration straight from the
// database on every call.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Bot
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBot(
	ctx context.Context,
	botID uint,
) (*models.Bot, error) {

	var bot models.Bot
	if err := r.db.WithContext(ctx).First(&bot, botID).Error; err != nil {
		return nil, notFound(err, "bot_not_found")
	}
	return &bot, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSchedule(
	ctx context.Context,
	botID uint,
) (*models.WorkingSchedule, error) {

	var schedule models.WorkingSchedule
	if err := r.db.WithContext(ctx).
		Where("bot_id = ?", botID).
		First(&schedule).Error; err != nil {
		return nil, notFound(err, "schedule_not_found")
	}
	return &schedule, nil
}

func (r *ScheduleGormRepository) GetWorkingHours(
	ctx context.Context,
	botID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("bot_id = ?", botID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}
	return hours, nil
}

func (r *ScheduleGormRepository) GetExceptions(
	ctx context.Context,
	botID uint,
	fromDate time.Time,
) ([]models.ScheduleException, error) {

	y, m, d := fromDate.Date()
	from := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	var exceptions []models.ScheduleException
	if err := r.db.WithContext(ctx).
		Where("bot_id = ? AND date >= ?", botID, from).
		Order("date ASC").
		Find(&exceptions).Error; err != nil {
		return nil, fmt.Errorf("load schedule exceptions: %w", err)
	}
	return exceptions, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	botID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND bot_id = ? AND is_active = ?", serviceID, botID, true).
		First(&service).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &service, nil
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code)
	}
	return err
}

// Compile-time check
var _ domain.ScheduleConfigStore = (*ScheduleGormRepository)(nil)
