package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/bot-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
)

// ConflictDetector runs the overlap predicate against whatever store it is
// given. Inside a booking transaction that store holds the row locks.
type ConflictDetector struct{}

func (ConflictDetector) Check(
	ctx context.Context,
	store domain.AppointmentStore,
	botID uint,
	start time.Time,
	end time.Time,
	excludeCancelled bool,
) (bool, []uint, error) {

	existing, err := store.ListOverlapping(ctx, botID, start, end, !excludeCancelled)
	if err != nil {
		return false, nil, err
	}

	ids := domain.FindConflicts(existing, start, end, excludeCancelled)
	return len(ids) > 0, ids, nil
}

type ConflictResult struct {
	HasConflict    bool   `json:"has_conflict"`
	ConflictingIDs []uint `json:"conflicting_ids"`
}

// CheckConflict is the read-only preview of the check a booking performs.
type CheckConflict struct {
	config       domain.ScheduleConfigStore
	appointments domain.AppointmentStore
	detector     ConflictDetector
}

func NewCheckConflict(
	config domain.ScheduleConfigStore,
	appointments domain.AppointmentStore,
) *CheckConflict {
	return &CheckConflict{config: config, appointments: appointments}
}

func (uc *CheckConflict) Execute(
	ctx context.Context,
	tenantID uint,
	botID uint,
	start time.Time,
	end time.Time,
) (*ConflictResult, error) {

	if start.IsZero() || end.IsZero() {
		return nil, httperr.Validation("invalid_interval")
	}
	if !end.After(start) {
		return nil, httperr.Validation("invalid_interval")
	}

	if _, err := authorizeBot(ctx, uc.config, tenantID, botID); err != nil {
		return nil, err
	}

	found, ids, err := uc.detector.Check(ctx, uc.appointments, botID, start, end, true)
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []uint{}
	}
	return &ConflictResult{HasConflict: found, ConflictingIDs: ids}, nil
}
