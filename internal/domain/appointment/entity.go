package appointment

import (
	"time"

	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to status to, stamping the matching timestamp. ap is
// left untouched when the transition is not allowed.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}
