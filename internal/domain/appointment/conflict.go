package appointment

import (
	"time"

	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// share at least one instant. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflicts returns the ids of existing appointments overlapping
// [start,end). Cancelled appointments are skipped when excludeCancelled is set.
func FindConflicts(
	existing []models.Appointment,
	start time.Time,
	end time.Time,
	excludeCancelled bool,
) []uint {

	var ids []uint
	for _, ap := range existing {
		if excludeCancelled && !IsActive(Status(ap.Status)) {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			ids = append(ids, ap.ID)
		}
	}
	return ids
}

func HasConflict(existing []models.Appointment, start, end time.Time) bool {
	return len(FindConflicts(existing, start, end, true)) > 0
}
