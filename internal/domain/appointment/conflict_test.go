package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

func TestOverlaps_HalfOpen(t *testing.T) {
	ten := at(monday, 10, 0)
	eleven := at(monday, 11, 0)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical", ten, eleven, true},
		{"inside", at(monday, 10, 15), at(monday, 10, 45), true},
		{"covers", at(monday, 9, 0), at(monday, 12, 0), true},
		{"straddles start", at(monday, 9, 30), at(monday, 10, 30), true},
		{"straddles end", at(monday, 10, 30), at(monday, 11, 30), true},
		{"touches before", at(monday, 9, 0), ten, false},
		{"touches after", eleven, at(monday, 12, 0), false},
		{"disjoint", at(monday, 13, 0), at(monday, 14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.start, tt.end, ten, eleven))
			assert.Equal(t, tt.want, Overlaps(ten, eleven, tt.start, tt.end))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []models.Appointment{
		{ID: 1, StartTime: at(monday, 10, 0), EndTime: at(monday, 11, 0), Status: string(StatusConfirmed)},
		{ID: 2, StartTime: at(monday, 10, 30), EndTime: at(monday, 11, 30), Status: string(StatusCancelled)},
		{ID: 3, StartTime: at(monday, 10, 45), EndTime: at(monday, 11, 15), Status: string(StatusNoShow)},
	}

	assert.Equal(t, []uint{1, 3}, FindConflicts(existing, at(monday, 10, 30), at(monday, 11, 0), true))
	assert.Equal(t, []uint{1, 2, 3}, FindConflicts(existing, at(monday, 10, 30), at(monday, 11, 0), false))
	assert.Empty(t, FindConflicts(existing, at(monday, 11, 30), at(monday, 12, 0), true))
	assert.False(t, HasConflict(existing, at(monday, 11, 15), at(monday, 12, 0)))
}
