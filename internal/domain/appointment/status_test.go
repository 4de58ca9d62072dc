package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/bot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/bot-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}
	allowed := map[Status]map[Status]bool{
		StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed: {StatusCompleted: true, StatusCancelled: true, StatusNoShow: true},
	}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[from][to] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition), "%s -> %s", from, to)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
}

func TestTransition_StampsAndRejects(t *testing.T) {
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Transition(ap, StatusConfirmed, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	require.NoError(t, Transition(ap, StatusCancelled, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)

	err := Transition(ap, StatusConfirmed, now)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestParseAndInitialStatus(t *testing.T) {
	_, err := ParseStatus("archived")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	st, err := ParseStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)

	assert.NoError(t, ValidateInitialStatus(StatusPending))
	assert.NoError(t, ValidateInitialStatus(StatusConfirmed))
	assert.True(t, httperr.IsBusiness(ValidateInitialStatus(""), "missing_initial_status"))
	assert.True(t, httperr.IsBusiness(ValidateInitialStatus(StatusCompleted), "invalid_initial_status"))
}
