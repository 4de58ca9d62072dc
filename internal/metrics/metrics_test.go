package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingCreated.WithLabelValues("pending"))
	IncBookingCreated("pending")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingCreated.WithLabelValues("pending")))

	before = testutil.ToFloat64(bookingConflict)
	IncBookingConflict()
	assert.Equal(t, before+1, testutil.ToFloat64(bookingConflict))

	before = testutil.ToFloat64(statusTransition.WithLabelValues("cancelled"))
	IncStatusTransition("cancelled")
	assert.Equal(t, before+1, testutil.ToFloat64(statusTransition.WithLabelValues("cancelled")))
}

func TestObserveAvailability(t *testing.T) {
	ObserveAvailability(time.Now(), nil)
	ObserveAvailability(time.Now(), errors.New("x"))

	assert.Equal(t, 2, testutil.CollectAndCount(availabilityDuration))
}
