package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bot_scheduler"

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Count of appointments created by initial status.",
		},
		[]string{"status"},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected because the slot was taken.",
		},
	)

	statusTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transition_total",
			Help:      "Count of appointment status changes by target status.",
		},
		[]string{"to"},
	)

	availabilityDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_duration_seconds",
			Help:      "Time spent computing availability, including store reads.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, statusTransition, availabilityDuration)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

func IncStatusTransition(to string) {
	statusTransition.WithLabelValues(to).Inc()
}

// ObserveAvailability records one availability computation started at
// start. A nil err counts as "ok".
func ObserveAvailability(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	availabilityDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
