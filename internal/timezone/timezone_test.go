package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_Fallback(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Not/AZone"))
	assert.Equal(t, "Europe/Berlin", Location("Europe/Berlin").String())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(a, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, DaysBetween(a, time.Date(2024, 1, 5, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysBetween(a, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 366, DaysBetween(a, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc := Location("Europe/Berlin")
	a := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	b := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)

	assert.Equal(t, 2, DaysBetween(a, b))
}

func TestAtClock(t *testing.T) {
	date := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	got, err := AtClock(date, "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC), got)

	_, err = AtClock(date, "9h")
	assert.Error(t, err)
}

func TestSetFallback(t *testing.T) {
	t.Cleanup(func() { fallback.Store(nil) })

	SetFallback("Mars/Olympus")
	assert.Equal(t, time.UTC, Location(""))

	SetFallback("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", Location("").String())
	assert.Equal(t, "Europe/Berlin", Location("Europe/Berlin").String())
}
