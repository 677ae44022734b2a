package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DurationMinutes(t0, t0))
	assert.Equal(t, 95, DurationMinutes(t0, t0.Add(95*time.Minute)))
	// Partial minutes floor.
	assert.Equal(t, 95, DurationMinutes(t0, t0.Add(95*time.Minute+59*time.Second)))
	// Clock skew clamps to zero.
	assert.Equal(t, 0, DurationMinutes(t0, t0.Add(-time.Hour)))
}

func TestNewShiftRecord(t *testing.T) {
	clockIn := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)
	shift := ActiveShift{Identity: "U1", DisplayName: "Alice", Role: "Manager", ClockInAt: clockIn}

	record := NewShiftRecord("rec-1", shift, clockIn.Add(95*time.Minute))
	assert.Equal(t, 1, record.Hours)
	assert.Equal(t, 35, record.Minutes)
	assert.Equal(t, 95, record.TotalMinutes)
	// The shift crossed midnight; the date comes from the clock-out day.
	assert.Equal(t, "2024-03-02", record.Date)
	assert.Equal(t, "Alice", record.DisplayName)
}

func TestNewShiftRecordClampsSkew(t *testing.T) {
	clockIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	shift := ActiveShift{Identity: "U1", ClockInAt: clockIn}

	record := NewShiftRecord("rec-1", shift, clockIn.Add(-30*time.Minute))
	assert.Equal(t, 0, record.TotalMinutes)
	assert.Equal(t, clockIn, record.ClockOutAt, "clock-out floors to clock-in")
}
