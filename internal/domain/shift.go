package domain

import "time"

// ActiveShift is an open shift: a clock-in with no matching clock-out yet.
// DisplayName and Role are snapshotted at clock-in time so history stays
// stable even if the roster entry is ever edited. Open shifts are engine-local
// state and are never persisted.
type ActiveShift struct {
	Identity    string
	DisplayName string
	Role        string
	ClockInAt   time.Time
}

// ShiftRecord is one completed shift in the append-only history log.
// Immutable once created.
type ShiftRecord struct {
	ID           string    `json:"id"`
	Identity     string    `json:"identity"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	ClockInAt    time.Time `json:"clock_in_at"`
	ClockOutAt   time.Time `json:"clock_out_at"`
	Hours        int       `json:"hours"`
	Minutes      int       `json:"minutes"`
	TotalMinutes int       `json:"total_minutes"`
	Date         string    `json:"date"`
}

// DurationMinutes computes whole minutes between clock-in and clock-out,
// clamped to zero when out is earlier than in.
func DurationMinutes(clockIn, clockOut time.Time) int {
	minutes := int(clockOut.Sub(clockIn) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// NewShiftRecord closes an active shift into an immutable record. If clockOut
// precedes the clock-in instant (clock skew, tampering) the duration clamps to
// zero and clock-out is floored to clock-in, so clock_out_at >= clock_in_at
// holds on every persisted record.
func NewShiftRecord(id string, shift ActiveShift, clockOut time.Time) ShiftRecord {
	if clockOut.Before(shift.ClockInAt) {
		clockOut = shift.ClockInAt
	}
	total := DurationMinutes(shift.ClockInAt, clockOut)
	return ShiftRecord{
		ID:           id,
		Identity:     shift.Identity,
		DisplayName:  shift.DisplayName,
		Role:         shift.Role,
		ClockInAt:    shift.ClockInAt,
		ClockOutAt:   clockOut,
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
		Date:         clockOut.Format("2006-01-02"),
	}
}
