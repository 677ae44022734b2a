package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffRegistered EventType = "staff_registered"
	EventShiftStarted    EventType = "shift_started"
	EventShiftCompleted  EventType = "shift_completed"
)

// Event represents a domain event emitted by the shift engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Identity  string      `json:"identity"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffRegisteredPayload payload.
type StaffRegisteredPayload struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Contact     string `json:"contact"`
}

// ShiftStartedPayload payload.
type ShiftStartedPayload struct {
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	ClockInAt   time.Time `json:"clock_in_at"`
}

// ShiftCompletedPayload payload.
type ShiftCompletedPayload struct {
	RecordID     string    `json:"record_id"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	ClockInAt    time.Time `json:"clock_in_at"`
	ClockOutAt   time.Time `json:"clock_out_at"`
	TotalMinutes int       `json:"total_minutes"`
}
