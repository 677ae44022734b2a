package dto

import "time"

// ClockRequest payload for clock-in and clock-out.
type ClockRequest struct {
	Identity string `json:"identity"`
}

// ActiveShiftResponse payload.
type ActiveShiftResponse struct {
	Identity    string    `json:"identity"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	ClockInAt   time.Time `json:"clock_in_at"`
}

// ShiftRecordResponse payload.
type ShiftRecordResponse struct {
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
