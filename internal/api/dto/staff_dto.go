package dto

import "time"

// RegisterStaffRequest payload.
type RegisterStaffRequest struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Contact     string `json:"contact"`
}

// StaffResponse payload.
type StaffResponse struct {
	Identity     string    `json:"identity"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Contact      string    `json:"contact"`
	RegisteredAt time.Time `json:"registered_at"`
}

// StatusResponse reports either the open-shift elapsed time or the historical
// shift count.
type StatusResponse struct {
	Staff          StaffResponse `json:"staff"`
	ClockedIn      bool          `json:"clocked_in"`
	ClockInAt      *time.Time    `json:"clock_in_at,omitempty"`
	ElapsedMinutes *int          `json:"elapsed_minutes,omitempty"`
	TotalShifts    *int          `json:"total_shifts,omitempty"`
}
