package dto

import "time"

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse payload.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StatsResponse is the admin aggregate.
type StatsResponse struct {
	StaffCount  int `json:"staff_count"`
	TotalShifts int `json:"total_shifts"`
	ActiveCount int `json:"active_count"`
}

// CommandRequest is one inbound chat command line, forwarded by the chat
// gateway together with the caller it already authenticated.
type CommandRequest struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
	Text        string `json:"text"`
}

// CommandResponse payload.
type CommandResponse struct {
	Reply string `json:"reply"`
}
