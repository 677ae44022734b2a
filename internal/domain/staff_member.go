package domain

import "time"

// StaffMember models one registered member of the roster. Identity is the
// stable unique key across the registry, tracker and history; DisplayName,
// Role and Contact are informational.
type StaffMember struct {
	Identity     string    `json:"identity"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Contact      string    `json:"contact"`
	RegisteredAt time.Time `json:"registered_at"`
}
