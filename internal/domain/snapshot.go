package domain

// Snapshot is the complete durable image of the roster plus the historical
// shift log. Open shifts are intentionally absent: they are transient state
// for the current process run.
type Snapshot struct {
	Staff    []StaffMember     `json:"staff"`
	Shifts   []ShiftRecord     `json:"shifts"`
	Settings map[string]string `json:"settings"`
}

// EmptySnapshot returns a snapshot with no staff and no shifts. Used when the
// storage location does not exist yet or its content cannot be parsed.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Staff:    []StaffMember{},
		Shifts:   []ShiftRecord{},
		Settings: map[string]string{},
	}
}
