package registry

import (
	"sync"

	"github.com/jcdoncaster/shift-management-bot/internal/domain"
)

// DefaultHistoryLimit is how many records Recent returns when the caller does
// not ask for a specific limit.
const DefaultHistoryLimit = 5

// ShiftHistoryStore owns the append-only log of completed shifts. Records are
// kept in insertion order, which equals clock-out completion order.
type ShiftHistoryStore struct {
	mu      sync.RWMutex
	records []domain.ShiftRecord
}

// NewShiftHistoryStore builds a store hydrated from previously persisted shifts.
func NewShiftHistoryStore(records []domain.ShiftRecord) *ShiftHistoryStore {
	s := &ShiftHistoryStore{records: make([]domain.ShiftRecord, len(records))}
	copy(s.records, records)
	return s
}

// Append inserts a completed shift at the end of the log.
func (s *ShiftHistoryStore) Append(record domain.ShiftRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// ForIdentity returns all records for the identity in insertion order.
func (s *ShiftHistoryStore) ForIdentity(identity string) []domain.ShiftRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ShiftRecord
	for _, rec := range s.records {
		if rec.Identity == identity {
			out = append(out, rec)
		}
	}
	return out
}

// Recent returns the last n records for the identity, most recent first.
// A non-positive n falls back to DefaultHistoryLimit.
func (s *ShiftHistoryStore) Recent(identity string, n int) []domain.ShiftRecord {
	if n <= 0 {
		n = DefaultHistoryLimit
	}

	all := s.ForIdentity(identity)
	if len(all) > n {
		all = all[len(all)-n:]
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}

// Count returns the total number of completed shifts.
func (s *ShiftHistoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// CountForIdentity returns the number of completed shifts for one identity.
func (s *ShiftHistoryStore) CountForIdentity(identity string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records {
		if rec.Identity == identity {
			count++
		}
	}
	return count
}

// List returns the full log in insertion order.
func (s *ShiftHistoryStore) List() []domain.ShiftRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ShiftRecord, len(s.records))
	copy(out, s.records)
	return out
}
