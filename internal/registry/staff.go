package registry

import (
	"sync"
	"time"

	"github.com/jcdoncaster/shift-management-bot/internal/domain"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// StaffRegistry owns the roster of staff members and enforces one entry per
// identity at the insertion boundary.
type StaffRegistry struct {
	mu      sync.RWMutex
	byID    map[string]int
	members []domain.StaffMember
}

// NewStaffRegistry builds a registry hydrated from previously persisted staff.
func NewStaffRegistry(members []domain.StaffMember) *StaffRegistry {
	r := &StaffRegistry{
		byID:    make(map[string]int, len(members)),
		members: make([]domain.StaffMember, 0, len(members)),
	}
	for _, m := range members {
		if _, exists := r.byID[m.Identity]; exists {
			continue
		}
		r.byID[m.Identity] = len(r.members)
		r.members = append(r.members, m)
	}
	return r
}

// Register inserts a new staff member. Fails with AlreadyRegistered when the
// identity is already present.
func (r *StaffRegistry) Register(identity, displayName, role, contact string, now time.Time) (domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[identity]; exists {
		return domain.StaffMember{}, apperrors.NewAlreadyRegistered(identity)
	}

	member := domain.StaffMember{
		Identity:     identity,
		DisplayName:  displayName,
		Role:         role,
		Contact:      contact,
		RegisteredAt: now,
	}
	r.byID[identity] = len(r.members)
	r.members = append(r.members, member)
	return member, nil
}

// Find looks up a staff member by identity.
func (r *StaffRegistry) Find(identity string) (domain.StaffMember, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[identity]
	if !ok {
		return domain.StaffMember{}, false
	}
	return r.members[idx], true
}

// Count returns the total number of registered staff.
func (r *StaffRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// List returns the roster in registration order.
func (r *StaffRegistry) List() []domain.StaffMember {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StaffMember, len(r.members))
	copy(out, r.members)
	return out
}
