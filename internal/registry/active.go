package registry

import (
	"sync"
	"time"

	"github.com/jcdoncaster/shift-management-bot/internal/domain"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// ActiveShiftTracker owns the transient set of currently open shifts, keyed by
// identity, with at most one open shift per identity. It always starts empty:
// an open shift never survives a process restart.
type ActiveShiftTracker struct {
	mu     sync.RWMutex
	shifts map[string]domain.ActiveShift
}

// NewActiveShiftTracker builds an empty tracker.
func NewActiveShiftTracker() *ActiveShiftTracker {
	return &ActiveShiftTracker{shifts: make(map[string]domain.ActiveShift)}
}

// Start opens a shift for the identity. Fails with AlreadyClockedIn when a
// shift is already open.
func (t *ActiveShiftTracker) Start(identity, displayName, role string, now time.Time) (domain.ActiveShift, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.shifts[identity]; exists {
		return domain.ActiveShift{}, apperrors.NewAlreadyClockedIn(identity)
	}

	shift := domain.ActiveShift{
		Identity:    identity,
		DisplayName: displayName,
		Role:        role,
		ClockInAt:   now,
	}
	t.shifts[identity] = shift
	return shift, nil
}

// End closes the open shift for the identity and returns it together with the
// worked whole minutes. Fails with NotClockedIn when no shift is open. When
// now is earlier than the clock-in instant the duration clamps to zero rather
// than going negative.
func (t *ActiveShiftTracker) End(identity string, now time.Time) (domain.ActiveShift, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	shift, exists := t.shifts[identity]
	if !exists {
		return domain.ActiveShift{}, 0, apperrors.NewNotClockedIn(identity)
	}

	delete(t.shifts, identity)
	return shift, domain.DurationMinutes(shift.ClockInAt, now), nil
}

// Peek returns the open shift for the identity without mutating anything.
func (t *ActiveShiftTracker) Peek(identity string) (domain.ActiveShift, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	shift, ok := t.shifts[identity]
	return shift, ok
}

// Size returns the count of all open shifts.
func (t *ActiveShiftTracker) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.shifts)
}
