package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcdoncaster/shift-management-bot/internal/config"
	"github.com/jcdoncaster/shift-management-bot/internal/domain"
	"github.com/jcdoncaster/shift-management-bot/internal/events"
	"github.com/jcdoncaster/shift-management-bot/internal/observability"
	"github.com/jcdoncaster/shift-management-bot/internal/registry"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// Saver queues a durable snapshot save without blocking the caller.
// Satisfied by persistence.Manager.
type Saver interface {
	RequestSave()
}

// ShiftEngine orchestrates the registry, tracker and history store to run the
// per-identity shift state machine. It holds no shift state of its own.
//
// One mutex spans every mutating operation so each completes atomically across
// the three registries: history insertion order always equals clock-out
// completion order, even with parallel HTTP handlers.
type ShiftEngine struct {
	mu         sync.Mutex
	staff      *registry.StaffRegistry
	active     *registry.ActiveShiftTracker
	history    *registry.ShiftHistoryStore
	dispatcher events.Dispatcher
	saver      Saver
	metrics    *observability.Metrics

	saveOnMutation bool
}

// Dependencies encapsulates the registries and collaborators the engine
// composes. Saver and Metrics are optional.
type Dependencies struct {
	Staff      *registry.StaffRegistry
	Active     *registry.ActiveShiftTracker
	History    *registry.ShiftHistoryStore
	Dispatcher events.Dispatcher
	Saver      Saver
	Metrics    *observability.Metrics
}

// StaffStatus is the result of a status query.
type StaffStatus struct {
	Member         domain.StaffMember
	ClockedIn      bool
	ClockInAt      time.Time
	ElapsedMinutes int
	ElapsedHours   int
	ElapsedRem     int
	TotalShifts    int
}

// Stats is the read-only admin aggregate. Authorization is the caller's
// concern.
type Stats struct {
	StaffCount  int
	TotalShifts int
	ActiveCount int
}

// NewShiftEngine constructs the engine.
func NewShiftEngine(cfg config.StorageConfig, deps Dependencies) *ShiftEngine {
	return &ShiftEngine{
		staff:          deps.Staff,
		active:         deps.Active,
		history:        deps.History,
		dispatcher:     deps.Dispatcher,
		saver:          deps.Saver,
		metrics:        deps.Metrics,
		saveOnMutation: cfg.SaveOnMutation,
	}
}

// RegisterStaff adds a new roster entry. Fails with AlreadyRegistered when the
// identity already exists.
func (e *ShiftEngine) RegisterStaff(ctx context.Context, identity, displayName, role, contact string) (domain.StaffMember, error) {
	if strings.TrimSpace(identity) == "" {
		return domain.StaffMember{}, apperrors.NewValidationError("identity is required", nil)
	}

	e.mu.Lock()
	member, err := e.staff.Register(identity, displayName, role, contact, time.Now())
	e.mu.Unlock()
	if err != nil {
		return domain.StaffMember{}, err
	}

	e.metrics.RecordOperation("register")
	e.requestSave()
	e.publish(ctx, events.EventStaffRegistered, identity, events.StaffRegisteredPayload{
		DisplayName: member.DisplayName,
		Role:        member.Role,
		Contact:     member.Contact,
	})
	return member, nil
}

// ClockIn opens a shift at now. Fails with NotRegistered for unknown
// identities and AlreadyClockedIn when a shift is already open.
func (e *ShiftEngine) ClockIn(ctx context.Context, identity string, now time.Time) (domain.ActiveShift, error) {
	e.mu.Lock()
	member, ok := e.staff.Find(identity)
	if !ok {
		e.mu.Unlock()
		return domain.ActiveShift{}, apperrors.NewNotRegistered(identity)
	}
	shift, err := e.active.Start(identity, member.DisplayName, member.Role, now)
	e.mu.Unlock()
	if err != nil {
		return domain.ActiveShift{}, err
	}

	e.metrics.RecordOperation("clock_in")
	e.publish(ctx, events.EventShiftStarted, identity, events.ShiftStartedPayload{
		DisplayName: shift.DisplayName,
		Role:        shift.Role,
		ClockInAt:   shift.ClockInAt,
	})
	return shift, nil
}

// ClockOut closes the open shift at now, appends the completed record to the
// history log and requests a durable save. Fails with NotClockedIn when no
// shift is open.
func (e *ShiftEngine) ClockOut(ctx context.Context, identity string, now time.Time) (domain.ShiftRecord, error) {
	e.mu.Lock()
	shift, _, err := e.active.End(identity, now)
	if err != nil {
		e.mu.Unlock()
		return domain.ShiftRecord{}, err
	}
	record := domain.NewShiftRecord(uuid.NewString(), shift, now)
	e.history.Append(record)
	e.mu.Unlock()

	e.metrics.RecordOperation("clock_out")
	e.requestSave()
	e.publish(ctx, events.EventShiftCompleted, identity, events.ShiftCompletedPayload{
		RecordID:     record.ID,
		DisplayName:  record.DisplayName,
		Role:         record.Role,
		ClockInAt:    record.ClockInAt,
		ClockOutAt:   record.ClockOutAt,
		TotalMinutes: record.TotalMinutes,
	})
	return record, nil
}

// Status reports the open-shift elapsed time when clocked in, or the
// historical shift count when clocked out. Fails with NotRegistered for
// unknown identities.
func (e *ShiftEngine) Status(identity string, now time.Time) (StaffStatus, error) {
	member, ok := e.staff.Find(identity)
	if !ok {
		return StaffStatus{}, apperrors.NewNotRegistered(identity)
	}

	status := StaffStatus{Member: member}
	if shift, open := e.active.Peek(identity); open {
		elapsed := domain.DurationMinutes(shift.ClockInAt, now)
		status.ClockedIn = true
		status.ClockInAt = shift.ClockInAt
		status.ElapsedMinutes = elapsed
		status.ElapsedHours = elapsed / 60
		status.ElapsedRem = elapsed % 60
	} else {
		status.TotalShifts = e.history.CountForIdentity(identity)
	}
	return status, nil
}

// History returns the last limit completed shifts for the identity, most
// recent first.
func (e *ShiftEngine) History(identity string, limit int) []domain.ShiftRecord {
	return e.history.Recent(identity, limit)
}

// Stats returns the admin aggregate counts.
func (e *ShiftEngine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		StaffCount:  e.staff.Count(),
		TotalShifts: e.history.Count(),
		ActiveCount: e.active.Size(),
	}
}

// Snapshot assembles the durable image of the roster and history log. Open
// shifts are transient and never serialized.
func (e *ShiftEngine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Snapshot{
		Staff:    e.staff.List(),
		Shifts:   e.history.List(),
		Settings: map[string]string{},
	}
}

func (e *ShiftEngine) requestSave() {
	if e.saver == nil || !e.saveOnMutation {
		return
	}
	e.saver.RequestSave()
}

func (e *ShiftEngine) publish(ctx context.Context, eventType events.EventType, identity string, payload interface{}) {
	if e.dispatcher == nil {
		return
	}
	_ = e.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Identity:  identity,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
