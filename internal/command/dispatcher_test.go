package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jcdoncaster/shift-management-bot/internal/config"
	"github.com/jcdoncaster/shift-management-bot/internal/events"
	"github.com/jcdoncaster/shift-management-bot/internal/registry"
	"github.com/jcdoncaster/shift-management-bot/internal/service"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	engine := service.NewShiftEngine(
		config.StorageConfig{},
		service.Dependencies{
			Staff:      registry.NewStaffRegistry(nil),
			Active:     registry.NewActiveShiftTracker(),
			History:    registry.NewShiftHistoryStore(nil),
			Dispatcher: events.NewInMemoryDispatcher(),
		},
	)
	return NewDispatcher(engine, zap.NewNop())
}

func TestDispatchRegister(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()
	alice := Caller{Identity: "U1", DisplayName: "Alice"}

	reply := d.Dispatch(ctx, alice, "register Manager a@x.com")
	assert.Equal(t, "Registered Alice as Manager (a@x.com).", reply)

	reply = d.Dispatch(ctx, alice, "register Manager a@x.com")
	assert.Equal(t, "You are already registered!", reply)
}

func TestDispatchRegisterUsage(t *testing.T) {
	d := newTestDispatcher(t)

	reply := d.Dispatch(context.Background(), Caller{Identity: "U1"}, "register Manager")
	assert.Equal(t, "Usage: register <role> <contact>", reply)
}

func TestDispatchCaseInsensitiveKeyword(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()
	alice := Caller{Identity: "U1", DisplayName: "Alice"}

	d.Dispatch(ctx, alice, "REGISTER Manager a@x.com")
	reply := d.Dispatch(ctx, alice, "ClockIn")
	assert.Contains(t, reply, "Clocked in at")
}

func TestDispatchShiftLifecycle(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()
	alice := Caller{Identity: "U1", DisplayName: "Alice"}

	assert.Equal(t, "Register first: register <role> <contact>", d.Dispatch(ctx, alice, "clockin"))
	assert.Equal(t, "You are not clocked in!", d.Dispatch(ctx, alice, "clockout"))

	d.Dispatch(ctx, alice, "register Barista a@x.com")

	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return t0 }
	assert.Contains(t, d.Dispatch(ctx, alice, "clockin"), "09:00")
	assert.Equal(t, "You are already clocked in!", d.Dispatch(ctx, alice, "clockin"))

	d.now = func() time.Time { return t0.Add(95 * time.Minute) }
	assert.Equal(t, "Clocked out! Worked 1h 35m.", d.Dispatch(ctx, alice, "clockout"))
}

func TestDispatchStatusAndShifts(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()
	alice := Caller{Identity: "U1", DisplayName: "Alice"}

	assert.Equal(t, "No shift history found.", d.Dispatch(ctx, alice, "myshifts"))

	d.Dispatch(ctx, alice, "register Barista a@x.com")
	assert.Equal(t, "CLOCKED OUT. Total shifts: 0.", d.Dispatch(ctx, alice, "mystatus"))

	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return t0 }
	d.Dispatch(ctx, alice, "clockin")

	d.now = func() time.Time { return t0.Add(125 * time.Minute) }
	assert.Equal(t, "CLOCKED IN for 2h 5m (since 09:00).", d.Dispatch(ctx, alice, "mystatus"))

	d.Dispatch(ctx, alice, "clockout")
	reply := d.Dispatch(ctx, alice, "myshifts")
	assert.Contains(t, reply, "Your last 1 shifts:")
	assert.Contains(t, reply, "2024-03-01 - 2h 5m (Barista)")
}

func TestDispatchAdminStats(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	assert.Equal(t, "Admin only.", d.Dispatch(ctx, Caller{Identity: "U1"}, "admin-stats"))

	d.Dispatch(ctx, Caller{Identity: "U1", DisplayName: "Alice"}, "register Manager a@x.com")
	reply := d.Dispatch(ctx, Caller{Identity: "U9", IsAdmin: true}, "admin-stats")
	assert.Equal(t, "Staff: 1 | Total shifts: 0 | Active now: 0", reply)
}

func TestDispatchUnknownAndEmpty(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	assert.Empty(t, d.Dispatch(ctx, Caller{Identity: "U1"}, "frobnicate"))
	assert.Empty(t, d.Dispatch(ctx, Caller{Identity: "U1"}, "   "))
}

func TestDispatchHelpAndPing(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	assert.True(t, strings.Contains(d.Dispatch(ctx, Caller{Identity: "U1"}, "help"), "register <role> <contact>"))
	assert.Equal(t, "Pong! Service is online.", d.Dispatch(ctx, Caller{Identity: "U1"}, "ping"))
}
