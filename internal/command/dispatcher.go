package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jcdoncaster/shift-management-bot/internal/service"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// Caller identifies who issued the inbound command. Identity, display name
// and the admin flag arrive from the chat platform, which also enforces
// permissions.
type Caller struct {
	Identity    string
	DisplayName string
	IsAdmin     bool
}

// Dispatcher maps one inbound command line to exactly one engine call and
// renders the user-facing reply text. Keywords are case-insensitive and
// arguments space-delimited.
type Dispatcher struct {
	engine *service.ShiftEngine
	logger *zap.Logger
	now    func() time.Time
}

// NewDispatcher constructs the dispatcher.
func NewDispatcher(engine *service.ShiftEngine, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{engine: engine, logger: logger, now: time.Now}
}

// Dispatch executes the command line and returns the reply. Unknown keywords
// yield an empty reply. An unexpected panic inside a handler is recovered,
// logged and reported as a generic failure; one bad command never takes the
// process down.
func (d *Dispatcher) Dispatch(ctx context.Context, caller Caller, line string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command handler panic", zap.Any("panic", r), zap.String("line", line))
			reply = "An error occurred. Please try again."
		}
	}()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "register":
		return d.handleRegister(ctx, caller, args)
	case "clockin":
		return d.handleClockIn(ctx, caller)
	case "clockout":
		return d.handleClockOut(ctx, caller)
	case "mystatus":
		return d.handleStatus(caller)
	case "myshifts":
		return d.handleMyShifts(caller)
	case "admin-stats":
		return d.handleAdminStats(caller)
	case "help":
		return helpText
	case "ping":
		return "Pong! Service is online."
	default:
		return ""
	}
}

const helpText = "Commands:\n" +
	"  register <role> <contact> - join the roster\n" +
	"  clockin                   - start a shift\n" +
	"  clockout                  - end a shift\n" +
	"  mystatus                  - check your status\n" +
	"  myshifts                  - view your last shifts\n" +
	"  admin-stats               - aggregate statistics (admin)"

func (d *Dispatcher) handleRegister(ctx context.Context, caller Caller, args []string) string {
	if len(args) < 2 {
		return "Usage: register <role> <contact>"
	}

	member, err := d.engine.RegisterStaff(ctx, caller.Identity, caller.DisplayName, args[0], args[1])
	if err != nil {
		return translate(err)
	}
	return fmt.Sprintf("Registered %s as %s (%s).", member.DisplayName, member.Role, member.Contact)
}

func (d *Dispatcher) handleClockIn(ctx context.Context, caller Caller) string {
	shift, err := d.engine.ClockIn(ctx, caller.Identity, d.now())
	if err != nil {
		return translate(err)
	}
	return fmt.Sprintf("Clocked in at %s. Have a good shift!", shift.ClockInAt.Format("15:04"))
}

func (d *Dispatcher) handleClockOut(ctx context.Context, caller Caller) string {
	record, err := d.engine.ClockOut(ctx, caller.Identity, d.now())
	if err != nil {
		return translate(err)
	}
	return fmt.Sprintf("Clocked out! Worked %dh %dm.", record.Hours, record.Minutes)
}

func (d *Dispatcher) handleStatus(caller Caller) string {
	status, err := d.engine.Status(caller.Identity, d.now())
	if err != nil {
		return translate(err)
	}
	if status.ClockedIn {
		return fmt.Sprintf("CLOCKED IN for %dh %dm (since %s).",
			status.ElapsedHours, status.ElapsedRem, status.ClockInAt.Format("15:04"))
	}
	return fmt.Sprintf("CLOCKED OUT. Total shifts: %d.", status.TotalShifts)
}

func (d *Dispatcher) handleMyShifts(caller Caller) string {
	records := d.engine.History(caller.Identity, 0)
	if len(records) == 0 {
		return "No shift history found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your last %d shifts:", len(records))
	for _, rec := range records {
		fmt.Fprintf(&b, "\n  %s - %dh %dm (%s)", rec.Date, rec.Hours, rec.Minutes, rec.Role)
	}
	return b.String()
}

func (d *Dispatcher) handleAdminStats(caller Caller) string {
	if !caller.IsAdmin {
		return "Admin only."
	}

	stats := d.engine.Stats()
	return fmt.Sprintf("Staff: %d | Total shifts: %d | Active now: %d",
		stats.StaffCount, stats.TotalShifts, stats.ActiveCount)
}

// translate turns typed engine failures into user-facing text. State
// conflicts are expected user conditions and are never logged as failures.
func translate(err error) string {
	switch {
	case apperrors.IsCode(err, apperrors.CodeAlreadyRegistered):
		return "You are already registered!"
	case apperrors.IsCode(err, apperrors.CodeNotRegistered):
		return "Register first: register <role> <contact>"
	case apperrors.IsCode(err, apperrors.CodeAlreadyClockedIn):
		return "You are already clocked in!"
	case apperrors.IsCode(err, apperrors.CodeNotClockedIn):
		return "You are not clocked in!"
	case apperrors.IsCode(err, "VALIDATION_FAILED"):
		return "Usage: register <role> <contact>"
	default:
		return "An error occurred. Please try again."
	}
}
