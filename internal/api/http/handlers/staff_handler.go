package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcdoncaster/shift-management-bot/internal/api/dto"
	"github.com/jcdoncaster/shift-management-bot/internal/domain"
	"github.com/jcdoncaster/shift-management-bot/internal/service"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// StaffHandler exposes roster registration and per-staff queries.
type StaffHandler struct {
	engine *service.ShiftEngine
}

// NewStaffHandler constructs handler.
func NewStaffHandler(engine *service.ShiftEngine) *StaffHandler {
	return &StaffHandler{engine: engine}
}

// Register handles POST /staff/register.
func (h *StaffHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identity == "" || req.Role == "" || req.Contact == "" {
		return apperrors.NewValidationError("identity, role and contact required", nil)
	}

	member, err := h.engine.RegisterStaff(c.UserContext(), req.Identity, req.DisplayName, req.Role, req.Contact)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": staffResponse(member)})
}

// Status handles GET /staff/:identity/status.
func (h *StaffHandler) Status(c *fiber.Ctx) error {
	status, err := h.engine.Status(c.Params("identity"), time.Now())
	if err != nil {
		return err
	}

	resp := dto.StatusResponse{
		Staff:     staffResponse(status.Member),
		ClockedIn: status.ClockedIn,
	}
	if status.ClockedIn {
		clockInAt := status.ClockInAt
		elapsed := status.ElapsedMinutes
		resp.ClockInAt = &clockInAt
		resp.ElapsedMinutes = &elapsed
	} else {
		total := status.TotalShifts
		resp.TotalShifts = &total
	}
	return c.JSON(fiber.Map{"data": resp})
}

// History handles GET /staff/:identity/shifts.
func (h *StaffHandler) History(c *fiber.Ctx) error {
	limit := 0
	if val := c.Query("limit"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed < 1 {
			return apperrors.NewValidationError("limit must be a positive integer", nil)
		}
		limit = parsed
	}

	records := h.engine.History(c.Params("identity"), limit)
	resp := make([]dto.ShiftRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, shiftRecordResponse(rec))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func staffResponse(member domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		Identity:     member.Identity,
		DisplayName:  member.DisplayName,
		Role:         member.Role,
		Contact:      member.Contact,
		RegisteredAt: member.RegisteredAt,
	}
}

func shiftRecordResponse(rec domain.ShiftRecord) dto.ShiftRecordResponse {
	return dto.ShiftRecordResponse{
		ID:           rec.ID,
		Identity:     rec.Identity,
		DisplayName:  rec.DisplayName,
		Role:         rec.Role,
		ClockInAt:    rec.ClockInAt,
		ClockOutAt:   rec.ClockOutAt,
		Hours:        rec.Hours,
		Minutes:      rec.Minutes,
		TotalMinutes: rec.TotalMinutes,
		Date:         rec.Date,
	}
}
