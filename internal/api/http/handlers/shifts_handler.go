package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcdoncaster/shift-management-bot/internal/api/dto"
	"github.com/jcdoncaster/shift-management-bot/internal/service"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// ShiftsHandler exposes clock-in and clock-out.
type ShiftsHandler struct {
	engine *service.ShiftEngine
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(engine *service.ShiftEngine) *ShiftsHandler {
	return &ShiftsHandler{engine: engine}
}

// ClockIn handles POST /shifts/clockin.
func (h *ShiftsHandler) ClockIn(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identity == "" {
		return apperrors.NewValidationError("identity required", nil)
	}

	shift, err := h.engine.ClockIn(c.UserContext(), req.Identity, time.Now())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ActiveShiftResponse{
		Identity:    shift.Identity,
		DisplayName: shift.DisplayName,
		Role:        shift.Role,
		ClockInAt:   shift.ClockInAt,
	}})
}

// ClockOut handles POST /shifts/clockout.
func (h *ShiftsHandler) ClockOut(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identity == "" {
		return apperrors.NewValidationError("identity required", nil)
	}

	record, err := h.engine.ClockOut(c.UserContext(), req.Identity, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftRecordResponse(record)})
}
