package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcdoncaster/shift-management-bot/internal/api/dto"
	"github.com/jcdoncaster/shift-management-bot/internal/command"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// CommandsHandler is the boundary the chat gateway calls with inbound command
// lines. The gateway authenticates the caller and enforces chat-side
// permissions before forwarding.
type CommandsHandler struct {
	dispatcher *command.Dispatcher
}

// NewCommandsHandler constructs handler.
func NewCommandsHandler(dispatcher *command.Dispatcher) *CommandsHandler {
	return &CommandsHandler{dispatcher: dispatcher}
}

// Dispatch handles POST /commands.
func (h *CommandsHandler) Dispatch(c *fiber.Ctx) error {
	var req dto.CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identity == "" || req.Text == "" {
		return apperrors.NewValidationError("identity and text required", nil)
	}

	reply := h.dispatcher.Dispatch(c.UserContext(), command.Caller{
		Identity:    req.Identity,
		DisplayName: req.DisplayName,
		IsAdmin:     req.IsAdmin,
	}, req.Text)

	return c.JSON(fiber.Map{"data": dto.CommandResponse{Reply: reply}})
}
