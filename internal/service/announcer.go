package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jcdoncaster/shift-management-bot/internal/config"
	"github.com/jcdoncaster/shift-management-bot/internal/events"
)

// Announcer surfaces shift lifecycle events: structured log announcements,
// plus a webhook stub when a URL is configured. It stands in for the chat
// channel announcements of the bot surface.
type Announcer struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AnnounceConfig
}

// NewAnnouncer creates the service.
func NewAnnouncer(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AnnounceConfig) *Announcer {
	return &Announcer{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *Announcer) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventStaffRegistered, a.handleStaffRegistered)
	a.dispatcher.Subscribe(events.EventShiftStarted, a.handleShiftStarted)
	a.dispatcher.Subscribe(events.EventShiftCompleted, a.handleShiftCompleted)
}

func (a *Announcer) handleStaffRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("StaffRegistered", zap.String("identity", event.Identity), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *Announcer) handleShiftStarted(ctx context.Context, event events.Event) error {
	a.logger.Info("ShiftStarted", zap.String("identity", event.Identity), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *Announcer) handleShiftCompleted(ctx context.Context, event events.Event) error {
	a.logger.Info("ShiftCompleted", zap.String("identity", event.Identity), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *Announcer) sendWebhookStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("identity", event.Identity),
		zap.String("event_type", string(event.Type)))
}
