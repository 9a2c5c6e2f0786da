package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/medlegalmatch/auth-service/internal/config"
	"github.com/medlegalmatch/auth-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
}

func (n *NotificationService) handleAccountRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AccountRegistered",
		zap.String("account_id", payload.AccountID),
		zap.String("user_type", payload.UserType))
	n.sendWelcomeEmailStub(ctx, payload)
	return nil
}

// sendWelcomeEmailStub stands in for outbound mail delivery; no mail provider
// is wired yet.
func (n *NotificationService) sendWelcomeEmailStub(_ context.Context, payload events.AccountRegisteredPayload) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendWelcomeEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("account_id", payload.AccountID))
}
