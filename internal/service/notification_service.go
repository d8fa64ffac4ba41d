package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/queue"
)

// NotificationService turns domain events into email jobs on the queue.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  queue.Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, publisher queue.Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event", string(event.Type)))
		return nil
	}
	n.enqueue(ctx, queue.KeyWelcomeEmail, queue.EmailJob{
		Template: "welcome",
		To:       payload.Email,
		Subject:  "Welcome to " + n.appName(),
		Data:     map[string]string{"username": payload.Username},
	})
	return nil
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event", string(event.Type)))
		return nil
	}
	n.enqueue(ctx, queue.KeyPasswordResetEmail, queue.EmailJob{
		Template: "password_reset",
		To:       payload.Email,
		Subject:  n.appName() + " password reset",
		Data: map[string]string{
			"username":    payload.Username,
			"reset_token": payload.ResetToken,
			"expires_at":  payload.ExpiresAt.UTC().Format(time.RFC3339),
		},
	})
	return nil
}

// enqueue publishes without failing the caller; errors are only logged.
func (n *NotificationService) enqueue(ctx context.Context, key string, job queue.EmailJob) {
	if n.publisher == nil {
		return
	}
	job.From = n.cfg.EmailFrom
	job.CreatedAt = time.Now().UTC()
	if err := n.publisher.PublishJSON(ctx, key, job); err != nil {
		n.logger.Warn("failed to enqueue email", zap.String("routing_key", key), zap.String("to", job.To), zap.Error(err))
		return
	}
	n.logger.Debug("email enqueued", zap.String("routing_key", key), zap.String("to", job.To))
}

func (n *NotificationService) appName() string {
	if name := strings.TrimSpace(n.cfg.AppName); name != "" {
		return name
	}
	return "the shop"
}
