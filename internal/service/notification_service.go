package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/tour-service/internal/events"
)

// NotificationService reacts to domain events with mail and logging. The
// reset mail itself is sent inline in the request path because its failure
// must clear the stored token; events here are fire-and-forget.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, mailer: mailer, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserSignedUp, n.handleUserSignedUp)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventReviewCreated, n.handleReviewCreated)
}

func (n *NotificationService) handleUserSignedUp(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserSignedUpPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserSignedUp", zap.String("user_id", event.SubjectID))
	if err := n.mailer.SendWelcome(ctx, payload.Email, payload.Name); err != nil {
		n.logger.Warn("welcome mail failed", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("PasswordResetRequested", zap.String("user_id", event.SubjectID))
	return nil
}

func (n *NotificationService) handleReviewCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReviewCreated", zap.String("review_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}
