package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/queue"
	"github.com/spec-kit/shop-service/internal/service"
)

// StartNotificationWorker registers notification handlers and closes the
// publisher once ctx is cancelled.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, publisher queue.Publisher, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()

	if publisher == nil {
		return
	}
	go func() {
		<-ctx.Done()
		if err := publisher.Close(); err != nil {
			logger.Warn("closing notification publisher", zap.Error(err))
			return
		}
		logger.Info("notification publisher closed")
	}()
}
