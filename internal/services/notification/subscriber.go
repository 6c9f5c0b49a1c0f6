// Package notification prints a human-readable line for every order status
// change published by the web service.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"food-delivery/internal/logger"
	"food-delivery/internal/messaging"
	"food-delivery/internal/models"
)

// Consumer delivers raw message bodies to a handler until ctx is done
type Consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber handles notification messages
type Subscriber struct {
	consumer Consumer
	logger   *logger.Logger
	out      io.Writer
}

// NewSubscriber creates a new notification subscriber writing to out
func NewSubscriber(consumer Consumer, log *logger.Logger, out io.Writer) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		out:      out,
	}
}

// Start consumes notifications until ctx is canceled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)

	s.logger.Info("graceful_shutdown", "Stopping notification subscriber", requestID, nil)
	if closeErr := s.consumer.Close(); closeErr != nil {
		s.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleNotification processes incoming status update notifications
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.RequestIDFromContext(ctx)

	var statusUpdate models.StatusUpdateMessage
	if err := json.Unmarshal(body, &statusUpdate); err != nil {
		return models.ValidationError{Field: "body", Message: fmt.Sprintf("failed to parse notification: %v", err)}
	}
	if statusUpdate.OrderID <= 0 || statusUpdate.NewStatus == "" {
		return models.ValidationError{Field: "body", Message: fmt.Sprintf("incomplete notification: %s", body)}
	}

	fmt.Fprintln(s.out, formatNotification(&statusUpdate))

	s.logger.Info("notification_displayed", "Notification displayed to user", requestID, map[string]interface{}{
		"order_id":   statusUpdate.OrderID,
		"old_status": statusUpdate.OldStatus,
		"new_status": statusUpdate.NewStatus,
		"changed_by": statusUpdate.ChangedBy,
	})
	return nil
}

// formatNotification creates a human-readable notification message
func formatNotification(statusUpdate *models.StatusUpdateMessage) string {
	timestamp := statusUpdate.Timestamp.Format("2006-01-02 15:04:05")
	id := statusUpdate.OrderID

	switch models.OrderStatus(statusUpdate.NewStatus) {
	case models.StatusConfirmed:
		return fmt.Sprintf("👍 [%s] Order #%d has been confirmed by %s.", timestamp, id, statusUpdate.ChangedBy)
	case models.StatusPreparing:
		return fmt.Sprintf("🍳 [%s] Order #%d is now being prepared.", timestamp, id)
	case models.StatusOutForDelivery:
		return fmt.Sprintf("🛵 [%s] Order #%d is out for delivery!", timestamp, id)
	case models.StatusDelivered:
		return fmt.Sprintf("🎉 [%s] Order #%d has been delivered! Thank you for your business.", timestamp, id)
	case models.StatusCancelled:
		return fmt.Sprintf("❌ [%s] Order #%d has been cancelled.", timestamp, id)
	default:
		return fmt.Sprintf("📋 [%s] Order #%d status changed from '%s' to '%s' by %s.",
			timestamp, id, statusUpdate.OldStatus, statusUpdate.NewStatus, statusUpdate.ChangedBy)
	}
}
