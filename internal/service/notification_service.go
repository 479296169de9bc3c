package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/events"
	"github.com/vibecatcher/event-service/internal/realtime"
	"github.com/vibecatcher/event-service/internal/repository"
)

// NotificationService turns domain events into persisted notification
// records and pushes them over the realtime channel. It is the only
// component that consumes the gateway's publisher.
type NotificationService struct {
	notifications repository.NotificationRepository
	publisher     realtime.Publisher
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, publisher realtime.Publisher, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		publisher:     publisher,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRegistrationCreated, n.handleRegistrationCreated)
	n.dispatcher.Subscribe(events.EventReviewCreated, n.handleReviewCreated)
	n.dispatcher.Subscribe(events.EventReviewResponded, n.handleReviewResponded)
	n.dispatcher.Subscribe(events.EventEventUpdated, n.handleEventUpdated)
	n.dispatcher.Subscribe(events.EventEventCancelled, n.handleEventUpdated)
}

// ListForUser returns the caller's notification records.
func (n *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, userID, unreadOnly)
}

// CountUnread returns the caller's unread badge count.
func (n *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return n.notifications.CountUnread(ctx, userID)
}

// MarkRead flags one record as read.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return n.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead flags all of the caller's records as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return n.notifications.MarkAllRead(ctx, userID)
}

func (n *NotificationService) handleRegistrationCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RegistrationCreatedPayload)
	if !ok {
		return nil
	}

	if event.Actor.UserID != nil {
		message := fmt.Sprintf("Your registration for %q is confirmed. Confirmation code: %s",
			payload.EventTitle, payload.ConfirmationCode)
		n.notify(ctx, *event.Actor.UserID, message, domain.NotificationTypeRegistration, &payload.RegistrationID, false)
	}

	n.publisher.PublishToAdmins(realtimePayload{
		Message:   fmt.Sprintf("%s registered for %q (%d tickets)", payload.FullName, payload.EventTitle, payload.TicketQuantity),
		Type:      string(domain.NotificationTypeRegistration),
		RelatedID: &payload.RegistrationID,
		CreatedAt: event.Timestamp,
	})
	return nil
}

func (n *NotificationService) handleReviewCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReviewCreatedPayload)
	if !ok {
		return nil
	}

	n.publisher.PublishToAdmins(realtimePayload{
		Message:   fmt.Sprintf("%s left a %d-star review on %q", payload.Username, payload.Rating, payload.EventTitle),
		Type:      string(domain.NotificationTypeReview),
		RelatedID: &payload.ReviewID,
		CreatedAt: event.Timestamp,
	})
	return nil
}

func (n *NotificationService) handleReviewResponded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReviewRespondedPayload)
	if !ok {
		return nil
	}

	if payload.AuthorID == "" {
		return nil
	}
	message := fmt.Sprintf("An organizer responded to your review of %q", payload.EventTitle)
	n.notify(ctx, payload.AuthorID, message, domain.NotificationTypeReviewResponse, &payload.ReviewID, false)
	return nil
}

func (n *NotificationService) handleEventUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EventUpdatedPayload)
	if !ok {
		return nil
	}
	n.publisher.PublishToAdmins(realtimePayload{
		Message:   fmt.Sprintf("Event %q is now %s", payload.EventTitle, payload.NewStatus),
		Type:      string(domain.NotificationTypeEventUpdate),
		RelatedID: &event.EventID,
		CreatedAt: event.Timestamp,
	})
	return nil
}

// notify persists a record and pushes it over the per-user channel.
func (n *NotificationService) notify(ctx context.Context, userID, message string, kind domain.NotificationType, relatedID *string, isAdmin bool) {
	record := &domain.Notification{
		UserID:              userID,
		Message:             message,
		Type:                kind,
		RelatedID:           relatedID,
		IsAdminNotification: isAdmin,
	}
	if err := n.notifications.Create(ctx, record); err != nil {
		n.logger.Error("persist notification", zap.Error(err), zap.String("user_id", userID))
		return
	}

	n.publisher.PublishToUser(userID, realtimePayload{
		ID:        record.ID,
		Message:   record.Message,
		Type:      string(record.Type),
		RelatedID: record.RelatedID,
		CreatedAt: record.CreatedAt,
	})
}

// realtimePayload is the notification shape observed by connected clients.
type realtimePayload struct {
	ID        string    `json:"id,omitempty"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID *string   `json:"relatedId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
