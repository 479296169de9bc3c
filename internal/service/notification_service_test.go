package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/events"
)

func newNotificationFixture() (*NotificationService, *fakeNotificationRepo, *fakePublisher, events.Dispatcher) {
	repo := &fakeNotificationRepo{}
	publisher := newFakePublisher()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, publisher, dispatcher, zap.NewNop())
	svc.RegisterHandlers()
	return svc, repo, publisher, dispatcher
}

func TestRegistrationCreatedNotifiesUserAndAdmins(t *testing.T) {
	_, repo, publisher, dispatcher := newNotificationFixture()

	userID := "user-7"
	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventRegistrationCreated,
		EventID:   "event-1",
		Actor:     events.Actor{UserID: &userID},
		Timestamp: time.Now(),
		Payload: events.RegistrationCreatedPayload{
			RegistrationID:   "reg-1",
			EventTitle:       "Summer Beats",
			FullName:         "Dana Fox",
			TicketQuantity:   2,
			ConfirmationCode: "abc-123",
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, userID, repo.created[0].UserID)
	assert.Equal(t, domain.NotificationTypeRegistration, repo.created[0].Type)
	assert.Contains(t, repo.created[0].Message, "Summer Beats")
	assert.Contains(t, repo.created[0].Message, "abc-123")

	assert.Len(t, publisher.userMessages[userID], 1)
	assert.Len(t, publisher.adminMessages, 1)
}

func TestGuestRegistrationOnlyBroadcastsToAdmins(t *testing.T) {
	_, repo, publisher, dispatcher := newNotificationFixture()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-2",
		Type:    events.EventRegistrationCreated,
		EventID: "event-1",
		Payload: events.RegistrationCreatedPayload{
			RegistrationID: "reg-2",
			EventTitle:     "Summer Beats",
			FullName:       "Guest Gal",
			TicketQuantity: 1,
		},
	})
	require.NoError(t, err)

	assert.Empty(t, repo.created)
	assert.Empty(t, publisher.userMessages)
	assert.Len(t, publisher.adminMessages, 1)
}

func TestReviewCreatedBroadcastsToAdminsOnly(t *testing.T) {
	_, repo, publisher, dispatcher := newNotificationFixture()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-3",
		Type:    events.EventReviewCreated,
		EventID: "event-1",
		Payload: events.ReviewCreatedPayload{
			ReviewID:   "rev-1",
			EventTitle: "Summer Beats",
			Username:   "dana",
			Rating:     4,
			Sentiment:  domain.SentimentPositive,
		},
	})
	require.NoError(t, err)

	assert.Empty(t, repo.created)
	assert.Len(t, publisher.adminMessages, 1)
}

func TestReviewRespondedNotifiesAuthor(t *testing.T) {
	_, repo, publisher, dispatcher := newNotificationFixture()

	adminID := "admin-1"
	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-4",
		Type:    events.EventReviewResponded,
		EventID: "event-1",
		Actor:   events.Actor{UserID: &adminID, IsAdmin: true},
		Payload: events.ReviewRespondedPayload{
			ReviewID:   "rev-1",
			AuthorID:   "user-7",
			EventTitle: "Summer Beats",
			Response:   "Thanks for coming!",
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "user-7", repo.created[0].UserID)
	assert.Equal(t, domain.NotificationTypeReviewResponse, repo.created[0].Type)
	assert.Len(t, publisher.userMessages["user-7"], 1)
	assert.Empty(t, publisher.adminMessages)
}

func TestEventUpdatedBroadcastsStatus(t *testing.T) {
	_, _, publisher, dispatcher := newNotificationFixture()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-5",
		Type:    events.EventEventCancelled,
		EventID: "event-1",
		Payload: events.EventUpdatedPayload{
			EventTitle: "Summer Beats",
			NewStatus:  domain.EventStatusCancelled,
		},
	})
	require.NoError(t, err)

	require.Len(t, publisher.adminMessages, 1)
	msg, ok := publisher.adminMessages[0].(realtimePayload)
	require.True(t, ok)
	assert.Contains(t, msg.Message, "CANCELLED")
}

func TestPersistFailureSkipsPush(t *testing.T) {
	_, repo, publisher, dispatcher := newNotificationFixture()
	repo.failing = true

	userID := "user-9"
	err := dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-6",
		Type:    events.EventRegistrationCreated,
		EventID: "event-1",
		Actor:   events.Actor{UserID: &userID},
		Payload: events.RegistrationCreatedPayload{
			RegistrationID: "reg-9",
			EventTitle:     "Summer Beats",
		},
	})
	require.NoError(t, err)

	assert.Empty(t, publisher.userMessages[userID])
	// Admin broadcast is live-only and does not depend on storage.
	assert.Len(t, publisher.adminMessages, 1)
}

func TestMarkReadFlows(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture()
	repo.created = []*domain.Notification{
		{ID: "n1", UserID: "user-1"},
		{ID: "n2", UserID: "user-1"},
		{ID: "n3", UserID: "user-2"},
	}

	count, err := svc.CountUnread(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkRead(context.Background(), "n1", "user-1"))
	unread, err := svc.ListForUser(context.Background(), "user-1", true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, svc.MarkAllRead(context.Background(), "user-1"))
	count, err = svc.CountUnread(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// Other users' records are untouched.
	count, err = svc.CountUnread(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
