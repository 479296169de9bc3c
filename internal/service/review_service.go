package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vibecatcher/event-service/internal/ai"
	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/events"
	"github.com/vibecatcher/event-service/internal/repository"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// ReviewService coordinates review workflows, scoring sentiment at write
// time so listing aggregates never re-analyze text.
type ReviewService struct {
	reviews    repository.ReviewRepository
	eventsRepo repository.EventRepository
	eventSvc   *EventService
	dispatcher events.Dispatcher
}

// NewReviewService builds the service.
func NewReviewService(reviews repository.ReviewRepository, eventsRepo repository.EventRepository, eventSvc *EventService, dispatcher events.Dispatcher) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		eventsRepo: eventsRepo,
		eventSvc:   eventSvc,
		dispatcher: dispatcher,
	}
}

// Create validates and stores a review, then notifies admins.
func (s *ReviewService) Create(ctx context.Context, eventID string, user *domain.User, text string, rating int) (*domain.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("review text is required", nil)
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}

	review := &domain.Review{
		EventID:    eventID,
		UserID:     user.ID,
		Username:   user.Username,
		ReviewText: text,
		Rating:     rating,
		Sentiment:  ai.AnalyzeSentiment(text).Sentiment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.eventSvc.InvalidateListCache(ctx)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.New().String(),
		Type:      events.EventReviewCreated,
		EventID:   eventID,
		Actor:     events.Actor{UserID: &user.ID, IsAdmin: user.IsAdmin},
		Timestamp: time.Now(),
		Payload: events.ReviewCreatedPayload{
			ReviewID:   review.ID,
			EventTitle: event.Title,
			Username:   review.Username,
			Rating:     review.Rating,
			Sentiment:  review.Sentiment,
		},
	})
	return review, nil
}

// ListByEvent returns reviews for one event, newest first.
func (s *ReviewService) ListByEvent(ctx context.Context, eventID string) ([]domain.Review, error) {
	return s.reviews.ListByEvent(ctx, eventID)
}

// Respond records an admin reply on a review and notifies its author.
func (s *ReviewService) Respond(ctx context.Context, reviewID, response string, admin *domain.User) (*domain.Review, error) {
	if strings.TrimSpace(response) == "" {
		return nil, apperrors.NewValidationError("response text is required", nil)
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperrors.NewNotFound("review", map[string]any{"review_id": reviewID})
	}

	if err := s.reviews.SetAdminResponse(ctx, reviewID, response); err != nil {
		return nil, err
	}
	review.AdminResponse = &response

	eventTitle := review.EventID
	if event, err := s.eventsRepo.GetByID(ctx, review.EventID); err == nil {
		eventTitle = event.Title
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.New().String(),
		Type:      events.EventReviewResponded,
		EventID:   review.EventID,
		Actor:     events.Actor{UserID: &admin.ID, IsAdmin: true},
		Timestamp: time.Now(),
		Payload: events.ReviewRespondedPayload{
			ReviewID:   review.ID,
			AuthorID:   review.UserID,
			EventTitle: eventTitle,
			Response:   response,
		},
	})
	return review, nil
}

// Delete removes a review (admin moderation path).
func (s *ReviewService) Delete(ctx context.Context, reviewID string) error {
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.eventSvc.InvalidateListCache(ctx)
	return nil
}
