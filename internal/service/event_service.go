package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/events"
	"github.com/vibecatcher/event-service/internal/persistence"
	"github.com/vibecatcher/event-service/internal/repository"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

const eventListCacheKey = "events:list"

// EventService coordinates event listing workflows with a Redis-backed
// listing cache.
type EventService struct {
	events     repository.EventRepository
	redis      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEventService builds the service.
func NewEventService(eventsRepo repository.EventRepository, redisClient *persistence.Redis, cacheTTLSeconds int, dispatcher events.Dispatcher, logger *zap.Logger) *EventService {
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = 60
	}
	return &EventService{
		events:     eventsRepo,
		redis:      redisClient,
		cacheTTL:   time.Duration(cacheTTLSeconds) * time.Second,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Title                string
	Location             string
	Description          string
	Date                 time.Time
	Time                 string
	Category             string
	IsPaid               bool
	Price                float64
	TicketsAvailable     int
	RegistrationDeadline *time.Time
	MaxRegistrations     *int
	Status               domain.EventStatus
	ImageURL             *string
}

func (in EventCreateInput) validate() error {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"title":       in.Title,
		"location":    in.Location,
		"description": in.Description,
		"time":        in.Time,
		"category":    in.Category,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if in.Date.IsZero() {
		missing["date"] = "required"
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", missing)
	}
	if in.IsPaid && in.Price <= 0 {
		return apperrors.NewValidationError("paid events require a positive price", nil)
	}
	return nil
}

// Create stores a new event and invalidates the listing cache.
func (s *EventService) Create(ctx context.Context, in EventCreateInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.EventStatusUpcoming
	}

	event := &domain.Event{
		Title:                in.Title,
		Location:             in.Location,
		Description:          in.Description,
		Date:                 in.Date,
		Time:                 in.Time,
		Category:             in.Category,
		IsPaid:               in.IsPaid,
		Price:                in.Price,
		TicketsAvailable:     in.TicketsAvailable,
		RegistrationDeadline: in.RegistrationDeadline,
		MaxRegistrations:     in.MaxRegistrations,
		Status:               status,
		ImageURL:             in.ImageURL,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	s.InvalidateListCache(ctx)
	return event, nil
}

// Update replaces mutable fields of an event.
func (s *EventService) Update(ctx context.Context, id string, in EventCreateInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStatus := event.Status

	event.Title = in.Title
	event.Location = in.Location
	event.Description = in.Description
	event.Date = in.Date
	event.Time = in.Time
	event.Category = in.Category
	event.IsPaid = in.IsPaid
	event.Price = in.Price
	event.TicketsAvailable = in.TicketsAvailable
	event.RegistrationDeadline = in.RegistrationDeadline
	event.MaxRegistrations = in.MaxRegistrations
	if in.Status != "" {
		event.Status = in.Status
	}
	if in.ImageURL != nil {
		event.ImageURL = in.ImageURL
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	s.InvalidateListCache(ctx)

	if event.Status != previousStatus && s.dispatcher != nil {
		eventType := events.EventEventUpdated
		if event.Status == domain.EventStatusCancelled {
			eventType = events.EventEventCancelled
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.New().String(),
			Type:      eventType,
			EventID:   event.ID,
			Actor:     events.Actor{IsAdmin: true},
			Timestamp: time.Now(),
			Payload: events.EventUpdatedPayload{
				EventTitle: event.Title,
				NewStatus:  event.Status,
			},
		})
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateListCache(ctx)
	return nil
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListWithStats returns all events with review aggregates, served from the
// Redis cache when fresh. Cache misses and Redis outages fall through to
// Postgres.
func (s *EventService) ListWithStats(ctx context.Context) ([]repository.EventWithStats, error) {
	if cached, ok := s.readListCache(ctx); ok {
		return cached, nil
	}

	results, err := s.events.ListWithStats(ctx)
	if err != nil {
		return nil, err
	}
	s.writeListCache(ctx, results)
	return results, nil
}

func (s *EventService) readListCache(ctx context.Context) ([]repository.EventWithStats, bool) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, false
	}
	raw, err := s.redis.Client.Get(ctx, eventListCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("event list cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var results []repository.EventWithStats
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *EventService) writeListCache(ctx context.Context, results []repository.EventWithStats) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, eventListCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("event list cache write failed", zap.Error(err))
	}
}

// InvalidateListCache drops the cached listing after any write that changes
// events or their review aggregates.
func (s *EventService) InvalidateListCache(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, eventListCacheKey).Err(); err != nil {
		s.logger.Debug("event list cache invalidation failed", zap.Error(err))
	}
}
