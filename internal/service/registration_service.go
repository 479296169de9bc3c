package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/events"
	"github.com/vibecatcher/event-service/internal/repository"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// RegistrationService coordinates event sign-up workflows.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	eventsRepo    repository.EventRepository
	dispatcher    events.Dispatcher
}

// NewRegistrationService builds the service.
func NewRegistrationService(registrations repository.RegistrationRepository, eventsRepo repository.EventRepository, dispatcher events.Dispatcher) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		eventsRepo:    eventsRepo,
		dispatcher:    dispatcher,
	}
}

// RegistrationCreateInput describes sign-up payload. User is nil for guest
// registrations.
type RegistrationCreateInput struct {
	EventID             string
	FullName            string
	Email               string
	Phone               string
	Address             *string
	City                *string
	State               *string
	ZipCode             *string
	SpecialRequirements *string
	TicketQuantity      int
}

// Create validates availability, reserves tickets and stores the
// registration, then emits registration_created.
func (s *RegistrationService) Create(ctx context.Context, in RegistrationCreateInput, user *domain.User) (*domain.Registration, error) {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"full_name": in.FullName,
		"email":     in.Email,
		"phone":     in.Phone,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if in.TicketQuantity <= 0 {
		in.TicketQuantity = 1
	}

	event, err := s.eventsRepo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": in.EventID})
	}
	if event.Status == domain.EventStatusCancelled || event.Status == domain.EventStatusCompleted {
		return nil, apperrors.NewConflict("event is not open for registration", nil)
	}
	if event.RegistrationDeadline != nil && time.Now().After(*event.RegistrationDeadline) {
		return nil, apperrors.NewConflict("registration deadline has passed", nil)
	}

	if event.MaxRegistrations != nil {
		registered, err := s.registrations.CountByEvent(ctx, in.EventID)
		if err != nil {
			return nil, err
		}
		if registered+in.TicketQuantity > *event.MaxRegistrations {
			return nil, apperrors.NewConflict("event is fully booked", nil)
		}
	}

	if err := s.eventsRepo.DecrementTickets(ctx, in.EventID, in.TicketQuantity); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewConflict("not enough tickets available", nil)
		}
		return nil, err
	}

	paymentStatus := domain.PaymentStatusFree
	totalAmount := 0.0
	if event.IsPaid {
		paymentStatus = domain.PaymentStatusPending
		totalAmount = event.Price * float64(in.TicketQuantity)
	}

	reg := &domain.Registration{
		EventID:             in.EventID,
		FullName:            in.FullName,
		Email:               in.Email,
		Phone:               in.Phone,
		Address:             in.Address,
		City:                in.City,
		State:               in.State,
		ZipCode:             in.ZipCode,
		SpecialRequirements: in.SpecialRequirements,
		TicketQuantity:      in.TicketQuantity,
		RegistrationDate:    time.Now(),
		PaymentStatus:       paymentStatus,
		TotalAmount:         totalAmount,
		ConfirmationCode:    uuid.New().String(),
	}

	actor := events.Actor{}
	if user != nil {
		reg.UserID = &user.ID
		actor = events.Actor{UserID: &user.ID, IsAdmin: user.IsAdmin}
	}

	if err := s.registrations.Create(ctx, reg); err != nil {
		// The reservation already happened; put the tickets back so a
		// failed insert does not shrink inventory.
		_ = s.eventsRepo.IncrementTickets(ctx, in.EventID, in.TicketQuantity)
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.New().String(),
		Type:      events.EventRegistrationCreated,
		EventID:   in.EventID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.RegistrationCreatedPayload{
			RegistrationID:   reg.ID,
			EventTitle:       event.Title,
			FullName:         reg.FullName,
			TicketQuantity:   reg.TicketQuantity,
			PaymentStatus:    reg.PaymentStatus,
			ConfirmationCode: reg.ConfirmationCode,
		},
	})
	return reg, nil
}

// ListForUser returns the caller's registrations.
func (s *RegistrationService) ListForUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	return s.registrations.ListByUser(ctx, userID)
}

// ListForEvent returns all registrations of an event (admin view).
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return s.registrations.ListByEvent(ctx, eventID)
}

// CheckIn marks a registration as checked in at the door.
func (s *RegistrationService) CheckIn(ctx context.Context, registrationID string) (*domain.Registration, error) {
	if err := s.registrations.SetCheckIn(ctx, registrationID, time.Now()); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("registration", map[string]any{"registration_id": registrationID})
		}
		return nil, err
	}
	return s.registrations.GetByID(ctx, registrationID)
}
