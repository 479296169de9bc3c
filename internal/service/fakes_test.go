package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/repository"
)

type fakeEventRepo struct {
	events      map[string]*domain.Event
	decremented map[string]int
	soldOut     bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*domain.Event{}, decremented: map[string]int{}}
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", len(f.events)+1)
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *event
	return &clone, nil
}

func (f *fakeEventRepo) ListWithStats(_ context.Context) ([]repository.EventWithStats, error) {
	results := make([]repository.EventWithStats, 0, len(f.events))
	for _, event := range f.events {
		results = append(results, repository.EventWithStats{Event: *event})
	}
	return results, nil
}

func (f *fakeEventRepo) DecrementTickets(_ context.Context, id string, quantity int) error {
	if f.soldOut {
		return pgx.ErrNoRows
	}
	event, ok := f.events[id]
	if !ok || event.TicketsAvailable < quantity {
		return pgx.ErrNoRows
	}
	event.TicketsAvailable -= quantity
	f.decremented[id] += quantity
	return nil
}

func (f *fakeEventRepo) IncrementTickets(_ context.Context, id string, quantity int) error {
	event, ok := f.events[id]
	if !ok {
		return pgx.ErrNoRows
	}
	event.TicketsAvailable += quantity
	f.decremented[id] -= quantity
	return nil
}

type fakeRegistrationRepo struct {
	registrations map[string]*domain.Registration
	countByEvent  map[string]int
	createErr     error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: map[string]*domain.Registration{},
		countByEvent:  map[string]int{},
	}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	if reg.ID == "" {
		reg.ID = fmt.Sprintf("reg-%d", len(f.registrations)+1)
	}
	reg.CreatedAt = time.Now()
	f.registrations[reg.ID] = reg
	f.countByEvent[reg.EventID] += reg.TicketQuantity
	return nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *reg
	return &clone, nil
}

func (f *fakeRegistrationRepo) ListByUser(_ context.Context, userID string) ([]domain.Registration, error) {
	var results []domain.Registration
	for _, reg := range f.registrations {
		if reg.UserID != nil && *reg.UserID == userID {
			results = append(results, *reg)
		}
	}
	return results, nil
}

func (f *fakeRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]domain.Registration, error) {
	var results []domain.Registration
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			results = append(results, *reg)
		}
	}
	return results, nil
}

func (f *fakeRegistrationRepo) CountByEvent(_ context.Context, eventID string) (int, error) {
	return f.countByEvent[eventID], nil
}

func (f *fakeRegistrationRepo) SetCheckIn(_ context.Context, id string, at time.Time) error {
	reg, ok := f.registrations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	reg.CheckInStatus = true
	reg.CheckInTime = &at
	return nil
}

type fakeNotificationRepo struct {
	created []*domain.Notification
	failing bool
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if f.failing {
		return fmt.Errorf("storage down")
	}
	n.ID = fmt.Sprintf("notif-%d", len(f.created)+1)
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	var results []domain.Notification
	for _, n := range f.created {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		results = append(results, *n)
	}
	return results, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range f.created {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

type fakePublisher struct {
	userMessages  map[string][]any
	adminMessages []any
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{userMessages: map[string][]any{}}
}

func (f *fakePublisher) PublishToUser(subjectID string, payload any) {
	f.userMessages[subjectID] = append(f.userMessages[subjectID], payload)
}

func (f *fakePublisher) PublishToAdmins(payload any) {
	f.adminMessages = append(f.adminMessages, payload)
}
