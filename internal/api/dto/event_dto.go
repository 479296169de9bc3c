package dto

import (
	"time"

	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/repository"
)

// EventRequest payload for creating or replacing an event.
type EventRequest struct {
	Title                string     `json:"title"`
	Location             string     `json:"location"`
	Description          string     `json:"description"`
	Date                 time.Time  `json:"date"`
	Time                 string     `json:"time"`
	Category             string     `json:"category"`
	IsPaid               bool       `json:"isPaid"`
	Price                float64    `json:"price"`
	TicketsAvailable     int        `json:"ticketsAvailable"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	MaxRegistrations     *int       `json:"maxRegistrations"`
	Status               string     `json:"status"`
	ImageURL             *string    `json:"imageUrl"`
}

// EventStatsResponse carries review aggregates alongside a listing.
type EventStatsResponse struct {
	ReviewCount    int     `json:"reviewCount"`
	AvgRating      float64 `json:"avgRating"`
	SentimentScore int     `json:"sentimentScore"`
}

// EventResponse is the public view of an event.
type EventResponse struct {
	ID                   string              `json:"id"`
	Title                string              `json:"title"`
	Location             string              `json:"location"`
	Description          string              `json:"description"`
	Date                 time.Time           `json:"date"`
	Time                 string              `json:"time"`
	Category             string              `json:"category"`
	IsPaid               bool                `json:"isPaid"`
	Price                float64             `json:"price"`
	TicketsAvailable     int                 `json:"ticketsAvailable"`
	RegistrationDeadline *time.Time          `json:"registrationDeadline,omitempty"`
	MaxRegistrations     *int                `json:"maxRegistrations,omitempty"`
	Status               string              `json:"status"`
	ImageURL             *string             `json:"imageUrl,omitempty"`
	Stats                *EventStatsResponse `json:"stats,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// NewEventResponse maps a domain event without aggregates.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:                   event.ID,
		Title:                event.Title,
		Location:             event.Location,
		Description:          event.Description,
		Date:                 event.Date,
		Time:                 event.Time,
		Category:             event.Category,
		IsPaid:               event.IsPaid,
		Price:                event.Price,
		TicketsAvailable:     event.TicketsAvailable,
		RegistrationDeadline: event.RegistrationDeadline,
		MaxRegistrations:     event.MaxRegistrations,
		Status:               string(event.Status),
		ImageURL:             event.ImageURL,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
}

// NewEventWithStatsResponse maps a listing row with its aggregates.
func NewEventWithStatsResponse(row repository.EventWithStats) EventResponse {
	resp := NewEventResponse(&row.Event)
	resp.Stats = &EventStatsResponse{
		ReviewCount:    row.Stats.ReviewCount,
		AvgRating:      row.Stats.AvgRating,
		SentimentScore: row.Stats.SentimentScore,
	}
	return resp
}
