package domain

import "time"

// EventStatus represents lifecycle states for an event listing.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Event is the domain model for an event listing.
type Event struct {
	ID                   string
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
	Status               EventStatus
	ImageURL             *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EventStats aggregates review-derived figures shown alongside a listing.
type EventStats struct {
	ReviewCount    int
	AvgRating      float64
	SentimentScore int
}
