package events

import (
	"time"

	"github.com/vibecatcher/event-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRegistrationCreated EventType = "registration_created"
	EventReviewCreated       EventType = "review_created"
	EventReviewResponded     EventType = "review_responded"
	EventEventUpdated        EventType = "event_updated"
	EventEventCancelled      EventType = "event_cancelled"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID  *string `json:"user_id,omitempty"`
	IsAdmin bool    `json:"is_admin"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EventID   string      `json:"event_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	RegistrationID   string               `json:"registration_id"`
	EventTitle       string               `json:"event_title"`
	FullName         string               `json:"full_name"`
	TicketQuantity   int                  `json:"ticket_quantity"`
	PaymentStatus    domain.PaymentStatus `json:"payment_status"`
	ConfirmationCode string               `json:"confirmation_code"`
}

// ReviewCreatedPayload payload.
type ReviewCreatedPayload struct {
	ReviewID   string           `json:"review_id"`
	EventTitle string           `json:"event_title"`
	Username   string           `json:"username"`
	Rating     int              `json:"rating"`
	Sentiment  domain.Sentiment `json:"sentiment"`
}

// ReviewRespondedPayload payload.
type ReviewRespondedPayload struct {
	ReviewID   string `json:"review_id"`
	AuthorID   string `json:"author_id"`
	EventTitle string `json:"event_title"`
	Response   string `json:"response"`
}

// EventUpdatedPayload payload.
type EventUpdatedPayload struct {
	EventTitle string             `json:"event_title"`
	NewStatus  domain.EventStatus `json:"new_status"`
}
