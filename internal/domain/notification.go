package domain

import "time"

// NotificationType tags the origin of a notification record.
type NotificationType string

const (
	NotificationTypeRegistration   NotificationType = "registration"
	NotificationTypeReview         NotificationType = "review"
	NotificationTypeReviewResponse NotificationType = "review_response"
	NotificationTypeEventUpdate    NotificationType = "event_update"
)

// Notification is the persisted record pushed to clients over the realtime
// channel. RelatedID points at the entity the notification is about.
type Notification struct {
	ID                  string
	UserID              string
	Message             string
	Type                NotificationType
	RelatedID           *string
	IsAdminNotification bool
	IsRead              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
