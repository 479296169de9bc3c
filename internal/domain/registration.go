package domain

import "time"

// PaymentStatus tracks the payment state of a registration.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFree      PaymentStatus = "free"
)

// Registration is the domain model for an event sign-up. UserID is nil for
// guest registrations.
type Registration struct {
	ID                  string
	EventID             string
	UserID              *string
	FullName            string
	Email               string
	Phone               string
	Address             *string
	City                *string
	State               *string
	ZipCode             *string
	SpecialRequirements *string
	TicketQuantity      int
	RegistrationDate    time.Time
	PaymentStatus       PaymentStatus
	TotalAmount         float64
	PaymentMethod       *string
	PaymentDate         *time.Time
	TransactionID       *string
	ConfirmationCode    string
	CheckInStatus       bool
	CheckInTime         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
