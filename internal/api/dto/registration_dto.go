package dto

import (
	"time"

	"github.com/vibecatcher/event-service/internal/domain"
)

// RegistrationRequest payload for event sign-up.
type RegistrationRequest struct {
	EventID             string  `json:"eventId"`
	FullName            string  `json:"fullName"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	Address             *string `json:"address"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	ZipCode             *string `json:"zipCode"`
	SpecialRequirements *string `json:"specialRequirements"`
	TicketQuantity      int     `json:"ticketQuantity"`
}

// RegistrationResponse is the public view of a registration.
type RegistrationResponse struct {
	ID               string     `json:"id"`
	EventID          string     `json:"eventId"`
	FullName         string     `json:"fullName"`
	Email            string     `json:"email"`
	TicketQuantity   int        `json:"ticketQuantity"`
	PaymentStatus    string     `json:"paymentStatus"`
	TotalAmount      float64    `json:"totalAmount"`
	ConfirmationCode string     `json:"confirmationCode"`
	CheckInStatus    bool       `json:"checkInStatus"`
	CheckInTime      *time.Time `json:"checkInTime,omitempty"`
	RegistrationDate time.Time  `json:"registrationDate"`
}

// NewRegistrationResponse maps a domain registration.
func NewRegistrationResponse(reg *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:               reg.ID,
		EventID:          reg.EventID,
		FullName:         reg.FullName,
		Email:            reg.Email,
		TicketQuantity:   reg.TicketQuantity,
		PaymentStatus:    string(reg.PaymentStatus),
		TotalAmount:      reg.TotalAmount,
		ConfirmationCode: reg.ConfirmationCode,
		CheckInStatus:    reg.CheckInStatus,
		CheckInTime:      reg.CheckInTime,
		RegistrationDate: reg.RegistrationDate,
	}
}
