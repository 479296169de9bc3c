package domain

import "time"

// User is the domain model for registered accounts. Admins are flagged
// on the account rather than modeled as a separate subject type.
type User struct {
	ID                   string
	Username             string
	PasswordHash         string
	IsAdmin              bool
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
