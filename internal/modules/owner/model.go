package owner

import (
	"time"

	"github.com/google/uuid"
)

// Account is a store-owner login credential record. It exists independently
// of any store; ownership links are managed by the management module.
type Account struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	BusinessName string     `json:"businessName,omitempty"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
