package customer

import (
	"time"

	"github.com/google/uuid"
)

// User types.
const (
	TypeCustomer   = "CUSTOMER"
	TypeStoreOwner = "STORE_OWNER"
	TypeAdmin      = "ADMIN"
)

// User is a customer identity record keyed by an external auth provider
// uid. It carries no credentials of its own.
type User struct {
	ID            uuid.UUID `json:"id"`
	FirebaseUID   string    `json:"firebaseUid"`
	Email         string    `json:"email,omitempty"`
	DisplayName   string    `json:"displayName,omitempty"`
	UserType      string    `json:"userType"`
	HomeLatitude  *float64  `json:"homeLatitude,omitempty"`
	HomeLongitude *float64  `json:"homeLongitude,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
