package management

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
	"github.com/shopit-labs/shopit-backend/internal/modules/store"
)

// Ownership roles, in descending order of authority.
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// defaultPermissions is granted to the OWNER link created at store
// registration.
const defaultPermissions = `{"manage_inventory": true, "manage_store": true, "view_analytics": true, "manage_staff": true}`

// Ownership links a store-owner account to a store with a role. An active
// Ownership row is the sole authorization for mutating that store;
// deactivated rows (is_active=false) grant nothing.
type Ownership struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"accountId"`
	StoreID     uuid.UUID `json:"storeId"`
	Role        string    `json:"role"`
	Permissions string    `json:"permissions"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StoreOwnership is an ownership link expanded with its store, as returned
// by the my-stores listing.
type StoreOwnership struct {
	Ownership
	Store *store.Store `json:"store"`
}

// Inventory links one store to one product with quantity and price. At most
// one row exists per (store, product) pair.
type Inventory struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"storeId"`
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// InventoryDetail is the owner-facing view of one inventory row, expanded
// with product fields and derived expiry state. Unlike the customer view it
// includes zero-quantity rows.
type InventoryDetail struct {
	ProductID         uuid.UUID     `json:"productId"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	Category          string        `json:"category,omitempty"`
	ImageURL          string        `json:"imageUrl,omitempty"`
	Quantity          int           `json:"quantity"`
	Price             float64       `json:"price"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	ManufacturingDate *catalog.Date `json:"manufacturingDate,omitempty"`
	ExpiryDate        *catalog.Date `json:"expiryDate,omitempty"`
	IsExpired         bool          `json:"isExpired"`
	DaysUntilExpiry   int64         `json:"daysUntilExpiry"`
}
