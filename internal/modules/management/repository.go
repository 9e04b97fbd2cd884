package management

import (
	"context"
	"errors"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
)

var (
	// ErrInventoryNotFound is returned when no row exists for a
	// (store, product) pair.
	ErrInventoryNotFound = errors.New("inventory item not found")
	// ErrInventoryExists is returned when adding a product a store already
	// stocks; callers must update instead.
	ErrInventoryExists = errors.New("product already exists in inventory, use update instead")
	// ErrOwnershipNotFound is returned when no active ownership link exists
	// for an (email, store) pair. Other errors from the lookup are
	// infrastructure failures, not authorization decisions.
	ErrOwnershipNotFound = errors.New("ownership link not found")
)

// OwnershipRepository defines store-ownership link storage.
type OwnershipRepository interface {
	CreateOwnership(ctx context.Context, o *Ownership) error
	// FindActiveOwnership resolves the link only when both the account and
	// the link itself are active. No row means no access.
	FindActiveOwnership(ctx context.Context, email, storeID string) (*Ownership, error)
	ListActiveByEmail(ctx context.Context, email string) ([]*StoreOwnership, error)
}

// InventoryRepository defines inventory link storage.
type InventoryRepository interface {
	CreateItem(ctx context.Context, inv *Inventory) error
	GetItem(ctx context.Context, storeID, productID string) (*Inventory, error)
	UpdateItem(ctx context.Context, inv *Inventory) error
	DeleteItem(ctx context.Context, storeID, productID string) error
	// ListByStore returns every row for the store, zero quantity included,
	// joined with product fields.
	ListByStore(ctx context.Context, storeID string) ([]*inventoryJoinRow, error)
}

// inventoryJoinRow is an inventory row joined with its product, before
// expiry derivation.
type inventoryJoinRow struct {
	Inventory
	Name              string
	Description       string
	Category          string
	ImageURL          string
	ManufacturingDate *catalog.Date
	ExpiryDate        *catalog.Date
}
