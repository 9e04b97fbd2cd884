package store

import (
	"context"
	"errors"
)

// ErrStoreNotFound is returned when a store id does not resolve.
var ErrStoreNotFound = errors.New("store not found")

// Repository defines store data storage. The management module reuses it
// for its ownership-gated mutations.
type Repository interface {
	CreateStore(ctx context.Context, s *Store) error
	GetStoreByID(ctx context.Context, id string) (*Store, error)

	// UpdateStoreInfo overwrites the mutable descriptive fields only.
	// Latitude, longitude, and country are never touched by an update.
	UpdateStoreInfo(ctx context.Context, s *Store) error

	// SearchNearby returns (store, product, quantity, distance) tuples for
	// stores within radiusKm of the point that stock a product whose name
	// contains the query fragment, ordered by ascending distance.
	SearchNearby(ctx context.Context, query string, lat, lng, radiusKm float64) ([]*SearchResult, error)

	// ListStockedInventory returns the rows with quantity > 0 for a store,
	// ordered by product category then name.
	ListStockedInventory(ctx context.Context, storeID string) ([]*InventoryRow, error)
}
