package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
)

// Store represents a physical retail location.
type Store struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty"`
	Country      string    `json:"country,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Website      string    `json:"website,omitempty"`
	OpeningHours string    `json:"openingHours,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SearchResult is one (store, product) hit of the nearby-store search.
type SearchResult struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	DistanceKm  float64   `json:"distanceKm"`
}

// InventoryRow is a stocked product as read from storage, before any
// time-dependent derivation.
type InventoryRow struct {
	ProductID         uuid.UUID
	Name              string
	Description       string
	Category          string
	ImageURL          string
	Quantity          int
	Price             float64
	ManufacturingDate *catalog.Date
	ExpiryDate        *catalog.Date
}

// InventoryItem is the customer-facing view of a stocked product, with
// expiry state derived at construction time.
type InventoryItem struct {
	ProductID         uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	Category          string        `json:"category,omitempty"`
	ImageURL          string        `json:"imageUrl,omitempty"`
	Quantity          int           `json:"quantity"`
	Price             float64       `json:"price"`
	ManufacturingDate *catalog.Date `json:"manufacturingDate,omitempty"`
	ExpiryDate        *catalog.Date `json:"expiryDate,omitempty"`
	IsExpired         bool          `json:"isExpired"`
	DaysUntilExpiry   int64         `json:"daysUntilExpiry"`
}

// StoreDetails is the public store summary with its stocked inventory.
type StoreDetails struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Inventory []InventoryItem `json:"inventory"`
}
