package store

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
)

const (
	// DefaultRadiusKm is applied when the caller gives no radius.
	DefaultRadiusKm = 10
	// MaxRadiusKm caps the search so an oversized radius cannot degrade
	// into a full table scan over the whole inventory.
	MaxRadiusKm = 100
)

// ErrInvalidCoordinates is returned for out-of-range latitude or longitude.
var ErrInvalidCoordinates = errors.New("latitude must be in [-90, 90] and longitude in [-180, 180]")

// Service defines the customer-facing store read operations.
type Service interface {
	// SearchNearbyStores finds stores within radiusKm of (lat, lng) that
	// stock a product whose name contains query, ordered nearest first.
	SearchNearbyStores(ctx context.Context, query string, lat, lng, radiusKm float64) ([]*SearchResult, error)
	GetStoreDetails(ctx context.Context, storeID string) (*StoreDetails, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new store read service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) SearchNearbyStores(ctx context.Context, query string, lat, lng, radiusKm float64) ([]*SearchResult, error) {
	// NaN compares false against every bound, so it needs its own check.
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return nil, ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidCoordinates
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	if radiusKm > MaxRadiusKm {
		radiusKm = MaxRadiusKm
	}
	return s.repo.SearchNearby(ctx, query, lat, lng, radiusKm)
}

func (s *service) GetStoreDetails(ctx context.Context, storeID string) (*StoreDetails, error) {
	st, err := s.repo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListStockedInventory(ctx, storeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]InventoryItem, 0, len(rows))
	for _, row := range rows {
		expired, days := catalog.ExpiryStatus(row.ExpiryDate, now)
		items = append(items, InventoryItem{
			ProductID:         row.ProductID,
			Name:              row.Name,
			Description:       row.Description,
			Category:          row.Category,
			ImageURL:          row.ImageURL,
			Quantity:          row.Quantity,
			Price:             row.Price,
			ManufacturingDate: row.ManufacturingDate,
			ExpiryDate:        row.ExpiryDate,
			IsExpired:         expired,
			DaysUntilExpiry:   days,
		})
	}

	return &StoreDetails{
		ID:        st.ID,
		Name:      st.Name,
		Address:   st.Address,
		Latitude:  st.Latitude,
		Longitude: st.Longitude,
		Inventory: items,
	}, nil
}
