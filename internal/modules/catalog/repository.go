package catalog

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when a product id does not resolve.
var ErrProductNotFound = errors.New("product not found")

// Repository defines product catalog data storage.
type Repository interface {
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)

	// UpdateProductDates overwrites whichever of the two dates is non-nil.
	// Touching a product's dates affects every store stocking it.
	UpdateProductDates(ctx context.Context, id string, manufacturing, expiry *Date) error
}
