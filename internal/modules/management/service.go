package management

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
	"github.com/shopit-labs/shopit-backend/internal/modules/owner"
	"github.com/shopit-labs/shopit-backend/internal/modules/store"
)

var (
	// ErrAccessDenied is returned when the caller has no active ownership
	// link for the target store. Distinct from not-found: the store may
	// well exist.
	ErrAccessDenied = errors.New("access denied: you don't own this store")
	// ErrOwnerNotRegistered is returned when registering a store for an
	// email with no active account.
	ErrOwnerNotRegistered = errors.New("store owner not found or account not active, register first")
	// ErrNoDatesGiven is returned when a product-dates update carries
	// neither date.
	ErrNoDatesGiven = errors.New("at least one of manufacturingDate, expiryDate is required")
)

// Service defines ownership-gated store and inventory management.
type Service interface {
	RegisterStore(ctx context.Context, req RegisterStoreRequest) (*store.Store, error)
	MyStores(ctx context.Context, email string) ([]*StoreOwnership, error)
	GetStore(ctx context.Context, storeID, email string) (*store.Store, error)
	UpdateStore(ctx context.Context, storeID, email string, req UpdateStoreRequest) (*store.Store, error)

	ListInventory(ctx context.Context, storeID, email string) ([]*InventoryDetail, error)
	AddInventoryItem(ctx context.Context, storeID, email string, req AddInventoryRequest) (*Inventory, error)
	UpdateInventory(ctx context.Context, storeID, email string, req UpdateInventoryRequest) (*Inventory, error)
	DeleteInventoryItem(ctx context.Context, storeID, productID, email string) error

	// UpdateProductDates mutates the shared product record. It is a
	// deliberate cross-entity operation: the new dates show up in every
	// store stocking the product.
	UpdateProductDates(ctx context.Context, storeID, productID, email string, req ProductDatesRequest) error
	ListProducts(ctx context.Context) ([]*catalog.Product, error)
}

// RegisterStoreRequest holds data for registering a store.
type RegisterStoreRequest struct {
	OwnerEmail   string  `json:"ownerEmail" validate:"required,email"`
	StoreName    string  `json:"storeName" validate:"required"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Website      string  `json:"website"`
	OpeningHours string  `json:"openingHours"`
	Latitude     float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// UpdateStoreRequest overwrites a store's descriptive fields. Latitude,
// longitude, and country are not part of an update and stay as registered.
type UpdateStoreRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	OpeningHours string `json:"openingHours"`
}

// AddInventoryRequest stocks an existing catalog product in a store.
type AddInventoryRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// UpdateInventoryRequest overwrites quantity and, when given, price.
type UpdateInventoryRequest struct {
	ProductID string   `json:"productId" validate:"required,uuid"`
	Quantity  int      `json:"quantity" validate:"gte=0"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// ProductDatesRequest carries the product metadata update split out of the
// inventory update.
type ProductDatesRequest struct {
	ManufacturingDate *catalog.Date `json:"manufacturingDate,omitempty"`
	ExpiryDate        *catalog.Date `json:"expiryDate,omitempty"`
}

type service struct {
	ownRepo     OwnershipRepository
	invRepo     InventoryRepository
	storeRepo   store.Repository
	accountRepo owner.Repository
	productRepo catalog.Repository
	validate    *validator.Validate
	now         func() time.Time
}

// NewService creates a new store management service.
func NewService(ownRepo OwnershipRepository, invRepo InventoryRepository,
	storeRepo store.Repository, accountRepo owner.Repository,
	productRepo catalog.Repository) Service {
	return &service{
		ownRepo:     ownRepo,
		invRepo:     invRepo,
		storeRepo:   storeRepo,
		accountRepo: accountRepo,
		productRepo: productRepo,
		validate:    validator.New(),
		now:         time.Now,
	}
}

// requireOwnership resolves the caller's active ownership link for the
// store. A missing link is an authorization failure; any other lookup
// error is passed through untouched.
func (s *service) requireOwnership(ctx context.Context, email, storeID string) error {
	if _, err := s.ownRepo.FindActiveOwnership(ctx, email, storeID); err != nil {
		if errors.Is(err, ErrOwnershipNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	return nil
}

func (s *service) RegisterStore(ctx context.Context, req RegisterStoreRequest) (*store.Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.GetActiveByEmail(ctx, req.OwnerEmail)
	if err != nil {
		if errors.Is(err, owner.ErrAccountNotFound) {
			return nil, ErrOwnerNotRegistered
		}
		return nil, err
	}

	st := &store.Store{
		ID:           uuid.New(),
		Name:         req.StoreName,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		OpeningHours: req.OpeningHours,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if err := s.storeRepo.CreateStore(ctx, st); err != nil {
		return nil, err
	}

	ownership := &Ownership{
		ID:          uuid.New(),
		AccountID:   account.ID,
		StoreID:     st.ID,
		Role:        RoleOwner,
		Permissions: defaultPermissions,
		IsActive:    true,
	}
	if err := s.ownRepo.CreateOwnership(ctx, ownership); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) MyStores(ctx context.Context, email string) ([]*StoreOwnership, error) {
	return s.ownRepo.ListActiveByEmail(ctx, email)
}

func (s *service) GetStore(ctx context.Context, storeID, email string) (*store.Store, error) {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return nil, err
	}
	return s.storeRepo.GetStoreByID(ctx, storeID)
}

func (s *service) UpdateStore(ctx context.Context, storeID, email string, req UpdateStoreRequest) (*store.Store, error) {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	existing, err := s.storeRepo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Address = req.Address
	existing.City = req.City
	existing.State = req.State
	existing.PostalCode = req.PostalCode
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Website = req.Website
	existing.OpeningHours = req.OpeningHours

	if err := s.storeRepo.UpdateStoreInfo(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) ListInventory(ctx context.Context, storeID, email string) ([]*InventoryDetail, error) {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return nil, err
	}
	rows, err := s.invRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	details := make([]*InventoryDetail, 0, len(rows))
	for _, row := range rows {
		expired, days := catalog.ExpiryStatus(row.ExpiryDate, now)
		details = append(details, &InventoryDetail{
			ProductID:         row.ProductID,
			Name:              row.Name,
			Description:       row.Description,
			Category:          row.Category,
			ImageURL:          row.ImageURL,
			Quantity:          row.Quantity,
			Price:             row.Price,
			LastUpdated:       row.LastUpdated,
			ManufacturingDate: row.ManufacturingDate,
			ExpiryDate:        row.ExpiryDate,
			IsExpired:         expired,
			DaysUntilExpiry:   days,
		})
	}
	return details, nil
}

func (s *service) AddInventoryItem(ctx context.Context, storeID, email string, req AddInventoryRequest) (*Inventory, error) {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	st, err := s.storeRepo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := s.invRepo.GetItem(ctx, storeID, req.ProductID); err == nil {
		return nil, ErrInventoryExists
	} else if !errors.Is(err, ErrInventoryNotFound) {
		return nil, err
	}

	inv := &Inventory{
		ID:        uuid.New(),
		StoreID:   st.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}
	// The unique constraint on (store_id, product_id) backstops the
	// check above against a concurrent add.
	if err := s.invRepo.CreateItem(ctx, inv); err != nil {
		return nil, err
	}
	inv.LastUpdated = s.now()
	return inv, nil
}

func (s *service) UpdateInventory(ctx context.Context, storeID, email string, req UpdateInventoryRequest) (*Inventory, error) {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	inv, err := s.invRepo.GetItem(ctx, storeID, req.ProductID)
	if err != nil {
		return nil, err
	}

	inv.Quantity = req.Quantity
	if req.Price != nil {
		inv.Price = *req.Price
	}
	if err := s.invRepo.UpdateItem(ctx, inv); err != nil {
		return nil, err
	}
	inv.LastUpdated = s.now()
	return inv, nil
}

func (s *service) DeleteInventoryItem(ctx context.Context, storeID, productID, email string) error {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return err
	}
	return s.invRepo.DeleteItem(ctx, storeID, productID)
}

func (s *service) UpdateProductDates(ctx context.Context, storeID, productID, email string, req ProductDatesRequest) error {
	if err := s.requireOwnership(ctx, email, storeID); err != nil {
		return err
	}
	if req.ManufacturingDate == nil && req.ExpiryDate == nil {
		return ErrNoDatesGiven
	}
	// The store must actually stock the product to edit its dates.
	if _, err := s.invRepo.GetItem(ctx, storeID, productID); err != nil {
		return err
	}
	return s.productRepo.UpdateProductDates(ctx, productID, req.ManufacturingDate, req.ExpiryDate)
}

func (s *service) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	return s.productRepo.ListProducts(ctx)
}
