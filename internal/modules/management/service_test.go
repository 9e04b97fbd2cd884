package management

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
	"github.com/shopit-labs/shopit-backend/internal/modules/owner"
	"github.com/shopit-labs/shopit-backend/internal/modules/store"
)

// ownership key is email + store id.
type ownKey struct{ email, storeID string }

type mockOwnershipRepo struct {
	active  map[ownKey]*Ownership
	created []*Ownership
	findErr error
}

func (m *mockOwnershipRepo) CreateOwnership(_ context.Context, o *Ownership) error {
	m.created = append(m.created, o)
	return nil
}

func (m *mockOwnershipRepo) FindActiveOwnership(_ context.Context, email, storeID string) (*Ownership, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if o, ok := m.active[ownKey{email, storeID}]; ok {
		return o, nil
	}
	return nil, ErrOwnershipNotFound
}

func (m *mockOwnershipRepo) ListActiveByEmail(context.Context, string) ([]*StoreOwnership, error) {
	return nil, nil
}

type invKey struct{ storeID, productID string }

type mockInventoryRepo struct {
	items   map[invKey]*Inventory
	updated *Inventory
}

func (m *mockInventoryRepo) CreateItem(_ context.Context, inv *Inventory) error {
	key := invKey{inv.StoreID.String(), inv.ProductID.String()}
	if _, ok := m.items[key]; ok {
		return ErrInventoryExists
	}
	m.items[key] = inv
	return nil
}

func (m *mockInventoryRepo) GetItem(_ context.Context, storeID, productID string) (*Inventory, error) {
	if inv, ok := m.items[invKey{storeID, productID}]; ok {
		return inv, nil
	}
	return nil, ErrInventoryNotFound
}

func (m *mockInventoryRepo) UpdateItem(_ context.Context, inv *Inventory) error {
	key := invKey{inv.StoreID.String(), inv.ProductID.String()}
	if _, ok := m.items[key]; !ok {
		return ErrInventoryNotFound
	}
	m.items[key] = inv
	m.updated = inv
	return nil
}

func (m *mockInventoryRepo) DeleteItem(_ context.Context, storeID, productID string) error {
	key := invKey{storeID, productID}
	if _, ok := m.items[key]; !ok {
		return ErrInventoryNotFound
	}
	delete(m.items, key)
	return nil
}

func (m *mockInventoryRepo) ListByStore(context.Context, string) ([]*inventoryJoinRow, error) {
	return nil, nil
}

type mockStoreRepo struct {
	stores        map[string]*store.Store
	created       *store.Store
	updatedFields *store.Store
}

func (m *mockStoreRepo) CreateStore(_ context.Context, s *store.Store) error {
	m.created = s
	m.stores[s.ID.String()] = s
	return nil
}

func (m *mockStoreRepo) GetStoreByID(_ context.Context, id string) (*store.Store, error) {
	if s, ok := m.stores[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, store.ErrStoreNotFound
}

func (m *mockStoreRepo) UpdateStoreInfo(_ context.Context, s *store.Store) error {
	m.updatedFields = s
	return nil
}

func (m *mockStoreRepo) SearchNearby(context.Context, string, float64, float64, float64) ([]*store.SearchResult, error) {
	return nil, nil
}

func (m *mockStoreRepo) ListStockedInventory(context.Context, string) ([]*store.InventoryRow, error) {
	return nil, nil
}

type mockAccountRepo struct {
	active map[string]*owner.Account
}

func (m *mockAccountRepo) CreateAccount(context.Context, *owner.Account) error { return nil }
func (m *mockAccountRepo) EmailExists(context.Context, string) (bool, error)  { return false, nil }
func (m *mockAccountRepo) UpdateLastLogin(context.Context, string) error      { return nil }

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*owner.Account, error) {
	return m.GetActiveByEmail(context.Background(), email)
}

func (m *mockAccountRepo) GetActiveByEmail(_ context.Context, email string) (*owner.Account, error) {
	if a, ok := m.active[email]; ok {
		return a, nil
	}
	return nil, owner.ErrAccountNotFound
}

type mockProductRepo struct {
	products    map[string]*catalog.Product
	datesSet    string
	gotExpiry   *catalog.Date
	gotMfgDate  *catalog.Date
	listedTimes int
}

func (m *mockProductRepo) GetProductByID(_ context.Context, id string) (*catalog.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}

func (m *mockProductRepo) ListProducts(context.Context) ([]*catalog.Product, error) {
	m.listedTimes++
	return nil, nil
}

func (m *mockProductRepo) UpdateProductDates(_ context.Context, id string, mfg, exp *catalog.Date) error {
	if _, ok := m.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	m.datesSet = id
	m.gotMfgDate = mfg
	m.gotExpiry = exp
	return nil
}

type fixture struct {
	svc      Service
	own      *mockOwnershipRepo
	inv      *mockInventoryRepo
	stores   *mockStoreRepo
	accounts *mockAccountRepo
	products *mockProductRepo

	ownerEmail string
	storeID    uuid.UUID
	productID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		own:        &mockOwnershipRepo{active: map[ownKey]*Ownership{}},
		inv:        &mockInventoryRepo{items: map[invKey]*Inventory{}},
		stores:     &mockStoreRepo{stores: map[string]*store.Store{}},
		accounts:   &mockAccountRepo{active: map[string]*owner.Account{}},
		products:   &mockProductRepo{products: map[string]*catalog.Product{}},
		ownerEmail: "jane@shop.test",
		storeID:    uuid.New(),
		productID:  uuid.New(),
	}
	f.accounts.active[f.ownerEmail] = &owner.Account{ID: uuid.New(), Email: f.ownerEmail, IsActive: true}
	f.stores.stores[f.storeID.String()] = &store.Store{
		ID: f.storeID, Name: "Corner Mart", Country: "India",
		Latitude: 12.97, Longitude: 77.59,
	}
	f.products.products[f.productID.String()] = &catalog.Product{ID: f.productID, Name: "Milk 1L"}
	f.own.active[ownKey{f.ownerEmail, f.storeID.String()}] = &Ownership{
		ID: uuid.New(), StoreID: f.storeID, Role: RoleOwner, IsActive: true,
	}
	f.svc = NewService(f.own, f.inv, f.stores, f.accounts, f.products)
	return f
}

func (f *fixture) stock(quantity int, price float64) *Inventory {
	inv := &Inventory{
		ID: uuid.New(), StoreID: f.storeID, ProductID: f.productID,
		Quantity: quantity, Price: price, LastUpdated: time.Now(),
	}
	f.inv.items[invKey{f.storeID.String(), f.productID.String()}] = inv
	return inv
}

func TestRegisterStore(t *testing.T) {
	f := newFixture(t)

	st, err := f.svc.RegisterStore(context.Background(), RegisterStoreRequest{
		OwnerEmail: f.ownerEmail,
		StoreName:  "New Mart",
		Latitude:   12.9,
		Longitude:  77.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Mart", st.Name)

	require.Len(t, f.own.created, 1)
	link := f.own.created[0]
	assert.Equal(t, st.ID, link.StoreID)
	assert.Equal(t, RoleOwner, link.Role)
	assert.True(t, link.IsActive)
	assert.JSONEq(t, `{"manage_inventory": true, "manage_store": true, "view_analytics": true, "manage_staff": true}`, link.Permissions)
}

func TestRegisterStoreRequiresActiveAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterStore(context.Background(), RegisterStoreRequest{
		OwnerEmail: "stranger@shop.test",
		StoreName:  "Ghost Mart",
	})
	assert.ErrorIs(t, err, ErrOwnerNotRegistered)
}

func TestDeactivatedOwnershipDeniesEverything(t *testing.T) {
	f := newFixture(t)
	// Simulate soft-deactivation: the active-ownership lookup no longer
	// returns the link.
	delete(f.own.active, ownKey{f.ownerEmail, f.storeID.String()})
	f.stock(5, 2.0)

	_, err := f.svc.UpdateStore(context.Background(), f.storeID.String(), f.ownerEmail, UpdateStoreRequest{Name: "X"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.UpdateInventory(context.Background(), f.storeID.String(), f.ownerEmail,
		UpdateInventoryRequest{ProductID: f.productID.String(), Quantity: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = f.svc.DeleteInventoryItem(context.Background(), f.storeID.String(), f.productID.String(), f.ownerEmail)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestOwnershipLookupFailureIsNotAccessDenied(t *testing.T) {
	f := newFixture(t)
	dbErr := errors.New("pq: connection refused")
	f.own.findErr = dbErr

	_, err := f.svc.UpdateStore(context.Background(), f.storeID.String(), f.ownerEmail,
		UpdateStoreRequest{Name: "Renamed Mart"})
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.ListInventory(context.Background(), f.storeID.String(), f.ownerEmail)
	assert.ErrorIs(t, err, dbErr)
}

func TestUpdateStorePreservesLocationAndCountry(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.UpdateStore(context.Background(), f.storeID.String(), f.ownerEmail, UpdateStoreRequest{
		Name:    "Renamed Mart",
		Address: "99 New Rd",
		City:    "Bengaluru",
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Mart", updated.Name)
	assert.Equal(t, "99 New Rd", updated.Address)
	// These never change on update, whatever the payload said.
	assert.Equal(t, 12.97, updated.Latitude)
	assert.Equal(t, 77.59, updated.Longitude)
	assert.Equal(t, "India", updated.Country)
}

func TestAddInventoryItem(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.AddInventoryItem(context.Background(), f.storeID.String(), f.ownerEmail,
		AddInventoryRequest{ProductID: f.productID.String(), Quantity: 10, Price: 2.5})
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)

	// The second identical add must conflict, never overwrite.
	_, err = f.svc.AddInventoryItem(context.Background(), f.storeID.String(), f.ownerEmail,
		AddInventoryRequest{ProductID: f.productID.String(), Quantity: 99, Price: 9.9})
	assert.ErrorIs(t, err, ErrInventoryExists)
	assert.Equal(t, 10, f.inv.items[invKey{f.storeID.String(), f.productID.String()}].Quantity)
}

func TestAddInventoryItemUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddInventoryItem(context.Background(), f.storeID.String(), f.ownerEmail,
		AddInventoryRequest{ProductID: uuid.NewString(), Quantity: 1, Price: 1})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestUpdateInventory(t *testing.T) {
	f := newFixture(t)
	f.stock(10, 2.5)

	t.Run("quantity only keeps price", func(t *testing.T) {
		inv, err := f.svc.UpdateInventory(context.Background(), f.storeID.String(), f.ownerEmail,
			UpdateInventoryRequest{ProductID: f.productID.String(), Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, inv.Quantity)
		assert.Equal(t, 2.5, inv.Price)
	})

	t.Run("price overwritten when supplied", func(t *testing.T) {
		price := 3.75
		inv, err := f.svc.UpdateInventory(context.Background(), f.storeID.String(), f.ownerEmail,
			UpdateInventoryRequest{ProductID: f.productID.String(), Quantity: 3, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 3.75, inv.Price)
	})

	t.Run("missing row", func(t *testing.T) {
		_, err := f.svc.UpdateInventory(context.Background(), f.storeID.String(), f.ownerEmail,
			UpdateInventoryRequest{ProductID: uuid.NewString(), Quantity: 1})
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})
}

func TestDeleteInventoryItem(t *testing.T) {
	f := newFixture(t)
	f.stock(10, 2.5)

	require.NoError(t, f.svc.DeleteInventoryItem(context.Background(),
		f.storeID.String(), f.productID.String(), f.ownerEmail))

	err := f.svc.DeleteInventoryItem(context.Background(),
		f.storeID.String(), f.productID.String(), f.ownerEmail)
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestUpdateProductDates(t *testing.T) {
	f := newFixture(t)
	f.stock(10, 2.5)

	t.Run("requires at least one date", func(t *testing.T) {
		err := f.svc.UpdateProductDates(context.Background(),
			f.storeID.String(), f.productID.String(), f.ownerEmail, ProductDatesRequest{})
		assert.ErrorIs(t, err, ErrNoDatesGiven)
	})

	t.Run("requires the store to stock the product", func(t *testing.T) {
		exp := catalog.NewDate(2026, time.January, 1)
		err := f.svc.UpdateProductDates(context.Background(),
			f.storeID.String(), uuid.NewString(), f.ownerEmail,
			ProductDatesRequest{ExpiryDate: &exp})
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})

	t.Run("writes through to the shared product", func(t *testing.T) {
		exp := catalog.NewDate(2026, time.January, 1)
		err := f.svc.UpdateProductDates(context.Background(),
			f.storeID.String(), f.productID.String(), f.ownerEmail,
			ProductDatesRequest{ExpiryDate: &exp})
		require.NoError(t, err)
		assert.Equal(t, f.productID.String(), f.products.datesSet)
		assert.Nil(t, f.products.gotMfgDate)
		require.NotNil(t, f.products.gotExpiry)
	})
}
