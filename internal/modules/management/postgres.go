package management

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
	"github.com/shopit-labs/shopit-backend/internal/modules/store"
)

// ---- Ownership ----

type ownershipPostgres struct{ db *sql.DB }

// NewOwnershipPostgresRepository creates a new PostgreSQL ownership repository.
func NewOwnershipPostgresRepository(db *sql.DB) OwnershipRepository {
	return &ownershipPostgres{db: db}
}

func (r *ownershipPostgres) CreateOwnership(ctx context.Context, o *Ownership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_owners (id, account_id, store_id, role, permissions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.AccountID, o.StoreID, o.Role, o.Permissions, o.IsActive)
	return err
}

func (r *ownershipPostgres) FindActiveOwnership(ctx context.Context, email, storeID string) (*Ownership, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, ErrOwnershipNotFound
	}
	o := &Ownership{}
	err = r.db.QueryRowContext(ctx, `
		SELECT so.id, so.account_id, so.store_id, so.role, so.permissions,
		       so.is_active, so.created_at, so.updated_at
		FROM store_owners so
		JOIN store_owner_accounts a ON a.id = so.account_id
		WHERE a.email = $1 AND a.is_active = TRUE
		  AND so.store_id = $2 AND so.is_active = TRUE`, email, sid).
		Scan(&o.ID, &o.AccountID, &o.StoreID, &o.Role, &o.Permissions,
			&o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOwnershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *ownershipPostgres) ListActiveByEmail(ctx context.Context, email string) ([]*StoreOwnership, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT so.id, so.account_id, so.store_id, so.role, so.permissions,
		       so.is_active, so.created_at, so.updated_at,
		       s.id, s.name, s.address, s.city, s.state, s.postal_code,
		       s.country, s.phone, s.email, s.website, s.opening_hours,
		       s.latitude, s.longitude, s.created_at, s.updated_at
		FROM store_owners so
		JOIN store_owner_accounts a ON a.id = so.account_id
		JOIN stores s ON s.id = so.store_id
		WHERE a.email = $1 AND a.is_active = TRUE AND so.is_active = TRUE
		ORDER BY so.created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ownerships []*StoreOwnership
	for rows.Next() {
		so := &StoreOwnership{Store: &store.Store{}}
		s := so.Store
		if err := rows.Scan(&so.ID, &so.AccountID, &so.StoreID, &so.Role,
			&so.Permissions, &so.IsActive, &so.CreatedAt, &so.UpdatedAt,
			&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.PostalCode,
			&s.Country, &s.Phone, &s.Email, &s.Website, &s.OpeningHours,
			&s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		ownerships = append(ownerships, so)
	}
	return ownerships, rows.Err()
}

// ---- Inventory ----

type inventoryPostgres struct{ db *sql.DB }

// NewInventoryPostgresRepository creates a new PostgreSQL inventory repository.
func NewInventoryPostgresRepository(db *sql.DB) InventoryRepository {
	return &inventoryPostgres{db: db}
}

func (r *inventoryPostgres) CreateItem(ctx context.Context, inv *Inventory) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (id, store_id, product_id, quantity, price, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		inv.ID, inv.StoreID, inv.ProductID, inv.Quantity, inv.Price)
	if isUniqueViolation(err) {
		return ErrInventoryExists
	}
	return err
}

func (r *inventoryPostgres) GetItem(ctx context.Context, storeID, productID string) (*Inventory, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, ErrInventoryNotFound
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrInventoryNotFound
	}
	inv := &Inventory{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, store_id, product_id, quantity, price, last_updated
		FROM inventory WHERE store_id = $1 AND product_id = $2`, sid, pid).
		Scan(&inv.ID, &inv.StoreID, &inv.ProductID, &inv.Quantity, &inv.Price, &inv.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inventoryPostgres) UpdateItem(ctx context.Context, inv *Inventory) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory SET quantity = $1, price = $2, last_updated = NOW()
		WHERE store_id = $3 AND product_id = $4`,
		inv.Quantity, inv.Price, inv.StoreID, inv.ProductID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

func (r *inventoryPostgres) DeleteItem(ctx context.Context, storeID, productID string) error {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return ErrInventoryNotFound
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return ErrInventoryNotFound
	}
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM inventory WHERE store_id = $1 AND product_id = $2`, sid, pid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

func (r *inventoryPostgres) ListByStore(ctx context.Context, storeID string) ([]*inventoryJoinRow, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, store.ErrStoreNotFound
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.store_id, i.product_id, i.quantity, i.price, i.last_updated,
		       p.name, p.description, p.category, p.image_url,
		       p.manufacturing_date, p.expiry_date
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.store_id = $1
		ORDER BY p.category, p.name`, sid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*inventoryJoinRow
	for rows.Next() {
		item := &inventoryJoinRow{}
		var mfg, exp sql.NullTime
		if err := rows.Scan(&item.ID, &item.StoreID, &item.ProductID,
			&item.Quantity, &item.Price, &item.LastUpdated,
			&item.Name, &item.Description, &item.Category, &item.ImageURL,
			&mfg, &exp); err != nil {
			return nil, err
		}
		if mfg.Valid {
			d := catalog.Date{}
			_ = d.Scan(mfg.Time)
			item.ManufacturingDate = &d
		}
		if exp.Valid {
			d := catalog.Date{}
			_ = d.Scan(exp.Time)
			item.ExpiryDate = &d
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
