package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const storeColumns = `id, name, address, city, state, postal_code, country,
phone, email, website, opening_hours, latitude, longitude, created_at, updated_at`

// haversineKm computes great-circle distance on a 6371 km sphere. The acos
// argument is clamped to [-1, 1]: rounding can push it just past 1 when the
// query point sits on the store.
const haversineKm = `(6371 * acos(LEAST(1.0, GREATEST(-1.0,
	cos(radians($2)) * cos(radians(s.latitude)) *
	cos(radians(s.longitude) - radians($3)) +
	sin(radians($2)) * sin(radians(s.latitude))))))`

func (r *postgresRepository) CreateStore(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores
		  (id, name, address, city, state, postal_code, country, phone, email,
		   website, opening_hours, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		s.ID, s.Name, s.Address, s.City, s.State, s.PostalCode, s.Country,
		s.Phone, s.Email, s.Website, s.OpeningHours, s.Latitude, s.Longitude)
	return err
}

func (r *postgresRepository) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrStoreNotFound
	}
	s := &Store{}
	err = r.db.QueryRowContext(ctx, `
		SELECT `+storeColumns+` FROM stores WHERE id = $1`, uid).
		Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.PostalCode,
			&s.Country, &s.Phone, &s.Email, &s.Website, &s.OpeningHours,
			&s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) UpdateStoreInfo(ctx context.Context, s *Store) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stores
		SET name = $1, address = $2, city = $3, state = $4, postal_code = $5,
		    phone = $6, email = $7, website = $8, opening_hours = $9,
		    updated_at = NOW()
		WHERE id = $10`,
		s.Name, s.Address, s.City, s.State, s.PostalCode,
		s.Phone, s.Email, s.Website, s.OpeningHours, s.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrStoreNotFound
	}
	return nil
}

func (r *postgresRepository) SearchNearby(ctx context.Context, query string, lat, lng, radiusKm float64) ([]*SearchResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.address, s.latitude, s.longitude,
		       p.name, i.quantity, `+haversineKm+` AS distance_km
		FROM stores s
		JOIN inventory i ON i.store_id = s.id
		JOIN products p ON p.id = i.product_id
		WHERE lower(p.name) LIKE lower('%' || $1 || '%')
		  AND i.quantity > 0
		  AND `+haversineKm+` <= $4
		ORDER BY distance_km, s.id`,
		query, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*SearchResult
	for rows.Next() {
		res := &SearchResult{}
		if err := rows.Scan(&res.ID, &res.Name, &res.Address, &res.Latitude,
			&res.Longitude, &res.ProductName, &res.Quantity, &res.DistanceKm); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *postgresRepository) ListStockedInventory(ctx context.Context, storeID string) ([]*InventoryRow, error) {
	uid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, ErrStoreNotFound
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.category, p.image_url,
		       i.quantity, i.price, p.manufacturing_date, p.expiry_date
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.store_id = $1 AND i.quantity > 0
		ORDER BY p.category, p.name`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*InventoryRow
	for rows.Next() {
		item := &InventoryRow{}
		var mfg, exp sql.NullTime
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Description,
			&item.Category, &item.ImageURL, &item.Quantity, &item.Price,
			&mfg, &exp); err != nil {
			return nil, err
		}
		item.ManufacturingDate = dateOrNil(mfg)
		item.ExpiryDate = dateOrNil(exp)
		items = append(items, item)
	}
	return items, rows.Err()
}

func dateOrNil(t sql.NullTime) *catalog.Date {
	if !t.Valid {
		return nil
	}
	d := catalog.Date{}
	_ = d.Scan(t.Time)
	return &d
}
