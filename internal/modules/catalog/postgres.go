package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product catalog repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const productColumns = `id, name, description, category, barcode, image_url,
manufacturing_date, expiry_date, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*Product, error) {
	p := &Product{}
	var mfg, exp sql.NullTime
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Barcode,
		&p.ImageURL, &mfg, &exp, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if mfg.Valid {
		d := Date{}
		_ = d.Scan(mfg.Time)
		p.ManufacturingDate = &d
	}
	if exp.Valid {
		d := Date{}
		_ = d.Scan(exp.Time)
		p.ExpiryDate = &d
	}
	return p, nil
}

func (r *postgresRepository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *postgresRepository) ListProducts(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepository) UpdateProductDates(ctx context.Context, id string, manufacturing, expiry *Date) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrProductNotFound
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET manufacturing_date = COALESCE($1, manufacturing_date),
		    expiry_date        = COALESCE($2, expiry_date),
		    updated_at         = NOW()
		WHERE id = $3`,
		nullableDate(manufacturing), nullableDate(expiry), uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func nullableDate(d *Date) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
