package owner

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL store-owner account repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const accountColumns = `id, email, password_hash, first_name, last_name,
phone_number, business_name, is_active, last_login, created_at, updated_at`

func scanAccount(row *sql.Row) (*Account, error) {
	a := &Account{}
	var lastLogin sql.NullTime
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.PhoneNumber, &a.BusinessName, &a.IsActive, &lastLogin,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		a.LastLogin = &lastLogin.Time
	}
	return a, nil
}

func (r *postgresRepository) CreateAccount(ctx context.Context, a *Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_owner_accounts
		  (id, email, password_hash, first_name, last_name, phone_number, business_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.PhoneNumber, a.BusinessName, a.IsActive)
	return err
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM store_owner_accounts WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return a, err
}

func (r *postgresRepository) GetActiveByEmail(ctx context.Context, email string) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM store_owner_accounts
		WHERE email = $1 AND is_active = TRUE`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return a, err
}

func (r *postgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM store_owner_accounts WHERE email = $1)`, email).
		Scan(&exists)
	return exists, err
}

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE store_owner_accounts SET last_login = NOW(), updated_at = NOW()
		WHERE id = $1`, uid)
	return err
}
