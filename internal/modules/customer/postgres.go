package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL customer repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, firebase_uid, email, display_name, user_type,
home_latitude, home_longitude, created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	var lat, lng sql.NullFloat64
	err := row.Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.DisplayName,
		&u.UserType, &lat, &lng, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		u.HomeLatitude = &lat.Float64
	}
	if lng.Valid {
		u.HomeLongitude = &lng.Float64
	}
	return u, nil
}

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users
		  (id, firebase_uid, email, display_name, user_type, home_latitude, home_longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.FirebaseUID, u.Email, u.DisplayName, u.UserType,
		u.HomeLatitude, u.HomeLongitude)
	return err
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *postgresRepository) GetUserByFirebaseUID(ctx context.Context, uid string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE firebase_uid = $1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}
