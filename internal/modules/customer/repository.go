package customer

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user id or uid does not resolve.
var ErrUserNotFound = errors.New("user not found")

// Repository defines customer identity data storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*User, error)
}
