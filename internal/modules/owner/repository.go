package owner

import "context"

// Repository defines store-owner account data storage.
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	// GetActiveByEmail resolves an account only when is_active is true.
	GetActiveByEmail(ctx context.Context, email string) (*Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string) error
}
