package owner

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrAccountNotFound is returned when an email does not resolve.
	ErrAccountNotFound = errors.New("store owner not found")
)

// Service defines store-owner credential business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
	// Login verifies credentials, bumps last_login, and returns the account
	// together with a signed session token.
	Login(ctx context.Context, req LoginRequest) (*Account, string, error)
	Profile(ctx context.Context, email string) (*Account, error)
}

// RegisterRequest holds data for creating a store-owner account.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber"`
	BusinessName string `json:"businessName"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type service struct {
	repo     Repository
	tokens   *TokenIssuer
	validate *validator.Validate
}

// NewService creates a new store-owner credential service.
func NewService(repo Repository, tokens *TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens, validate: validator.New()}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		BusinessName: req.BusinessName,
		IsActive:     true,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Account, string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	account, err := s.repo.GetActiveByEmail(ctx, req.Email)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, account.ID.String()); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *service) Profile(ctx context.Context, email string) (*Account, error) {
	return s.repo.GetByEmail(ctx, email)
}
