package customer

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service defines customer identity business logic.
type Service interface {
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

// RegisterRequest holds data for creating a customer identity record.
type RegisterRequest struct {
	FirebaseUID   string   `json:"firebaseUid" validate:"required"`
	Email         string   `json:"email" validate:"omitempty,email"`
	DisplayName   string   `json:"displayName"`
	UserType      string   `json:"userType" validate:"omitempty,oneof=CUSTOMER STORE_OWNER ADMIN"`
	HomeLatitude  *float64 `json:"homeLatitude" validate:"omitempty,gte=-90,lte=90"`
	HomeLongitude *float64 `json:"homeLongitude" validate:"omitempty,gte=-180,lte=180"`
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new customer service.
func NewService(repo Repository) Service {
	return &service{repo: repo, validate: validator.New()}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	// The uid is the external identity key: re-registering it returns the
	// existing record instead of tripping the unique constraint.
	existing, err := s.repo.GetUserByFirebaseUID(ctx, req.FirebaseUID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	userType := req.UserType
	if userType == "" {
		userType = TypeCustomer
	}
	u := &User{
		ID:            uuid.New(),
		FirebaseUID:   req.FirebaseUID,
		Email:         req.Email,
		DisplayName:   req.DisplayName,
		UserType:      userType,
		HomeLatitude:  req.HomeLatitude,
		HomeLongitude: req.HomeLongitude,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}
