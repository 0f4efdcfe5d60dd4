package user

import (
	"context"
	"fmt"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/pkg/validate"
)

// UpdateProfileRequest is a partial update. Absent or empty fields are left
// unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Language    *string `json:"language" validate:"omitempty,bcp47_language_tag"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164"`
}

type Service interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error)
}

type userStore interface {
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, p domain.UserPatch) (*domain.User, error)
}

type service struct {
	repo userStore
}

type ServiceDeps struct {
	UserRepo userStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	req = dropEmpty(req)
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}
	u, err := s.repo.Update(ctx, userID, domain.UserPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Language:    req.Language,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func dropEmpty(req UpdateProfileRequest) UpdateProfileRequest {
	for _, f := range []**string{&req.FirstName, &req.LastName, &req.Language, &req.PhoneNumber} {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
	return req
}
