package http

import (
	"context"
	"time"

	"github.com/driversense-api/internal/domain"
	jwtinfra "github.com/driversense-api/internal/infrastructure/jwt"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, p domain.UserPatch) (*domain.User, error)
}

// ChallengeRepository is the minimal interface the router requires from a challenge store.
type ChallengeRepository interface {
	Create(ctx context.Context, userID string, typ domain.ChallengeType, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error)
	Consume(ctx context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error)
}

// RefreshLedger records refresh token ids that have already been exchanged.
type RefreshLedger interface {
	MarkUsed(ctx context.Context, jti string, expiresAt time.Time) bool
}

// VehicleRepository is the minimal interface the router requires from a vehicle store.
type VehicleRepository interface {
	Get(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicleID string, fn func(v *domain.Vehicle) error) (*domain.Vehicle, error)
}

// TripRepository is the minimal interface the router requires from a trip store.
type TripRepository interface {
	Put(ctx context.Context, t domain.Trip) error
	Update(ctx context.Context, tripID string, fn func(t *domain.Trip) error) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Trip, error)
}

// TokenProvider issues and verifies access/refresh token pairs.
type TokenProvider interface {
	IssuePair(userID string) (domain.TokenPair, error)
	VerifyAccess(token string) (*jwtinfra.Claims, error)
	VerifyRefresh(token string) (*jwtinfra.Claims, error)
}
