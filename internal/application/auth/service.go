package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/driversense-api/internal/domain"
	jwtinfra "github.com/driversense-api/internal/infrastructure/jwt"
	"github.com/driversense-api/internal/pkg/validate"
)

// ForgotPasswordMessage is returned whether or not the email is known.
const ForgotPasswordMessage = "If the email exists, a password reset link has been sent."

// Any well-formed code is accepted; there is no code delivery to check against.
var twoFactorCode = regexp.MustCompile(`^\d{6}$`)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyTwoFactorRequest struct {
	SessionToken LooseString `json:"session_token"`
	Code         LooseString `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ConsentRequest struct {
	ConsentVersion string `json:"consent_version" validate:"omitempty,max=32"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// LoginResult is the outcome of one login or 2FA step. Tokens is nil for
// requires_2fa, SessionToken is only set for requires_2fa.
type LoginResult struct {
	Status       string
	Tokens       *domain.TokenPair
	SessionToken string
	Message      string
	User         *domain.User
}

// UserStore is the slice of the credential store the auth flow needs.
type UserStore interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, p domain.UserPatch) (*domain.User, error)
}

type ChallengeStore interface {
	Create(ctx context.Context, userID string, typ domain.ChallengeType, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error)
	Consume(ctx context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error)
}

type TokenIssuer interface {
	IssuePair(userID string) (domain.TokenPair, error)
	VerifyRefresh(token string) (*jwtinfra.Claims, error)
}

// RefreshLedger detects reuse of an already exchanged refresh token.
type RefreshLedger interface {
	MarkUsed(ctx context.Context, jti string, expiresAt time.Time) bool
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	VerifyTwoFactor(ctx context.Context, req VerifyTwoFactorRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	AcceptConsent(ctx context.Context, userID, version string) error
	ForgotPassword(ctx context.Context, email string) string
	Logout(ctx context.Context, userID string)
}

// ServiceDeps bundles the collaborators for NewService.
type ServiceDeps struct {
	Users                 UserStore
	Challenges            ChallengeStore
	Tokens                TokenIssuer
	Ledger                RefreshLedger
	ChallengeTTL          time.Duration
	DefaultConsentVersion string
}

type service struct {
	users          UserStore
	challenges     ChallengeStore
	tokens         TokenIssuer
	ledger         RefreshLedger
	challengeTTL   time.Duration
	consentVersion string
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.ChallengeTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	version := deps.DefaultConsentVersion
	if version == "" {
		version = "1.0"
	}
	return &service{
		users:          deps.Users,
		challenges:     deps.Challenges,
		tokens:         deps.Tokens,
		ledger:         deps.Ledger,
		challengeTTL:   ttl,
		consentVersion: version,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("Email and password are required: %w", domain.ErrValidation)
	}
	u, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			slog.Info("login rejected")
			return nil, fmt.Errorf("Invalid email or password: %w", domain.ErrAuthentication)
		}
		return nil, err
	}

	if u.Requires2FA {
		tok, err := s.challenges.Create(ctx, u.UserID, domain.ChallengeTwoFactor, s.challengeTTL)
		if err != nil {
			return nil, fmt.Errorf("create 2fa challenge: %w", err)
		}
		slog.Info("login requires 2fa", "user_id", u.UserID)
		return &LoginResult{
			Status:       domain.StatusRequires2FA,
			SessionToken: tok,
			Message:      "Please verify with 2FA code",
		}, nil
	}

	pair, err := s.tokens.IssuePair(u.UserID)
	if err != nil {
		return nil, err
	}
	status := domain.StatusAuthenticated
	if !u.ConsentAccepted {
		status = domain.StatusRequiresConsent
	}
	slog.Info("login succeeded", "user_id", u.UserID, "status", status)
	return &LoginResult{Status: status, Tokens: &pair, User: u}, nil
}

func (s *service) VerifyTwoFactor(ctx context.Context, req VerifyTwoFactorRequest) (*LoginResult, error) {
	session := string(req.SessionToken)
	if session == "" {
		return nil, fmt.Errorf("Invalid or expired session: %w", domain.ErrInvalidSession)
	}
	if _, err := s.challenges.Lookup(ctx, session, domain.ChallengeTwoFactor); err != nil {
		return nil, fmt.Errorf("Invalid or expired session: %w", domain.ErrInvalidSession)
	}
	if !twoFactorCode.MatchString(string(req.Code)) {
		return nil, fmt.Errorf("Invalid 2FA code format: %w", domain.ErrInvalidCode)
	}
	c, err := s.challenges.Consume(ctx, session, domain.ChallengeTwoFactor)
	if err != nil {
		return nil, fmt.Errorf("Invalid or expired session: %w", domain.ErrInvalidSession)
	}
	u, err := s.users.FindByID(ctx, c.UserID)
	if err != nil {
		return nil, fmt.Errorf("Invalid or expired session: %w", domain.ErrInvalidSession)
	}
	pair, err := s.tokens.IssuePair(u.UserID)
	if err != nil {
		return nil, err
	}
	slog.Info("2fa verified", "user_id", u.UserID)
	return &LoginResult{Status: domain.StatusAuthenticated, Tokens: &pair, User: u}, nil
}

// Refresh exchanges a refresh token for a new pair. Each refresh token can be
// exchanged once.
func (s *service) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	invalid := fmt.Errorf("Invalid refresh token: %w", domain.ErrInvalidToken)
	if refreshToken == "" {
		return domain.TokenPair{}, invalid
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, invalid
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return domain.TokenPair{}, invalid
	}
	if !s.ledger.MarkUsed(ctx, claims.ID, claims.ExpiresAt.Time) {
		slog.Warn("refresh token reuse detected", "user_id", claims.UserID, "jti", claims.ID)
		return domain.TokenPair{}, invalid
	}
	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		return domain.TokenPair{}, invalid
	}
	return s.tokens.IssuePair(claims.UserID)
}

func (s *service) AcceptConsent(ctx context.Context, userID, version string) error {
	if version == "" {
		version = s.consentVersion
	}
	accepted := true
	if _, err := s.users.Update(ctx, userID, domain.UserPatch{
		ConsentAccepted: &accepted,
		ConsentVersion:  &version,
	}); err != nil {
		return err
	}
	slog.Info("consent accepted", "user_id", userID, "consent_version", version)
	return nil
}

// ForgotPassword never reveals whether the email exists.
func (s *service) ForgotPassword(ctx context.Context, email string) string {
	if email != "" {
		if u, err := s.users.FindByEmail(ctx, email); err == nil {
			slog.Info("password reset requested", "user_id", u.UserID)
		}
	}
	return ForgotPasswordMessage
}

// Logout is stateless: tokens stay valid until they expire.
func (s *service) Logout(_ context.Context, userID string) {
	slog.Info("user logged out", "user_id", userID)
}
