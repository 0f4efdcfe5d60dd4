package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/driversense-api/internal/config"
	"github.com/driversense-api/internal/domain"
	pkgtoken "github.com/driversense-api/internal/pkg/token"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields.
type Claims struct {
	UserID string           `json:"userId"`
	Type   domain.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 token pairs. Access and refresh tokens use
// separate secrets and carry a type claim that is checked on every verify.
type Provider struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	nowF          func() time.Time
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, errors.New("jwt secrets must not be empty")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("invalid token lifetimes: access=%s refresh=%s", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	return &Provider{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		issuer:        cfg.JWTIssuer,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		nowF:          time.Now,
	}, nil
}

// IssuePair mints a fresh access/refresh pair for userID.
func (p *Provider) IssuePair(userID string) (domain.TokenPair, error) {
	access, err := p.sign(userID, domain.TokenAccess)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := p.sign(userID, domain.TokenRefresh)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess returns the claims of a valid access token.
func (p *Provider) VerifyAccess(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, domain.TokenAccess)
}

// VerifyRefresh returns the claims of a valid refresh token.
func (p *Provider) VerifyRefresh(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, domain.TokenRefresh)
}

func (p *Provider) sign(userID string, typ domain.TokenType) (string, error) {
	now := p.nowF()
	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        pkgtoken.NewJTI(),
			Issuer:    p.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl(typ))),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret(typ))
}

func (p *Provider) verify(tokenStr string, want domain.TokenType) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.nowF),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return p.secret(want), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s token rejected: %v: %w", want, err, domain.ErrInvalidToken)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrInvalidToken)
	}
	if claims.Type != want {
		return nil, fmt.Errorf("expected %s token, got %q: %w", want, claims.Type, domain.ErrInvalidToken)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token without subject: %w", domain.ErrInvalidToken)
	}
	return claims, nil
}

func (p *Provider) secret(typ domain.TokenType) []byte {
	if typ == domain.TokenRefresh {
		return p.refreshSecret
	}
	return p.accessSecret
}

func (p *Provider) ttl(typ domain.TokenType) time.Duration {
	if typ == domain.TokenRefresh {
		return p.refreshTTL
	}
	return p.accessTTL
}
