package domain

import "time"

// ChallengeType discriminates pending login challenges.
type ChallengeType string

const ChallengeTwoFactor ChallengeType = "2fa"

// Challenge is a pending, single-use login step keyed by an opaque token.
type Challenge struct {
	Token     string
	UserID    string
	Type      ChallengeType
	ExpiresAt time.Time
}

// Expired reports whether the challenge can no longer be used at now. The
// expiry instant itself is still valid.
func (c *Challenge) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// TokenType is the discriminator carried in every signed token.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenPair is what every successful authentication step hands out.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login outcomes reported in the "status" field.
const (
	StatusAuthenticated   = "authenticated"
	StatusRequires2FA     = "requires_2fa"
	StatusRequiresConsent = "requires_consent"
)
