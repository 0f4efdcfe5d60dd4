package token

import "github.com/google/uuid"

// NewChallengeToken returns an opaque, unguessable token for a pending login challenge.
func NewChallengeToken() string {
	return uuid.NewString()
}

// NewJTI returns a unique JWT id.
func NewJTI() string {
	return uuid.NewString()
}
