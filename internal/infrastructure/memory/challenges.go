package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/driversense-api/internal/domain"
	pkgtoken "github.com/driversense-api/internal/pkg/token"
)

// ChallengeRepo holds pending login challenges keyed by opaque token.
type ChallengeRepo struct {
	mu      sync.Mutex
	entries map[string]domain.Challenge
	queue   expiryQueue
	nowF    func() time.Time
}

func NewChallengeRepo() *ChallengeRepo {
	return &ChallengeRepo{
		entries: make(map[string]domain.Challenge),
		nowF:    time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (r *ChallengeRepo) WithClock(now func() time.Time) *ChallengeRepo {
	r.nowF = now
	return r
}

// Create stores a new challenge for userID that expires ttl from now and
// returns its token.
func (r *ChallengeRepo) Create(_ context.Context, userID string, typ domain.ChallengeType, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("challenge ttl must be positive: %w", domain.ErrValidation)
	}
	c := domain.Challenge{
		Token:     pkgtoken.NewChallengeToken(),
		UserID:    userID,
		Type:      typ,
		ExpiresAt: r.nowF().Add(ttl),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[c.Token] = c
	r.queue.add(c.Token, c.ExpiresAt)
	return c.Token, nil
}

// Lookup returns the challenge without consuming it.
func (r *ChallengeRepo) Lookup(_ context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.validLocked(token, typ)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Consume validates the challenge and deletes it in one step, so a token is
// accepted at most once even under concurrent use.
func (r *ChallengeRepo) Consume(_ context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.validLocked(token, typ)
	if err != nil {
		return nil, err
	}
	delete(r.entries, token)
	return &c, nil
}

func (r *ChallengeRepo) validLocked(token string, typ domain.ChallengeType) (domain.Challenge, error) {
	c, ok := r.entries[token]
	if !ok || c.Type != typ {
		return domain.Challenge{}, domain.ErrInvalidOrExpiredChallenge
	}
	if c.Expired(r.nowF()) {
		delete(r.entries, token)
		return domain.Challenge{}, domain.ErrInvalidOrExpiredChallenge
	}
	return c, nil
}

// Len reports the number of stored challenges, expired or not.
func (r *ChallengeRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts every challenge that expired before now and returns how
// many were removed.
func (r *ChallengeRepo) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for _, e := range r.queue.popExpired(now) {
		if c, ok := r.entries[e.key]; ok && c.Expired(now) {
			delete(r.entries, e.key)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (r *ChallengeRepo) Run(ctx context.Context, interval time.Duration) {
	runSweeper(ctx, interval, "challenges", func() int { return r.Sweep(r.nowF()) })
}

func runSweeper(ctx context.Context, interval time.Duration, name string, sweep func() int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweep(); n > 0 {
				slog.Debug("evicted expired entries", "store", name, "count", n)
			}
		}
	}
}
