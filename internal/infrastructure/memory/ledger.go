package memory

import (
	"context"
	"sync"
	"time"
)

// RefreshLedger remembers the ids of refresh tokens that were already
// exchanged. An id is forgotten once the token it belongs to has expired,
// since the signature check rejects it from then on.
type RefreshLedger struct {
	mu    sync.Mutex
	used  map[string]time.Time
	queue expiryQueue
	nowF  func() time.Time
}

func NewRefreshLedger() *RefreshLedger {
	return &RefreshLedger{
		used: make(map[string]time.Time),
		nowF: time.Now,
	}
}

// MarkUsed records jti as spent. It returns false when jti was spent before.
func (l *RefreshLedger) MarkUsed(_ context.Context, jti string, expiresAt time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, seen := l.used[jti]; seen {
		return false
	}
	l.used[jti] = expiresAt
	l.queue.add(jti, expiresAt)
	return true
}

// Sweep forgets ids whose tokens expired before now.
func (l *RefreshLedger) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for _, e := range l.queue.popExpired(now) {
		if _, ok := l.used[e.key]; ok {
			delete(l.used, e.key)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (l *RefreshLedger) Run(ctx context.Context, interval time.Duration) {
	runSweeper(ctx, interval, "refresh_ledger", func() int { return l.Sweep(l.nowF()) })
}
