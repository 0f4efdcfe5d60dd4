package memory

import (
	"container/heap"
	"time"
)

type expiryEntry struct {
	key       string
	expiresAt time.Time
}

// expiryQueue is a min-heap of keys ordered by expiry. Entries are never
// removed out of order; a consumed key simply stays queued until its instant
// passes and pop finds it gone from the owning map.
type expiryQueue []expiryEntry

func (q expiryQueue) Len() int           { return len(q) }
func (q expiryQueue) Less(i, j int) bool { return q[i].expiresAt.Before(q[j].expiresAt) }
func (q expiryQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *expiryQueue) Push(x any) { *q = append(*q, x.(expiryEntry)) }

func (q *expiryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

func (q *expiryQueue) add(key string, expiresAt time.Time) {
	heap.Push(q, expiryEntry{key: key, expiresAt: expiresAt})
}

// popExpired removes and returns every key whose expiry is before now.
func (q *expiryQueue) popExpired(now time.Time) []expiryEntry {
	var out []expiryEntry
	for q.Len() > 0 && (*q)[0].expiresAt.Before(now) {
		out = append(out, heap.Pop(q).(expiryEntry))
	}
	return out
}
