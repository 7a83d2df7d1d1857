package auth

import (
	"sync"
	"time"
)

// Denylist is a thread-safe set of revoked token IDs. Entries are dropped
// by Cleanup once the token they refer to has expired naturally, since
// Verify rejects expired tokens on its own.
type Denylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{entries: make(map[string]time.Time)}
}

// Revoke adds a token ID with the token's natural expiry.
func (d *Denylist) Revoke(tokenID string, expiresAt time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[tokenID] = expiresAt
}

func (d *Denylist) IsRevoked(tokenID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[tokenID]
	return ok
}

// Cleanup removes entries whose token expired before now and reports how
// many were removed.
func (d *Denylist) Cleanup(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for id, expiresAt := range d.entries {
		if !now.Before(expiresAt) {
			delete(d.entries, id)
			removed++
		}
	}
	return removed
}

func (d *Denylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
