package memory

import (
	"context"
	"sync"
	"time"
)

// TokenBlocklist is an in-memory implementation of app.TokenBlocklist.
type TokenBlocklist struct {
	mu      sync.Mutex
	clock   func() time.Time
	revoked map[string]time.Time
}

func NewTokenBlocklist() *TokenBlocklist {
	return newTokenBlocklistWithClock(time.Now)
}

// newTokenBlocklistWithClock allows deterministic expiry in tests.
func newTokenBlocklistWithClock(now func() time.Time) *TokenBlocklist {
	return &TokenBlocklist{clock: now, revoked: make(map[string]time.Time)}
}

func (b *TokenBlocklist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[tokenID] = until
	return nil
}

func (b *TokenBlocklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	until, ok := b.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(b.clock()) {
		// expired tokens fail verification anyway
		delete(b.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
