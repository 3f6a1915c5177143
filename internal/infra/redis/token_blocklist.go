package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlocklist stores revoked token ids in Redis with a TTL equal to the
// token's remaining lifetime, so revocations are shared across instances.
// Keys look like: token:revoked:{tokenID}
type TokenBlocklist struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenBlocklist(client *redis.Client) *TokenBlocklist {
	return &TokenBlocklist{client: client, now: time.Now}
}

func (b *TokenBlocklist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(b.now())
	if ttl <= 0 {
		// already expired; verification rejects it without our help
		return nil
	}
	return b.client.Set(ctx, b.key(tokenID), "1", ttl).Err()
}

func (b *TokenBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *TokenBlocklist) key(tokenID string) string {
	return "token:revoked:" + tokenID
}
