package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

const defaultResetTTL = 10 * time.Minute

// ResetTokenStore keeps single-use password-reset tokens in Redis. Only the
// token digest is stored, keyed as reset:<digest>, with the owning user id
// as the value. Expiry is enforced by the key TTL.
type ResetTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client, ttl time.Duration) *ResetTokenStore {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &ResetTokenStore{client: client, ttl: ttl}
}

// Save records the token digest for userID. A later Save with the same
// digest overwrites, which cannot happen in practice since tokens are random.
func (s *ResetTokenStore) Save(ctx context.Context, tokenHash, userID string) error {
	if err := s.client.Set(ctx, s.key(tokenHash), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the token, returning the owning
// user id. A missing or expired token yields domain.ErrResetTokenInvalid.
func (s *ResetTokenStore) Consume(ctx context.Context, tokenHash string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(tokenHash)).Result()
	if err == redis.Nil {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (s *ResetTokenStore) key(tokenHash string) string {
	return "reset:" + tokenHash
}
