package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fundbridge/platform/internal/core/domain"
)

const defaultResetTTL = 30 * time.Minute

// ResetStore keeps password reset tokens. Key format: reset:<token>
type ResetStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewResetStore(client redis.Cmdable, ttl time.Duration) *ResetStore {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &ResetStore{client: client, ttl: ttl}
}

func (s *ResetStore) Save(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, s.key(token), userID, s.ttl).Err()
}

// Consume atomically reads and deletes the token.
func (s *ResetStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidResetToken
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (s *ResetStore) key(token string) string {
	return "reset:" + token
}
