package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
)

const sessionKeyPrefix = "sess:" // sess:{token} -> user id

// RedisSessionStore keeps server-side login sessions in redis.
// Every successful Lookup slides the expiry forward.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) key(token string) string {
	return sessionKeyPrefix + token
}

// Create opens a session for userID and returns its opaque token.
func (s *RedisSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Lookup returns the user id bound to token, or apperrors.ErrNotFound when
// the session is unknown or expired.
func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, apperrors.ErrNotFound
	}

	pipe := s.client.TxPipeline()
	get := pipe.Get(ctx, s.key(token))
	pipe.Expire(ctx, s.key(token), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	raw, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %q: %w", token, err)
	}
	return id, nil
}

// Revoke deletes the session. Revoking an unknown token is not an error.
func (s *RedisSessionStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
