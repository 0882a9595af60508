package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// RefreshStore tracks issued refresh tokens by hash so they can be revoked
type RefreshStore interface {
	Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	// Lookup reports whether the hash is still live. ok is false after logout or expiry.
	Lookup(ctx context.Context, tokenHash string) (userID uuid.UUID, ok bool, err error)
	Delete(ctx context.Context, tokenHash string) error
}

type redisRefreshStore struct {
	client *redis.Client
}

// NewRefreshStore returns a Redis backed store. A nil client yields a store
// that keeps nothing and accepts every signed token.
func NewRefreshStore(client *redis.Client) RefreshStore {
	if client == nil {
		return noopRefreshStore{}
	}
	return &redisRefreshStore{client: client}
}

func (s *redisRefreshStore) Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+tokenHash, userID.String(), ttl).Err()
}

func (s *redisRefreshStore) Lookup(ctx context.Context, tokenHash string) (uuid.UUID, bool, error) {
	val, err := s.client.Get(ctx, refreshKeyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (s *redisRefreshStore) Delete(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}

type noopRefreshStore struct{}

func (noopRefreshStore) Save(context.Context, string, uuid.UUID, time.Duration) error { return nil }

func (noopRefreshStore) Lookup(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, true, nil
}

func (noopRefreshStore) Delete(context.Context, string) error { return nil }
