package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixSession = "session:"
	keyPrefixUser    = "user_sessions:"
)

// RedisStore keeps sessions as JSON values that Redis expires on its own.
// Lookups still compare expires_at so both stores behave the same.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	data, err := json.Marshal(redisSession{ID: s.ID, UserID: s.UserID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt})
	if err != nil {
		return err
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	userKey := keyPrefixUser + s.UserID.String()
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, keyPrefixSession+s.TokenHash, data, ttl)
	pipe.SAdd(ctx, userKey, s.TokenHash)
	// The user index lives as long as its longest session.
	pipe.ExpireNX(ctx, userKey, ttl)
	pipe.ExpireGT(ctx, userKey, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) GetByTokenHash(ctx context.Context, hash string) (*Session, error) {
	data, err := r.client.Get(ctx, keyPrefixSession+hash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rs redisSession
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	return &Session{ID: rs.ID, UserID: rs.UserID, TokenHash: hash, CreatedAt: rs.CreatedAt, ExpiresAt: rs.ExpiresAt}, nil
}

func (r *RedisStore) Delete(ctx context.Context, hash string) (bool, error) {
	n, err := r.client.Del(ctx, keyPrefixSession+hash).Result()
	return n > 0, err
}

func (r *RedisStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	userKey := keyPrefixUser + userID.String()
	hashes, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, keyPrefixSession+h)
	}
	keys = append(keys, userKey)
	return r.client.Del(ctx, keys...).Err()
}

type redisSession struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
