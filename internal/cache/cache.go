// cache реализует кэш отозванных токенов поверх Redis.
//
// По jti отозванного токена кладётся маркер с TTL, равным остаточному
// времени жизни токена: запись самоудаляется не позже, чем токен истёк бы
// сам, поэтому кэш не растёт неограниченно.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationCache — минимальный контракт кэша отозванных токенов.
type RevocationCache interface {
	// Revoke помечает токен отозванным на ttl.
	// ttl <= 0 — no-op: токен уже недействителен по сроку.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked сообщает, отозван ли токен. Отсутствие ключа — частый случай.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:bl:".
func NewRedisCache(redisURL, prefix string) (RevocationCache, error) {
	if prefix == "" {
		prefix = "auth:bl:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(tokenID string) string { return c.prefix + tokenID }

// Revoke ставит маркер "1" с EX ttl. Повторный вызов просто перезаписывает
// маркер — операция идемпотентна.
func (c *redisCache) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	return c.rdb.Set(ctx, c.key(tokenID), "1", ttl).Err()
}

func (c *redisCache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.rdb.Exists(ctx, c.key(tokenID)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (c *redisCache) Close() error { return c.rdb.Close() }
