package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LikeCountCache — минимальный контракт кэша счётчиков лайков.
// Кэш строго вспомогательный: промах или ошибка чтения означают
// поход в хранилище, инвалидация выполняется на каждом toggle.
type LikeCountCache interface {
	// Get возвращает счётчик и признак его наличия в кэше.
	Get(ctx context.Context, photoID string) (int64, bool, error)
	// Set сохраняет счётчик с TTL.
	Set(ctx context.Context, photoID string, count int64, ttl time.Duration) error
	// Invalidate удаляет ключ (после мутации лайка).
	Invalidate(ctx context.Context, photoID string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "feed:likes:".
func NewRedisCache(redisURL, prefix string) (LikeCountCache, error) {
	if prefix == "" {
		prefix = "feed:likes:"
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

func (c *redisCache) key(photoID string) string { return c.prefix + photoID }

func (c *redisCache) Get(ctx context.Context, photoID string) (int64, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(photoID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}

		return 0, false, err
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}

	return n, true, nil
}

func (c *redisCache) Set(ctx context.Context, photoID string, count int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.key(photoID), strconv.FormatInt(count, 10), ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context, photoID string) error {
	return c.rdb.Del(ctx, c.key(photoID)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
