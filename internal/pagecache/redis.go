package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisPagePrefix = "bookshelf:page:"
	redisTagPrefix  = "bookshelf:tag:"
	redisGenPrefix  = "bookshelf:gen:"
)

// RedisStore shares rendered pages between instances through Redis.
// Each tag is a set of page keys plus a counter bumped on invalidation.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient builds a client with the pool and timeout settings used for the page cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Page, bool, error) {
	raw, err := s.client.Get(ctx, redisPagePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get page %q: %w", key, err)
	}

	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, fmt.Errorf("decode page %q: %w", key, err)
	}
	return &page, true, nil
}

func (s *RedisStore) Generation(ctx context.Context, tags []string) (int64, error) {
	return generationOf(ctx, s.client, tags)
}

func (s *RedisStore) Set(ctx context.Context, key string, page *Page, tags []string, ttl time.Duration, generation int64) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page %q: %w", key, err)
	}

	genKeys := make([]string, len(tags))
	for i, tag := range tags {
		genKeys[i] = redisGenPrefix + tag
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generationOf(ctx, tx, tags)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisPagePrefix+key, raw, ttl)
			for _, tag := range tags {
				pipe.SAdd(ctx, redisTagPrefix+tag, key)
				if ttl > 0 {
					pipe.Expire(ctx, redisTagPrefix+tag, ttl)
				}
			}
			return nil
		})
		return err
	}, genKeys...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("set page %q: %w", key, err)
	}
}

func (s *RedisStore) InvalidateTag(ctx context.Context, tag string) error {
	if err := s.client.Incr(ctx, redisGenPrefix+tag).Err(); err != nil {
		return fmt.Errorf("bump tag %q: %w", tag, err)
	}

	keys, err := s.client.SMembers(ctx, redisTagPrefix+tag).Result()
	if err != nil {
		return fmt.Errorf("read tag %q: %w", tag, err)
	}

	toDelete := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		toDelete = append(toDelete, redisPagePrefix+key)
	}
	toDelete = append(toDelete, redisTagPrefix+tag)

	if err := s.client.Del(ctx, toDelete...).Err(); err != nil {
		return fmt.Errorf("invalidate tag %q: %w", tag, err)
	}
	return nil
}

type multiGetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func generationOf(ctx context.Context, c multiGetter, tags []string) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = redisGenPrefix + tag
	}
	values, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("read tag generations: %w", err)
	}

	var sum int64
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse generation of %q: %w", tags[i], err)
		}
		sum += n
	}
	return sum, nil
}
