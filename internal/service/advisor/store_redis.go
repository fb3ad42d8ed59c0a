package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs SessionStore with Redis. Meta lives under
// adv:sess:<room>:<player> and the latest rendered analysis under
// adv:latest:<uuid>, both TTL-bound.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url required for redis session store")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}

func (s *RedisStore) SaveMeta(ctx context.Context, roomHash, playerHash string, meta *StoredMeta, ttl time.Duration) error {
	if meta == nil {
		return fmt.Errorf("cannot save nil session meta")
	}
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal session meta: %w", err)
	}
	return s.rdb.Set(ctx, metaKey(roomHash, playerHash), payload, ttl).Err()
}

func (s *RedisStore) LoadMeta(ctx context.Context, roomHash, playerHash string) (*StoredMeta, error) {
	raw, err := s.rdb.Get(ctx, metaKey(roomHash, playerHash)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	meta := &StoredMeta{}
	if err := json.Unmarshal(raw, meta); err != nil {
		return nil, fmt.Errorf("unmarshal session meta: %w", err)
	}
	return meta, nil
}

func (s *RedisStore) DeleteMeta(ctx context.Context, roomHash, playerHash string) error {
	return s.rdb.Del(ctx, metaKey(roomHash, playerHash)).Err()
}

func (s *RedisStore) SaveLatest(ctx context.Context, sessionUUID, text string, ttl time.Duration) error {
	return s.rdb.Set(ctx, latestKey(sessionUUID), text, ttl).Err()
}

func (s *RedisStore) LoadLatest(ctx context.Context, sessionUUID string) (string, error) {
	text, err := s.rdb.Get(ctx, latestKey(sessionUUID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *RedisStore) DeleteLatest(ctx context.Context, sessionUUID string) error {
	return s.rdb.Del(ctx, latestKey(sessionUUID)).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
