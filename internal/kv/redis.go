package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
)

// mgetBatch bounds the number of keys fetched per MGET during a prefix scan.
const mgetBatch = 100

// RedisStore persists values as plain Redis strings without expiry.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// DialRedis creates a client and verifies connectivity.
func DialRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kv: ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewStorageError("get", key, err)
	}
	return res, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return apperrors.NewStorageError("set", key, s.client.Set(ctx, key, value, 0).Err())
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return apperrors.NewStorageError("delete", key, s.client.Del(ctx, key).Err())
}

// ScanPrefix walks the keyspace with SCAN and loads matches with MGET. SCAN
// may repeat keys and keys may disappear before MGET; both are tolerated.
func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", mgetBatch).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.NewStorageError("scan", prefix, err)
	}

	out := make([][]byte, 0, len(keys))
	for start := 0; start < len(keys); start += mgetBatch {
		end := min(start+mgetBatch, len(keys))
		vals, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, apperrors.NewStorageError("mget", prefix, err)
		}
		for _, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			out = append(out, []byte(str))
		}
	}
	return out, nil
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the characters SCAN MATCH treats as patterns.
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
