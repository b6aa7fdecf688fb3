package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// DefaultRedisPrefix is the key prefix used when none is configured.
const DefaultRedisPrefix = "libdiff"

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// Prefix namespaces snapshot keys.
	Prefix string

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration
}

// RedisSource is a Source over JSON-encoded versions stored in Redis.
type RedisSource struct {
	client *redis.Client
	prefix string
}

// NewRedisSource connects to Redis and verifies the connection.
func NewRedisSource(opts RedisOptions) (*RedisSource, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultRedisPrefix
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, differr.NewConfiguration("store.NewRedisSource", fmt.Errorf("failed to parse Redis URL: %w", err))
	}
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, differr.NewStorage("store.NewRedisSource", fmt.Errorf("failed to connect to Redis: %w", err))
	}

	return &RedisSource{client: client, prefix: opts.Prefix}, nil
}

func (s *RedisSource) key(versionID string) string {
	return fmt.Sprintf("%s:version:%s", s.prefix, versionID)
}

// GetVersion implements Source.
func (s *RedisSource) GetVersion(ctx context.Context, versionID string) (*snapshot.Version, error) {
	data, err := s.client.Get(ctx, s.key(versionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, versionNotFound(versionID)
	}
	if err != nil {
		return nil, differr.NewStorage(opGetVersion, fmt.Errorf("failed to get version %s: %w", versionID, err))
	}

	var v snapshot.Version
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, differr.NewStorage(opGetVersion, fmt.Errorf("failed to unmarshal version %s: %w", versionID, err))
	}
	return prepare(&v, versionID)
}

// GetLibrary implements Source.
func (s *RedisSource) GetLibrary(ctx context.Context, versionID, libraryRef string) (*snapshot.Library, error) {
	v, err := s.GetVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return libraryOf(v, libraryRef)
}

// Put stores v under its id, replacing any previous value.
func (s *RedisSource) Put(ctx context.Context, v *snapshot.Version) error {
	data, err := json.Marshal(v)
	if err != nil {
		return differr.NewStorage(opPut, fmt.Errorf("failed to marshal version: %w", err))
	}
	if err := s.client.Set(ctx, s.key(v.ID), data, 0).Err(); err != nil {
		return differr.NewStorage(opPut, fmt.Errorf("failed to store version %s: %w", v.ID, err))
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
