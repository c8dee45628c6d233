package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	opTimeout    = 3 * time.Second

	recentKey   = "redditviewer:recent"
	settingsKey = "redditviewer:settings"
)

// ErrSettingNotFound is returned by RedisStore.GetSetting for unknown keys.
var ErrSettingNotFound = errors.New("setting not found")

// RedisStore keeps the recent list as one JSON document and settings in a hash.
type RedisStore struct {
	client *redis.Client
}

// Ensure RedisStore implements Store interface.
var _ Store = (*RedisStore)(nil)

// NewRedis parses a Redis URL, connects and verifies connectivity.
func NewRedis(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisStore, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.PoolSize = 4
	options.MinIdleConns = 1
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)
	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	logger.Info("redis client connected", slog.String("addr", options.Addr))
	return &RedisStore{client: client}, nil
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// DatabaseType returns the database backend name.
func (r *RedisStore) DatabaseType() string {
	return "Redis"
}

// LoadRecent returns the cached threads, newest first.
func (r *RedisStore) LoadRecent() ([]model.RecentEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, recentKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entries, err := decodeRecentList(raw)
	if err != nil {
		// A corrupt document must not block startup.
		slog.Warn("discarding unreadable recent threads", slog.Any("error", err))
		return nil, nil
	}
	return entries, nil
}

// SaveRecent replaces the stored list with entries.
func (r *RedisStore) SaveRecent(entries []model.RecentEntry) error {
	if entries == nil {
		entries = []model.RecentEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode recent threads: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.client.Set(ctx, recentKey, raw, 0).Err()
}

// GetSetting retrieves a setting value.
func (r *RedisStore) GetSetting(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := r.client.HGet(ctx, settingsKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSettingNotFound
	}
	return val, err
}

// SetSetting saves a setting.
func (r *RedisStore) SetSetting(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.client.HSet(ctx, settingsKey, key, value).Err()
}
