// Package cache содержит реализацию кэширования с использованием Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notedelta/internal/config"
	"notedelta/internal/ports/cache"
	"notedelta/pkg/logger"
)

// Константы сообщений об ошибках кэша.
const (
	errCtxConnect = "failed to connect to redis"
	errCtxGet     = "redis get failed"
	errCtxSet     = "redis set failed"
	errCtxDelete  = "redis delete failed"
	errCtxClose   = "failed to close redis connection"
)

// RedisCache реализует интерфейс Cache поверх go-redis.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func newClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})
}

// NewRedisCache создает RedisCache и проверяет соединение.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	client := newClient(cfg)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxConnect, err)
	}

	logger.Log(ctx).Info(ctx, "connected to redis", zap.String("addr", cfg.GetAddress()))

	return &RedisCache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// Get получает значение по ключу. Отсутствие ключа не считается ошибкой
// и возвращает пустую строку.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		logger.Log(ctx).Error(ctx, errCtxGet, zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGet, err)
	}
	return value, nil
}

// Set устанавливает значение для ключа. Нулевой ttl заменяется
// значением по умолчанию из конфигурации.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Log(ctx).Error(ctx, errCtxSet, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSet, err)
	}
	return nil
}

// Delete удаляет значение по ключу. Удаление отсутствующего ключа не ошибка.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Log(ctx).Error(ctx, errCtxDelete, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDelete, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", errCtxClose, err)
	}
	return nil
}
