// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэширования опубликованных заметок.
// Отсутствие ключа не считается ошибкой: Get возвращает пустую строку.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	// Set сохраняет значение; нулевой ttl означает TTL по умолчанию.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
