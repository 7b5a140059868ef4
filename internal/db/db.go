// Package db инициализирует базу данных сервиса заметок.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notedelta/internal/config"
	"notedelta/pkg/db/postgres"
	"notedelta/pkg/logger"
)

// Константы сообщений инициализации базы данных.
const (
	logDBInitializing    = "initializing notes database"
	logDBInitialized     = "notes database initialized successfully"
	logMigrationStarting = "starting database migrations"

	errCtxMigrations = "failed to apply database migrations"
	errCtxConnection = "failed to connect to notes database"
	errCtxPath       = "failed to resolve migrations path"
)

// DB представляет соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// migrationsSourceURL превращает путь к каталогу миграций в file:// URL.
func migrationsSourceURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxPath, err)
	}
	return "file://" + abs, nil
}

// New применяет миграции и создает соединение с базой данных.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)
	log.Info(ctx, logDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database))

	sourceURL, err := migrationsSourceURL(migrationsDir)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, logMigrationStarting, zap.String("migrations_path", sourceURL))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), sourceURL); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxConnection, err)
	}

	log.Info(ctx, logDBInitialized)
	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
