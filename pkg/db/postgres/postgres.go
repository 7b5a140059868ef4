// Package postgres предоставляет подключение к PostgreSQL и запуск миграций.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notedelta/pkg/logger"
)

// Константы сообщений подключения к базе данных.
const (
	logConnecting = "connecting to Postgres database"
	logConnected  = "successfully connected to Postgres"
	logClosing    = "closing Postgres connection pool"

	errCtxParseConfig = "failed to parse connection config"
	errCtxCreatePool  = "failed to create connection pool"
	errCtxPing        = "failed to ping database"
)

// Database представляет пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул соединений и проверяет доступность базы.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx)
	log.Info(ctx, logConnecting, zap.Int("min_conn", minConn), zap.Int("max_conn", maxConn))

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, errCtxParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxParseConfig, err)
	}
	poolCfg.MinConns = int32(minConn)
	poolCfg.MaxConns = int32(maxConn)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, errCtxCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatePool, err)
	}

	db := &Database{pool: pool}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, errCtxPing, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, logConnected)
	return db, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxPing, err)
	}
	return nil
}

// Close закрывает пул соединений.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, logClosing)
	db.pool.Close()
}
