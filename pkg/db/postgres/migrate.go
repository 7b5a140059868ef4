package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"notedelta/pkg/logger"
)

// Константы сообщений миграций.
const (
	logMigrationsApplied = "database migrations applied"
	logMigrationsNoOp    = "database schema is up to date"

	errCtxMigrateInit  = "failed to create migration instance"
	errCtxMigrateApply = "failed to apply migrations"
)

// MigrateDSN применяет миграции из указанного источника к базе по dsn.
// Отсутствие новых миграций не считается ошибкой.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, errCtxMigrateInit, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxMigrateInit, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, logMigrationsNoOp)
			return nil
		}
		log.Error(ctx, errCtxMigrateApply, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxMigrateApply, err)
	}

	log.Info(ctx, logMigrationsApplied)
	return nil
}
