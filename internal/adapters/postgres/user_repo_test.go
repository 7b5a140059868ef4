package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedelta/internal/adapters/postgres"
	"notedelta/internal/domain/entities"
	"notedelta/internal/domain/services"
	"notedelta/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)

	testUser := entities.User{
		ID:           "test-user-id",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	t.Run("Успешное получение пользователя по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(testUser.ID, testUser.Email, testUser.PasswordHash, testUser.CreatedAt, testUser.UpdatedAt)

		mock.ExpectQuery("SELECT id, email, password_hash, created_at, updated_at").
			WithArgs(testUser.Email).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)

		user, err := repo.FindByEmail(ctx, testUser.Email)

		require.NoError(t, err)
		assert.Equal(t, testUser.ID, user.ID)
		assert.Equal(t, testUser.Email, user.Email)
		assert.Equal(t, testUser.PasswordHash, user.PasswordHash)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, email, password_hash, created_at, updated_at").
			WithArgs("nonexistent@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)

		user, err := repo.FindByEmail(ctx, "nonexistent@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных при поиске по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, email, password_hash, created_at, updated_at").
			WithArgs(testUser.Email).
			WillReturnError(errors.New("database connection failed"))

		repo := postgres.NewUserRepository(mock)

		user, err := repo.FindByEmail(ctx, testUser.Email)

		assert.Nil(t, user)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error querying user by email")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)

	newUser := &entities.User{
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
	}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC()
		rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("generated-id", newUser.Email, newUser.PasswordHash, now, now)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(newUser.Email, newUser.PasswordHash).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, newUser)

		require.NoError(t, err)
		assert.Equal(t, "generated-id", created.ID)
		assert.Equal(t, newUser.Email, created.Email)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нарушение уникальности email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(newUser.Email, newUser.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, newUser)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное обновление пароля", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC()
		rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("user-id", "test@example.com", "new-hash", now, now)

		mock.ExpectQuery("UPDATE users").
			WithArgs("user-id", "new-hash", pgxmock.AnyArg()).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)

		updated, err := repo.UpdatePassword(ctx, "user-id", "new-hash")

		require.NoError(t, err)
		assert.Equal(t, "new-hash", updated.PasswordHash)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден при обновлении пароля", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs("missing-id", "new-hash", pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)

		updated, err := repo.UpdatePassword(ctx, "missing-id", "new-hash")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs("user-id").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewUserRepository(mock)

		require.NoError(t, repo.Delete(ctx, "user-id"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден при удалении", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs("missing-id").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewUserRepository(mock)

		err = repo.Delete(ctx, "missing-id")
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
