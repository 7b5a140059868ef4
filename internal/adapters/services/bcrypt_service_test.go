package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notedelta/internal/adapters/services"
	domainsvc "notedelta/internal/domain/services"
)

func TestBcryptService_Hash(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcrypt(bcrypt.MinCost)

	t.Run("Успешное хэширование пароля", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "password123", hash)
	})

	t.Run("Разные хэши для одинаковых паролей", func(t *testing.T) {
		first, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)

		second, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Пустой пароль отклоняется", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "")

		assert.Empty(t, hash)
		assert.ErrorIs(t, err, domainsvc.ErrInvalidPassword)
	})

	t.Run("Политика длины пароля не применяется на этом уровне", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "abc")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("Некорректная стоимость заменяется значением по умолчанию", func(t *testing.T) {
		svcWithBadCost := services.NewBcrypt(-1)

		hash, err := svcWithBadCost.Hash(ctx, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})
}

func TestBcryptService_Verify(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcrypt(bcrypt.MinCost)

	t.Run("Правильный пароль проходит проверку", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)

		valid, err := svc.Verify(ctx, "password123", hash)

		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("Неправильный пароль не проходит проверку", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)

		valid, err := svc.Verify(ctx, "wrong-password", hash)

		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("Пустые аргументы отклоняются", func(t *testing.T) {
		valid, err := svc.Verify(ctx, "", "")

		assert.False(t, valid)
		assert.ErrorIs(t, err, domainsvc.ErrInvalidPassword)
	})

	t.Run("Некорректный хэш возвращает ошибку", func(t *testing.T) {
		valid, err := svc.Verify(ctx, "password123", "not-a-bcrypt-hash")

		assert.False(t, valid)
		assert.Error(t, err)
	})
}
