package services_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedelta/internal/adapters/services"
)

func TestShareTokenService_Generate(t *testing.T) {
	ctx := context.Background()
	svc := services.NewShareTokenService()

	t.Run("Токен непустой и URL-безопасный", func(t *testing.T) {
		token, err := svc.Generate(ctx)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, token, url.PathEscape(token))
	})

	t.Run("Последовательные токены уникальны", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			token, err := svc.Generate(ctx)
			require.NoError(t, err)

			_, duplicate := seen[token]
			require.False(t, duplicate)
			seen[token] = struct{}{}
		}
	})
}
