// Package api определяет интерфейсы сценариев использования для транспортных адаптеров.
package api

import (
	"context"

	"notedelta/internal/domain/services"
)

// AuthUseCase определяет операции регистрации и аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*services.TokenPair, error)

	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	Logout(ctx context.Context, refreshToken string) error
}
