package services

import (
	"context"
	"time"
)

// TokenService определяет операции для работы с токенами сессии.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error)

	GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
