// Package services содержит доменные типы и ошибки сервисного слоя.
package services

import (
	"errors"
	"time"
)

// Ошибки сценариев аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRevokedRefreshToken   = errors.New("refresh token has been revoked")
	ErrTokenGenerationFailed = errors.New("failed to issue authentication tokens")
)

// TokenPair - пара токенов, выдаваемая при успешной аутентификации.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// RefreshToken - сохраняемый refresh-токен с признаком отзыва.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	IsRevoked bool
}
