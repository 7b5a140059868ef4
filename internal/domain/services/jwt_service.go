package services

import (
	"errors"
	"time"
)

// Ошибки работы с JWT токенами.
var (
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
)

// JWTClaims представляет доменную модель утверждений токена.
type JWTClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// JWTConfig содержит параметры подписи токенов.
type JWTConfig struct {
	SecretKey       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}
