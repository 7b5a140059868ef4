package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	svc "notedelta/internal/ports/services"
)

// Длина токена публикации в байтах до кодирования.
const shareTokenBytes = 32

// ErrGeneratingShareToken возвращается при сбое источника энтропии.
var ErrGeneratingShareToken = errors.New("failed to generate share token")

// ShareTokenService реализует интерфейс ShareTokenGenerator
// на основе crypto/rand с URL-безопасным кодированием.
type ShareTokenService struct{}

// NewShareTokenService создает новый генератор токенов публикации.
func NewShareTokenService() svc.ShareTokenGenerator {
	return &ShareTokenService{}
}

// Generate возвращает криптографически случайный URL-безопасный токен.
func (s *ShareTokenService) Generate(_ context.Context) (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingShareToken, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
