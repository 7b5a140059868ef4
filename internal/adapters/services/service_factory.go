package services

import (
	"time"

	svc "notedelta/internal/ports/services"
)

// ServiceFactory создает все необходимые криптографические сервисы.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
	shareTokens     svc.ShareTokenGenerator
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(
	jwtSecretKey string,
	accessTokenTTL, refreshTokenTTL time.Duration,
	bcryptCost int,
) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, accessTokenTTL, refreshTokenTTL),
		shareTokens:     NewShareTokenService(),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами сессии.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}

// ShareTokenGenerator возвращает генератор токенов публикации.
func (f *ServiceFactory) ShareTokenGenerator() svc.ShareTokenGenerator {
	return f.shareTokens
}
