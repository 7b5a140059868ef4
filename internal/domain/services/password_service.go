package services

import (
	"errors"
)

// Ошибки хэширования и проверки паролей.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)
