package services

import "context"

// ShareTokenGenerator определяет генерацию токенов публичного доступа к заметкам.
// Токен должен быть криптографически случайным и непредсказуемым.
type ShareTokenGenerator interface {
	Generate(ctx context.Context) (string, error)
}
