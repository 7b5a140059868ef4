package api

import (
	"context"

	"notedelta/internal/domain/entities"
)

// UserUseCase определяет операции над учетной записью пользователя.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)

	UpdatePassword(ctx context.Context, userID, newPassword string) (*entities.User, error)

	DeleteUser(ctx context.Context, userID string) error
}
