package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notedelta/internal/domain/entities"
	"notedelta/internal/ports/api"
	"notedelta/internal/ports/repositories"
	svc "notedelta/internal/ports/services"
	"notedelta/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"
	methodUpdatePassword = "UpdatePassword"
	methodDeleteUser     = "DeleteUser"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile successfully retrieved"
	msgUpdatingPassword    = "updating user password"
	msgPasswordUpdated     = "user password updated"
	msgDeletingUser        = "deleting user account"
	msgUserDeleted         = "user account deleted"

	msgErrFindingUserByID  = "failed to find user by ID"
	msgErrUpdatingPassword = "failed to update user password"
	msgErrDeletingUser     = "failed to delete user"

	errCtxValidatingUserID    = "validating user ID"
	errCtxFetchingProfile     = "fetching user profile"
	errCtxValidatingNewPass   = "validating new password"
	errCtxHashingNewPassword  = "hashing new password"
	errCtxPersistingNewPass   = "updating password"
	errCtxDeletingUserAccount = "deleting user"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository, passwordSvc svc.PasswordService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// GetUserProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Info(ctx, msgProfileRetrieved)
	return user, nil
}

// UpdatePassword заменяет пароль пользователя на новый.
// Новый пароль хэшируется, updated_at обновляется хранилищем.
func (u *UserUseCaseImpl) UpdatePassword(ctx context.Context, userID, newPassword string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdatePassword), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingPassword)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}
	if err := validatePassword(newPassword); err != nil {
		log.Debug(ctx, "invalid new password", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNewPass, err)
	}

	hashedPassword, err := u.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, "failed to hash new password", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingNewPassword, err)
	}

	user, err := u.userRepo.UpdatePassword(ctx, userID, hashedPassword)
	if err != nil {
		log.Error(ctx, msgErrUpdatingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPersistingNewPass, err)
	}

	log.Info(ctx, msgPasswordUpdated)
	return user, nil
}

// DeleteUser удаляет учетную запись. Заметки и refresh-токены
// пользователя удаляются каскадно на уровне БД.
func (u *UserUseCaseImpl) DeleteUser(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.String("userID", userID))
	log.Debug(ctx, msgDeletingUser)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if err := u.userRepo.Delete(ctx, userID); err != nil {
		log.Error(ctx, msgErrDeletingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUserAccount, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}
