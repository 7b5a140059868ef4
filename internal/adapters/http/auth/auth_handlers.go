// Package auth содержит HTTP обработчики для аутентификации и профиля.
package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedelta/internal/adapters/http/dto"
	"notedelta/internal/adapters/http/httperr"
	"notedelta/internal/adapters/http/middleware"
	"notedelta/internal/ports/api"
	"notedelta/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister       = "auth handler: register"
	LogHandlerLogin          = "auth handler: login"
	LogHandlerRefreshTokens  = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout         = "auth handler: logout"
	LogHandlerGetProfile     = "auth handler: get profile"
	LogHandlerUpdatePassword = "auth handler: update password"
	LogHandlerDeleteUser     = "auth handler: delete user"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// Handler содержит HTTP обработчики для аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

func requesterID(ctx fiber.Ctx) (string, bool) {
	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	return userID, ok && userID != ""
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.Email == "" || req.Password == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	tokens, err := h.authUseCase.Register(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusCreated).JSON(&dto.TokenResponse{
		UserID:       tokens.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	})
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.Email == "" || req.Password == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	tokens, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(&dto.TokenResponse{
		UserID:       tokens.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	})
}

// RefreshTokens обрабатывает запрос на обновление токенов.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshTokens)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.RefreshToken == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "refresh token is required",
		})
	}

	tokens, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(&dto.TokenResponse{
		UserID:       tokens.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	})
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	var req dto.LogoutRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.RefreshToken == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "refresh token is required",
		})
	}

	if err := h.authUseCase.Logout(requestCtx, req.RefreshToken); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	})
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	userID, ok := requesterID(ctx)
	if !ok {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrorUnauthorized,
		})
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(&dto.UserProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// UpdatePassword обрабатывает запрос на смену пароля.
func (h *Handler) UpdatePassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdatePassword)

	userID, ok := requesterID(ctx)
	if !ok {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrorUnauthorized,
		})
	}

	var req dto.UpdatePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.NewPassword == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "new password is required",
		})
	}

	if _, err := h.userUseCase.UpdatePassword(requestCtx, userID, req.NewPassword); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "password updated successfully",
	})
}

// DeleteUser обрабатывает запрос на удаление аккаунта.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteUser)

	userID, ok := requesterID(ctx)
	if !ok {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrorUnauthorized,
		})
	}

	if err := h.userUseCase.DeleteUser(requestCtx, userID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "user deleted successfully",
	})
}
