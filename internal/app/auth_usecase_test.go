package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notedelta/internal/app"
	"notedelta/internal/domain/entities"
	"notedelta/internal/domain/services"
)

func TestRegister(t *testing.T) {
	testEmail := "test@example.com"
	testPassword := "password123"
	hashedPassword := "hashed_password"
	generatedUserID := "generated-user-id"

	now := time.Now()
	accessExpires := now.Add(15 * time.Minute)
	refreshExpires := now.Add(24 * time.Hour)

	accessToken := "access-token-123"
	refreshToken := "refresh-token-456"

	createdUser := &entities.User{
		ID:           generatedUserID,
		Email:        testEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tests := []struct {
		name         string
		email        string
		password     string
		setupMocks   func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr  error
		errorContext string
	}{
		{
			name:     "Success - user registered successfully",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == testEmail && u.PasswordHash == hashedPassword
				})).Return(createdUser, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, generatedUserID).
					Return(accessToken, accessExpires, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, generatedUserID).
					Return(refreshToken, refreshExpires, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(rt *services.RefreshToken) bool {
					return rt.UserID == generatedUserID && rt.Token == refreshToken && !rt.IsRevoked
				})).Return(nil).Once()
			},
		},
		{
			name:     "Success - email is normalized to lower case",
			email:    "  Test@Example.COM ",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == testEmail
				})).Return(createdUser, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, generatedUserID).
					Return(accessToken, accessExpires, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, generatedUserID).
					Return(refreshToken, refreshExpires, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:     "Error - invalid email format",
			email:    "invalid-email",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
			},
			expectedErr:  entities.ErrInvalidEmail,
			errorContext: "validating email",
		},
		{
			name:     "Error - password too short",
			email:    testEmail,
			password: "short",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
			},
			expectedErr:  entities.ErrPasswordTooShort,
			errorContext: "validating password",
		},
		{
			name:     "Error - user already exists",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(createdUser, nil).Once()
			},
			expectedErr:  services.ErrEmailAlreadyExists,
			errorContext: "email already registered",
		},
		{
			name:     "Error - duplicate detected on insert",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrEmailAlreadyExists).Once()
			},
			expectedErr:  services.ErrEmailAlreadyExists,
			errorContext: "email already registered",
		},
		{
			name:     "Error - token generation failure",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.Anything).Return(createdUser, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, generatedUserID).
					Return("", time.Time{}, errors.New("token generation failed")).Once()
			},
			expectedErr:  services.ErrTokenGenerationFailed,
			errorContext: "generating tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenRepo := new(mockTokenRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			tt.setupMocks(userRepo, tokenRepo, passwordSvc, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

			tokenPair, err := authUseCase.Register(context.Background(), tt.email, tt.password)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Contains(t, err.Error(), tt.errorContext)
				assert.Nil(t, tokenPair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, tokenPair)
				assert.Equal(t, generatedUserID, tokenPair.UserID)
				assert.Equal(t, accessToken, tokenPair.AccessToken)
				assert.Equal(t, refreshToken, tokenPair.RefreshToken)
				assert.Equal(t, accessExpires, tokenPair.ExpiresAt)
			}

			userRepo.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	testEmail := "test@example.com"
	testPassword := "password123"
	hashedPassword := "hashed_password"
	userID := "user-id-1"

	now := time.Now()
	accessExpires := now.Add(15 * time.Minute)
	refreshExpires := now.Add(24 * time.Hour)

	user := &entities.User{
		ID:           userID,
		Email:        testEmail,
		PasswordHash: hashedPassword,
	}

	tests := []struct {
		name         string
		email        string
		password     string
		setupMocks   func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr  error
		errorContext string
	}{
		{
			name:     "Success - valid credentials",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID).
					Return("access", accessExpires, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
					Return("refresh", refreshExpires, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:     "Error - unknown email yields not found",
			email:    "missing@example.com",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, "missing@example.com").
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr:  entities.ErrUserNotFound,
			errorContext: "finding user",
		},
		{
			name:     "Error - wrong password yields invalid credentials",
			email:    testEmail,
			password: "wrong-password",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(user, nil).Once()
				passwordSvc.On("Verify", mock.Anything, "wrong-password", hashedPassword).Return(false, nil).Once()
			},
			expectedErr:  services.ErrInvalidCredentials,
			errorContext: "invalid credentials",
		},
		{
			name:     "Error - repository failure",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, errors.New("database error")).Once()
			},
			expectedErr:  errors.New("database error"),
			errorContext: "finding user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenRepo := new(mockTokenRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			tt.setupMocks(userRepo, tokenRepo, passwordSvc, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

			tokenPair, err := authUseCase.Login(context.Background(), tt.email, tt.password)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContext)
				if errors.Is(err, entities.ErrUserNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				assert.Nil(t, tokenPair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, tokenPair)
				assert.Equal(t, userID, tokenPair.UserID)
			}

			userRepo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
		})
	}
}

func TestRefreshTokens(t *testing.T) {
	userID := "user-id-1"
	oldToken := "old-refresh-token"

	now := time.Now()
	user := &entities.User{ID: userID, Email: "test@example.com"}

	storedToken := &services.RefreshToken{
		ID:        "token-id",
		UserID:    userID,
		Token:     oldToken,
		ExpiresAt: now.Add(time.Hour),
	}

	t.Run("Success - tokens rotated", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		tokenRepo.On("FindByToken", mock.Anything, oldToken).Return(storedToken, nil).Once()
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil).Once()
		tokenRepo.On("RevokeToken", mock.Anything, oldToken).Return(nil).Once()
		tokenSvc.On("GenerateAccessToken", mock.Anything, userID).
			Return("new-access", now.Add(15*time.Minute), nil).Once()
		tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
			Return("new-refresh", now.Add(24*time.Hour), nil).Once()
		tokenRepo.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

		tokenPair, err := authUseCase.RefreshTokens(context.Background(), oldToken)

		require.NoError(t, err)
		assert.Equal(t, "new-access", tokenPair.AccessToken)
		assert.Equal(t, "new-refresh", tokenPair.RefreshToken)

		tokenRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("Error - unknown refresh token", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		tokenRepo.On("FindByToken", mock.Anything, "bogus").
			Return(nil, services.ErrInvalidRefreshToken).Once()

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

		tokenPair, err := authUseCase.RefreshTokens(context.Background(), "bogus")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		assert.Nil(t, tokenPair)
	})

	t.Run("Error - revoked refresh token", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		revoked := &services.RefreshToken{
			UserID:    userID,
			Token:     oldToken,
			IsRevoked: true,
		}
		tokenRepo.On("FindByToken", mock.Anything, oldToken).Return(revoked, nil).Once()

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

		tokenPair, err := authUseCase.RefreshTokens(context.Background(), oldToken)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrRevokedRefreshToken)
		assert.Nil(t, tokenPair)
	})

	t.Run("Error - expired refresh token", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		expired := &services.RefreshToken{
			UserID:    userID,
			Token:     oldToken,
			ExpiresAt: now.Add(-24 * time.Hour),
		}
		tokenRepo.On("FindByToken", mock.Anything, oldToken).Return(expired, nil).Once()

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

		tokenPair, err := authUseCase.RefreshTokens(context.Background(), oldToken)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		assert.Nil(t, tokenPair)
		tokenRepo.AssertNotCalled(t, "RevokeToken", mock.Anything, mock.Anything)
		tokenSvc.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything)
	})
}

func TestLogout(t *testing.T) {
	refreshToken := "refresh-token-1"

	t.Run("Success - token revoked", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		tokenRepo.On("FindByToken", mock.Anything, refreshToken).
			Return(&services.RefreshToken{UserID: "user-id-1", Token: refreshToken}, nil).Once()
		tokenRepo.On("RevokeToken", mock.Anything, refreshToken).Return(nil).Once()

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

		require.NoError(t, authUseCase.Logout(context.Background(), refreshToken))
		tokenRepo.AssertExpectations(t)
	})

	t.Run("Error - revocation failure", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenRepo := new(mockTokenRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		tokenRepo.On("FindByToken", mock.Anything, refreshToken).
			Return(nil, services.ErrInvalidRefreshToken).Once()
		tokenRepo.On("RevokeToken", mock.Anything, refreshToken).
			Return(services.ErrInvalidRefreshToken).Once()

		authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)

		err := authUseCase.Logout(context.Background(), refreshToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
	})
}
