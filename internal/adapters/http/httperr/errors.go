// Package httperr сопоставляет доменные ошибки кодам состояния HTTP.
package httperr

import (
	"errors"
	"net/http"

	"notedelta/internal/domain/entities"
	"notedelta/internal/domain/services"
)

// StatusFromError возвращает код состояния HTTP для доменной ошибки.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrNoteAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrRevokedRefreshToken),
		errors.Is(err, services.ErrInvalidJWTToken),
		errors.Is(err, services.ErrExpiredJWTToken):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrInvalidContent),
		errors.Is(err, entities.ErrContentTooLarge),
		errors.Is(err, entities.ErrTitleTooLong),
		errors.Is(err, entities.ErrEmptyUserID),
		errors.Is(err, entities.ErrEmptyNoteID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
