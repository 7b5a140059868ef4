package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notedelta/internal/domain/entities"
	"notedelta/internal/ports/api"
	"notedelta/internal/ports/cache"
	"notedelta/internal/ports/repositories"
	svc "notedelta/internal/ports/services"
	"notedelta/pkg/logger"
)

const (
	methodCreateNote     = "CreateNote"
	methodGetNote        = "GetNote"
	methodGetSharedNote  = "GetSharedNote"
	methodListNotes      = "ListNotes"
	methodUpdateNote     = "UpdateNote"
	methodDeleteNote     = "DeleteNote"
	methodEnableSharing  = "EnableSharing"
	methodDisableSharing = "DisableSharing"

	msgCreatingNote       = "creating note"
	msgNoteCreated        = "note created"
	msgNoteRetrieved      = "note retrieved"
	msgSharedNoteLookup   = "looking up note by share token"
	msgSharedNoteFromHit  = "shared note served from cache"
	msgListingNotes       = "listing notes"
	msgUpdatingNote       = "updating note"
	msgNoteUpdated        = "note updated"
	msgDeletingNote       = "deleting note"
	msgNoteDeleted        = "note deleted"
	msgEnablingSharing    = "enabling note sharing"
	msgSharingEnabled     = "note sharing enabled"
	msgDisablingSharing   = "disabling note sharing"
	msgSharingDisabled    = "note sharing disabled"
	msgForeignNoteAccess  = "attempt to access note of another user"
	msgErrCacheRead       = "failed to read shared note from cache"
	msgErrCacheWrite      = "failed to store shared note in cache"
	msgErrCacheInvalidate = "failed to invalidate shared note cache entry"

	errCtxValidatingOwner   = "validating note owner"
	errCtxValidatingNote    = "validating note fields"
	errCtxCreatingNote      = "creating note"
	errCtxFetchingNote      = "fetching note"
	errCtxCheckingOwnership = "checking note ownership"
	errCtxFetchingShared    = "fetching shared note"
	errCtxListingNotes      = "listing notes"
	errCtxUpdatingNote      = "updating note"
	errCtxDeletingNote      = "deleting note"
	errCtxGeneratingToken   = "generating share token"
	errCtxSettingSharing    = "setting sharing state"
)

// Префикс ключей кэша публичных заметок.
const sharedNoteCachePrefix = "shared_note:"

// Значения пагинации по умолчанию.
const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// NoteUseCaseImpl реализует интерфейс NoteUseCase.
// Кэш необязателен: при nil все операции идут напрямую в хранилище.
type NoteUseCaseImpl struct {
	noteRepo    repositories.NoteRepository
	userRepo    repositories.UserRepository
	shareTokens svc.ShareTokenGenerator
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewNoteUseCase создает новый экземпляр сервиса заметок.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	userRepo repositories.UserRepository,
	shareTokens svc.ShareTokenGenerator,
	sharedCache cache.Cache,
	cacheTTL time.Duration,
) api.NoteUseCase {
	return &NoteUseCaseImpl{
		noteRepo:    noteRepo,
		userRepo:    userRepo,
		shareTokens: shareTokens,
		cache:       sharedCache,
		cacheTTL:    cacheTTL,
	}
}

// CreateNote создает новую заметку для существующего пользователя.
func (uc *NoteUseCaseImpl) CreateNote(ctx context.Context, ownerID, title, contentDelta string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.String("ownerID", ownerID))
	log.Debug(ctx, msgCreatingNote)

	if _, err := uc.userRepo.FindByID(ctx, ownerID); err != nil {
		log.Debug(ctx, "note owner not found", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingOwner, err)
	}

	if err := validateNoteFields(title, contentDelta); err != nil {
		log.Debug(ctx, "invalid note fields", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	note, err := uc.noteRepo.Create(ctx, entities.NewNote(ownerID, title, contentDelta))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", note.ID))
	return note, nil
}

// GetNote возвращает заметку, если запрашивающий является владельцем.
// Отсутствующая заметка и чужая заметка - разные доменные ошибки.
func (uc *NoteUseCaseImpl) GetNote(ctx context.Context, noteID, requesterID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetNote), zap.String("noteID", noteID))

	note, err := uc.getOwnedNote(ctx, noteID, requesterID)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgNoteRetrieved)
	return note, nil
}

// GetSharedNote возвращает заметку по публичному токену без проверки владельца.
func (uc *NoteUseCaseImpl) GetSharedNote(ctx context.Context, shareToken string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetSharedNote))
	log.Debug(ctx, msgSharedNoteLookup)

	if shareToken == "" {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingShared, entities.ErrNoteNotFound)
	}

	if note, ok := uc.sharedNoteFromCache(ctx, shareToken); ok {
		log.Debug(ctx, msgSharedNoteFromHit)
		return note, nil
	}

	note, err := uc.noteRepo.GetByShareToken(ctx, shareToken)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFetchingShared, entities.ErrNoteNotFound)
		}
		log.Error(ctx, "failed to get shared note", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingShared, err)
	}

	uc.storeSharedNoteInCache(ctx, shareToken, note)

	return note, nil
}

// ListNotes возвращает список заметок пользователя с пагинацией,
// упорядоченный по времени обновления по убыванию.
func (uc *NoteUseCaseImpl) ListNotes(ctx context.Context, ownerID string, limit, offset int) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("ownerID", ownerID))
	log.Debug(ctx, msgListingNotes, zap.Int("limit", limit), zap.Int("offset", offset))

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := uc.noteRepo.ListByUserID(ctx, ownerID, limit, offset)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	return notes, total, nil
}

// UpdateNote обновляет переданные поля заметки и поднимает updated_at.
func (uc *NoteUseCaseImpl) UpdateNote(ctx context.Context, noteID, ownerID string, title, contentDelta *string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote), zap.String("noteID", noteID))
	log.Debug(ctx, msgUpdatingNote)

	note, err := uc.getOwnedNote(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		note.Title = *title
	}
	if contentDelta != nil {
		note.ContentDelta = *contentDelta
	}

	if err := validateNoteFields(note.Title, note.ContentDelta); err != nil {
		log.Debug(ctx, "invalid note fields", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	note.UpdatedAt = time.Now().UTC()

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	uc.invalidateSharedNoteCache(ctx, note.ShareToken)

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// DeleteNote удаляет заметку владельца.
func (uc *NoteUseCaseImpl) DeleteNote(ctx context.Context, noteID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.String("noteID", noteID))
	log.Debug(ctx, msgDeletingNote)

	note, err := uc.getOwnedNote(ctx, noteID, ownerID)
	if err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	uc.invalidateSharedNoteCache(ctx, note.ShareToken)

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// EnableSharing выдает заметке новый публичный токен и возвращает его.
// Повторный вызов перегенерирует токен: прежний становится недействительным.
func (uc *NoteUseCaseImpl) EnableSharing(ctx context.Context, noteID, ownerID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodEnableSharing), zap.String("noteID", noteID))
	log.Debug(ctx, msgEnablingSharing)

	note, err := uc.getOwnedNote(ctx, noteID, ownerID)
	if err != nil {
		return "", err
	}

	token, err := uc.shareTokens.Generate(ctx)
	if err != nil {
		log.Error(ctx, "failed to generate share token", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	if _, err := uc.noteRepo.SetSharing(ctx, noteID, &token); err != nil {
		log.Error(ctx, "failed to enable sharing", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxSettingSharing, err)
	}

	uc.invalidateSharedNoteCache(ctx, note.ShareToken)

	log.Info(ctx, msgSharingEnabled)
	return token, nil
}

// DisableSharing отзывает публичный токен заметки.
func (uc *NoteUseCaseImpl) DisableSharing(ctx context.Context, noteID, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDisableSharing), zap.String("noteID", noteID))
	log.Debug(ctx, msgDisablingSharing)

	note, err := uc.getOwnedNote(ctx, noteID, ownerID)
	if err != nil {
		return err
	}

	if _, err := uc.noteRepo.SetSharing(ctx, noteID, nil); err != nil {
		log.Error(ctx, "failed to disable sharing", zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSettingSharing, err)
	}

	uc.invalidateSharedNoteCache(ctx, note.ShareToken)

	log.Info(ctx, msgSharingDisabled)
	return nil
}

// getOwnedNote получает заметку и проверяет владельца. Порядок проверок
// фиксирован: сначала существование (ErrNoteNotFound), затем владение
// (ErrNoteAccessDenied), независимо от валидности запрашивающего.
func (uc *NoteUseCaseImpl) getOwnedNote(ctx context.Context, noteID, ownerID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("noteID", noteID))

	if noteID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingNote, entities.ErrEmptyNoteID)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFetchingNote, entities.ErrNoteNotFound)
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingNote, err)
	}

	if note.UserID != ownerID {
		log.Debug(ctx, msgForeignNoteAccess, zap.String("requesterID", ownerID))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwnership, entities.ErrNoteAccessDenied)
	}

	return note, nil
}

// sharedNoteFromCache пытается прочитать публичную заметку из кэша.
func (uc *NoteUseCaseImpl) sharedNoteFromCache(ctx context.Context, token string) (*entities.Note, bool) {
	if uc.cache == nil {
		return nil, false
	}

	log := logger.Log(ctx)

	raw, err := uc.cache.Get(ctx, sharedNoteCachePrefix+token)
	if err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil, false
	}

	return &note, true
}

// storeSharedNoteInCache сохраняет публичную заметку в кэш. Ошибки кэша
// не влияют на результат операции.
func (uc *NoteUseCaseImpl) storeSharedNoteInCache(ctx context.Context, token string, note *entities.Note) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(note)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.Error(err))
		return
	}

	if err := uc.cache.Set(ctx, sharedNoteCachePrefix+token, string(raw), uc.cacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.Error(err))
	}
}

// invalidateSharedNoteCache удаляет кэшированную запись прежнего токена.
func (uc *NoteUseCaseImpl) invalidateSharedNoteCache(ctx context.Context, token *string) {
	if uc.cache == nil || token == nil {
		return
	}

	if err := uc.cache.Delete(ctx, sharedNoteCachePrefix+*token); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheInvalidate, zap.Error(err))
	}
}

// validateNoteFields проверяет заголовок и содержимое заметки.
// Содержимое должно быть корректным JSON-документом (delta) не больше 2 MiB.
func validateNoteFields(title, contentDelta string) error {
	if len(title) > entities.MaxTitleLength {
		return entities.ErrTitleTooLong
	}
	if len(contentDelta) > entities.MaxContentSize {
		return entities.ErrContentTooLarge
	}
	if !json.Valid([]byte(contentDelta)) {
		return entities.ErrInvalidContent
	}
	return nil
}
