// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedelta/internal/adapters/http/dto"
	"notedelta/internal/adapters/http/httperr"
	"notedelta/internal/adapters/http/middleware"
	"notedelta/internal/ports/api"
	"notedelta/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote    = "handling create note request"
	LogHandlerGetNote       = "handling get note request"
	LogHandlerListNotes     = "handling list notes request"
	LogHandlerUpdateNote    = "handling update note request"
	LogHandlerDeleteNote    = "handling delete note request"
	LogHandlerShareNote     = "handling share note request"
	LogHandlerUnshareNote   = "handling unshare note request"
	LogHandlerGetSharedNote = "handling get shared note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidShareToken  = "invalid share token"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnauthorized       = "unauthorized"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
	}
}

func requesterID(ctx fiber.Ctx) (string, bool) {
	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	return userID, ok && userID != ""
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.CreateNote(requestCtx, userID, req.Title, req.ContentDelta)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(&dto.NoteResponse{Note: dto.NoteFromEntity(note)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(requestCtx, ErrMsgInvalidNoteID)
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	note, err := h.noteUseCase.GetNote(requestCtx, noteID, userID)
	if err != nil {
		log.Error(requestCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(&dto.NoteResponse{Note: dto.NoteFromEntity(note)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetSharedNote обрабатывает публичный запрос заметки по токену публикации.
func (h *Handler) GetSharedNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetSharedNote"))
	log.Debug(requestCtx, LogHandlerGetSharedNote)

	shareToken := ctx.Params("share_token")
	if shareToken == "" {
		log.Error(requestCtx, ErrMsgInvalidShareToken)
		return sendBadRequest(ctx, ErrMsgInvalidShareToken)
	}

	note, err := h.noteUseCase.GetSharedNote(requestCtx, shareToken)
	if err != nil {
		log.Error(requestCtx, "failed to get shared note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(&dto.SharedNoteResponse{
		Title:        note.Title,
		ContentDelta: note.ContentDelta,
		UpdatedAt:    note.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос на получение списка заметок с пагинацией.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	limitStr := ctx.Query("limit", "10")
	offsetStr := ctx.Query("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		log.Error(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidPagination)
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		log.Error(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidPagination)
	}

	notes, total, err := h.noteUseCase.ListNotes(requestCtx, userID, limit, offset)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	items := make([]*dto.Note, 0, len(notes))
	for _, note := range notes {
		items = append(items, dto.NoteFromEntity(note))
	}

	if err := ctx.JSON(&dto.ListNotesResponse{
		Notes:      items,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(requestCtx, ErrMsgInvalidNoteID)
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendBadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.UpdateNote(requestCtx, noteID, userID, req.Title, req.ContentDelta)
	if err != nil {
		log.Error(requestCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(&dto.NoteResponse{Note: dto.NoteFromEntity(note)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(requestCtx, ErrMsgInvalidNoteID)
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	if err := h.noteUseCase.DeleteNote(requestCtx, noteID, userID); err != nil {
		log.Error(requestCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ShareNote обрабатывает запрос на публикацию заметки.
func (h *Handler) ShareNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ShareNote"))
	log.Debug(requestCtx, LogHandlerShareNote)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(requestCtx, ErrMsgInvalidNoteID)
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	shareToken, err := h.noteUseCase.EnableSharing(requestCtx, noteID, userID)
	if err != nil {
		log.Error(requestCtx, "failed to share note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(&dto.ShareResponse{ShareToken: shareToken}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UnshareNote обрабатывает запрос на отзыв публикации заметки.
func (h *Handler) UnshareNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UnshareNote"))
	log.Debug(requestCtx, LogHandlerUnshareNote)

	userID, ok := requesterID(ctx)
	if !ok {
		return sendUnauthorized(ctx)
	}

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(requestCtx, ErrMsgInvalidNoteID)
		return sendBadRequest(ctx, ErrMsgInvalidNoteID)
	}

	if err := h.noteUseCase.DisableSharing(requestCtx, noteID, userID); err != nil {
		log.Error(requestCtx, "failed to unshare note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendBadRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

func sendUnauthorized(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": ErrMsgUnauthorized,
	}); err != nil {
		return fmt.Errorf("failed to send unauthorized response: %w", err)
	}
	return nil
}

// handleError сопоставляет доменные ошибки кодам состояния HTTP.
func handleError(ctx fiber.Ctx, err error) error {
	if sendErr := ctx.Status(httperr.StatusFromError(err)).JSON(fiber.Map{
		"error": err.Error(),
	}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}
