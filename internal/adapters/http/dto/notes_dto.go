package dto

import (
	"time"

	"notedelta/internal/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title        string `json:"title"`
	ContentDelta string `json:"content_delta" validate:"required"`
}

// UpdateNoteRequest содержит данные для обновления заметки.
// Неуказанные поля сохраняют прежние значения.
type UpdateNoteRequest struct {
	Title        *string `json:"title"`
	ContentDelta *string `json:"content_delta"`
}

// Note представляет заметку в ответах API.
type Note struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	ContentDelta string    `json:"content_delta"`
	IsShared     bool      `json:"is_shared"`
	ShareToken   *string   `json:"share_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NoteResponse содержит информацию о заметке для ответа.
type NoteResponse struct {
	Note *Note `json:"note"`
}

// SharedNoteResponse содержит публичное представление заметки без
// данных владельца.
type SharedNoteResponse struct {
	Title        string    `json:"title"`
	ContentDelta string    `json:"content_delta"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ShareResponse содержит токен публикации заметки.
type ShareResponse struct {
	ShareToken string `json:"share_token"`
}

// ListNotesResponse содержит список заметок и информацию о пагинации.
type ListNotesResponse struct {
	Notes      []*Note `json:"notes"`
	TotalCount int     `json:"total_count"`
	Offset     int     `json:"offset"`
	Limit      int     `json:"limit"`
}

// NoteFromEntity преобразует доменную заметку в DTO.
func NoteFromEntity(note *entities.Note) *Note {
	return &Note{
		ID:           note.ID,
		UserID:       note.UserID,
		Title:        note.Title,
		ContentDelta: note.ContentDelta,
		IsShared:     note.IsShared,
		ShareToken:   note.ShareToken,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
	}
}
