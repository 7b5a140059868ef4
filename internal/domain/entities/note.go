package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrEmptyNoteID      = errors.New("note ID cannot be empty")
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteAccessDenied = errors.New("note belongs to another user")
	ErrInvalidContent   = errors.New("note content must be a valid delta document")
	ErrContentTooLarge  = errors.New("note content exceeds maximum size")
	ErrTitleTooLong     = errors.New("note title is too long")
)

// Ограничения на содержимое заметки.
const (
	MaxContentSize = 2 * 1024 * 1024
	MaxTitleLength = 200
)

// Note представляет собой заметку пользователя.
// ContentDelta хранит сериализованный rich-text документ (delta), а не HTML.
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

// NewNote creates a new note with the given user ID, title, and content.
func NewNote(userID, title, contentDelta string) *Note {
	now := time.Now().UTC()
	return &Note{
		UserID:       userID,
		Title:        title,
		ContentDelta: contentDelta,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
