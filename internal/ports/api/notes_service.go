package api

import (
	"context"

	"notedelta/internal/domain/entities"
)

// NoteUseCase определяет операции над заметками.
// Для частичного обновления nil-поле означает "не менять".
type NoteUseCase interface {
	CreateNote(ctx context.Context, ownerID, title, contentDelta string) (*entities.Note, error)

	GetNote(ctx context.Context, noteID, requesterID string) (*entities.Note, error)

	GetSharedNote(ctx context.Context, shareToken string) (*entities.Note, error)

	ListNotes(ctx context.Context, ownerID string, limit, offset int) ([]*entities.Note, int, error)

	UpdateNote(ctx context.Context, noteID, ownerID string, title, contentDelta *string) (*entities.Note, error)

	DeleteNote(ctx context.Context, noteID, ownerID string) error

	EnableSharing(ctx context.Context, noteID, ownerID string) (string, error)

	DisableSharing(ctx context.Context, noteID, ownerID string) error
}
