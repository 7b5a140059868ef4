package repositories

import (
	"context"

	"notedelta/internal/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// GetByID возвращает заметку независимо от владельца: проверка прав доступа
// выполняется на уровне бизнес-логики, чтобы различать "не найдено" и "чужая заметка".
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	GetByID(ctx context.Context, noteID string) (*entities.Note, error)

	GetByShareToken(ctx context.Context, token string) (*entities.Note, error)

	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error)

	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	SetSharing(ctx context.Context, noteID string, shareToken *string) (*entities.Note, error)

	Delete(ctx context.Context, noteID string) error
}
