package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notedelta/internal/domain/entities"
	"notedelta/internal/ports/repositories"
	"notedelta/pkg/logger"
)

// Список колонок заметки в порядке сканирования.
const noteColumns = "id, user_id, title, content_delta, is_shared, share_token, created_at, updated_at"

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// scanNote сканирует одну строку результата в сущность заметки.
func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.ContentDelta,
		&note.IsShared,
		&note.ShareToken,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	query := `
        INSERT INTO notes (user_id, title, content_delta)
        VALUES ($1, $2, $3)
        RETURNING ` + noteColumns

	created, err := scanNote(r.pool.QueryRow(ctx, query, note.UserID, note.Title, note.ContentDelta))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// GetByID получает заметку по ID без фильтра по владельцу:
// разграничение доступа выполняется бизнес-логикой.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1
    `

	note, err := scanNote(r.pool.QueryRow(ctx, query, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// GetByShareToken получает опубликованную заметку по публичному токену.
func (r *NoteRepository) GetByShareToken(ctx context.Context, token string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByShareToken"))

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE share_token = $1 AND is_shared = true
    `

	note, err := scanNote(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "shared note not found")
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get shared note", zap.Error(err))
		return nil, fmt.Errorf("failed to get shared note: %w", err)
	}

	return note, nil
}

// ListByUserID получает список заметок пользователя с пагинацией,
// упорядоченный по updated_at по убыванию.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByUserID"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID), zap.Int("limit", limit), zap.Int("offset", offset))

	var totalCount int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = $1`,
		userID,
	).Scan(&totalCount)

	if err != nil {
		log.Error(ctx, "failed to count notes", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE user_id = $1
        ORDER BY updated_at DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, totalCount, nil
}

// Update обновляет заголовок и содержимое заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	query := `
        UPDATE notes
        SET title = $2, content_delta = $3, updated_at = $4
        WHERE id = $1
        RETURNING ` + noteColumns

	updated, err := scanNote(r.pool.QueryRow(ctx, query, note.ID, note.Title, note.ContentDelta, note.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found for update", zap.String("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return updated, nil
}

// SetSharing устанавливает публичный токен заметки. Nil-токен
// отключает публикацию и очищает share_token.
func (r *NoteRepository) SetSharing(ctx context.Context, noteID string, shareToken *string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "SetSharing"))
	log.Debug(ctx, "setting note sharing", zap.String("noteID", noteID), zap.Bool("shared", shareToken != nil))

	query := `
        UPDATE notes
        SET is_shared = $2, share_token = $3, updated_at = now()
        WHERE id = $1
        RETURNING ` + noteColumns

	updated, err := scanNote(r.pool.QueryRow(ctx, query, noteID, shareToken != nil, shareToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found for sharing update", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to set note sharing", zap.Error(err))
		return nil, fmt.Errorf("failed to set note sharing: %w", err)
	}

	return updated, nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion")
		return entities.ErrNoteNotFound
	}

	return nil
}
