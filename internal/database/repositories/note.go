package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notesvc/internal/database/models"

	"github.com/google/uuid"
)

// NoteRepository is the storage capability the service layer depends on.
// Lookups that match no row return a nil note and a nil error.
type NoteRepository interface {
	List(ctx context.Context) ([]models.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	Create(ctx context.Context, title, content string) (*models.Note, error)
	Update(ctx context.Context, id uuid.UUID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) List(ctx context.Context) ([]models.Note, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM notes ORDER BY created_at ASC, id ASC`
	result, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer result.Close()

	notes := []models.Note{}
	for result.Next() {
		var note models.Note
		err := result.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "getting")
}

func (r *noteRepository) Create(ctx context.Context, title, content string) (*models.Note, error) {
	query := `
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, title, content, created_at, updated_at`
	note, err := r.scanOne(r.db.QueryRowContext(ctx, query, uuid.New(), title, content), "creating")
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, errors.New("error creating note: no row returned")
	}
	return note, nil
}

func (r *noteRepository) Update(ctx context.Context, id uuid.UUID, title, content string) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, title, content, created_at, updated_at`
	return r.scanOne(r.db.QueryRowContext(ctx, query, title, content, id), "updating")
}

// Delete succeeds whether or not a row was removed.
func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	return nil
}

func (r *noteRepository) scanOne(row *sql.Row, action string) (*models.Note, error) {
	note := models.Note{}
	err := row.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error %s note: %w", action, err)
	}
	return &note, nil
}
