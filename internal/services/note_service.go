package services

import (
	"context"
	"notesvc/internal/database/dto"
	"notesvc/internal/database/models"
	"notesvc/internal/database/repositories"

	"github.com/google/uuid"
)

// NoteService is what the HTTP layer sees. A nil response with a nil error
// means the note does not exist.
type NoteService interface {
	GetNotes(ctx context.Context) ([]dto.NoteResponse, error)
	GetNote(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	CreateNote(ctx context.Context, title, content string) (*dto.NoteResponse, error)
	UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	repo repositories.NoteRepository
}

func NewNoteService(repo repositories.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) GetNotes(ctx context.Context) ([]dto.NoteResponse, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrap("get notes", err)
	}

	resp := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, toResponse(note))
	}
	return resp, nil
}

func (s *noteService) GetNote(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("get note", err)
	}
	return toResponsePtr(note), nil
}

func (s *noteService) CreateNote(ctx context.Context, title, content string) (*dto.NoteResponse, error) {
	note, err := s.repo.Create(ctx, title, content)
	if err != nil {
		return nil, wrap("create note", err)
	}
	return toResponsePtr(note), nil
}

func (s *noteService) UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (*dto.NoteResponse, error) {
	note, err := s.repo.Update(ctx, id, title, content)
	if err != nil {
		return nil, wrap("update note", err)
	}
	return toResponsePtr(note), nil
}

func (s *noteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrap("delete note", err)
	}
	return nil
}

func toResponse(note models.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toResponsePtr(note *models.Note) *dto.NoteResponse {
	if note == nil {
		return nil
	}
	resp := toResponse(*note)
	return &resp
}
