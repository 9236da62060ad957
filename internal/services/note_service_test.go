package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"notesvc/internal/database/models"
	"notesvc/internal/database/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockRepository is a mock implementation of repositories.NoteRepository
type MockRepository struct {
	mock.Mock
}

var _ repositories.NoteRepository = (*MockRepository)(nil)

func (m *MockRepository) List(ctx context.Context) ([]models.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, title, content string) (*models.Note, error) {
	args := m.Called(ctx, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, title, content string) (*models.Note, error) {
	args := m.Called(ctx, id, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ==================== TESTS ====================

var errDB = errors.New("connection reset by peer")

func sampleNote() *models.Note {
	ts := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)
	return &models.Note{
		ID:        uuid.MustParse("5f1c2d3e-4a5b-4c6d-8e7f-901234567890"),
		Title:     "a",
		Content:   "b",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func assertServiceError(t *testing.T, err error, op string) {
	t.Helper()
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, op, svcErr.Op)
	assert.ErrorIs(t, err, errDB)
}

func TestNoteService_GetNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("converts every note", func(t *testing.T) {
		repo := new(MockRepository)
		note := sampleNote()
		repo.On("List", ctx).Return([]models.Note{*note, *note}, nil)

		notes, err := NewNoteService(repo).GetNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, note.ID, notes[0].ID)
		assert.Equal(t, note.Title, notes[0].Title)
		assert.Equal(t, note.Content, notes[0].Content)
		assert.Equal(t, note.CreatedAt, notes[0].CreatedAt)
		assert.Equal(t, note.UpdatedAt, notes[0].UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("List", ctx).Return([]models.Note{}, nil)

		notes, err := NewNoteService(repo).GetNotes(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("List", ctx).Return(nil, errDB)

		notes, err := NewNoteService(repo).GetNotes(ctx)
		assert.Nil(t, notes)
		assertServiceError(t, err, "get notes")
	})
}

func TestNoteService_GetNote(t *testing.T) {
	ctx := context.Background()
	note := sampleNote()

	tests := []struct {
		name      string
		mockSetup func(*MockRepository)
		wantNil   bool
		wantOp    string
	}{
		{
			name: "found",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetByID", ctx, note.ID).Return(note, nil)
			},
		},
		{
			name: "absent",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetByID", ctx, note.ID).Return(nil, nil)
			},
			wantNil: true,
		},
		{
			name: "repository failure",
			mockSetup: func(repo *MockRepository) {
				repo.On("GetByID", ctx, note.ID).Return(nil, errDB)
			},
			wantNil: true,
			wantOp:  "get note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.mockSetup(repo)

			resp, err := NewNoteService(repo).GetNote(ctx, note.ID)

			if tt.wantOp != "" {
				assertServiceError(t, err, tt.wantOp)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, resp)
			} else {
				require.NotNil(t, resp)
				assert.Equal(t, note.ID, resp.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		note := sampleNote()
		repo.On("Create", ctx, "a", "b").Return(note, nil)

		resp, err := NewNoteService(repo).CreateNote(ctx, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, note.ID, resp.ID)
		assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, "a", "b").Return(nil, errDB)

		resp, err := NewNoteService(repo).CreateNote(ctx, "a", "b")
		assert.Nil(t, resp)
		assertServiceError(t, err, "create note")
	})
}

func TestNoteService_UpdateNote(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("updated", func(t *testing.T) {
		repo := new(MockRepository)
		note := sampleNote()
		note.ID = id
		note.Title, note.Content = "a2", "b2"
		note.UpdatedAt = note.CreatedAt.Add(time.Second)
		repo.On("Update", ctx, id, "a2", "b2").Return(note, nil)

		resp, err := NewNoteService(repo).UpdateNote(ctx, id, "a2", "b2")
		require.NoError(t, err)
		assert.Equal(t, "a2", resp.Title)
		assert.Equal(t, "b2", resp.Content)
		assert.True(t, resp.UpdatedAt.After(resp.CreatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", ctx, id, "a2", "b2").Return(nil, nil)

		resp, err := NewNoteService(repo).UpdateNote(ctx, id, "a2", "b2")
		assert.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", ctx, id, "a2", "b2").Return(nil, errDB)

		resp, err := NewNoteService(repo).UpdateNote(ctx, id, "a2", "b2")
		assert.Nil(t, resp)
		assertServiceError(t, err, "update note")
	})
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockRepository)
	repo.On("Delete", ctx, id).Return(nil).Once()
	repo.On("Delete", ctx, id).Return(errDB).Once()

	svc := NewNoteService(repo)
	assert.NoError(t, svc.DeleteNote(ctx, id))
	assertServiceError(t, svc.DeleteNote(ctx, id), "delete note")
	repo.AssertExpectations(t)
}

func TestError(t *testing.T) {
	err := wrap("get note", errDB)
	assert.Equal(t, "note service: get note: connection reset by peer", err.Error())
	assert.ErrorIs(t, err, errDB)
}

func TestNewServiceRegister(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM notes`).WillReturnResult(sqlmock.NewResult(0, 0))

	register := NewServiceRegister(db)
	require.NotNil(t, register.NoteService)
	require.NoError(t, register.NoteService.DeleteNote(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(`DELETE FROM notes`).WillReturnError(sql.ErrConnDone)
	err = register.NoteService.DeleteNote(context.Background(), uuid.New())
	var svcErr *Error
	assert.ErrorAs(t, err, &svcErr)
}
