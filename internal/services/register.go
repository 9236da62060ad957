package services

import (
	"database/sql"
	"notesvc/internal/database/repositories"
)

// ServiceRegister is the composition root: it binds concrete repositories to
// the pool and exposes the services handlers depend on.
type ServiceRegister struct {
	NoteService NoteService
}

func NewServiceRegister(db *sql.DB) ServiceRegister {
	noteRepository := repositories.NewNoteRepository(db)
	return ServiceRegister{
		NoteService: NewNoteService(noteRepository),
	}
}
