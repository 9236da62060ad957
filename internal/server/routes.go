package server

import (
	"errors"
	"notesvc/internal/database/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pingMessage = "Notes CRUD API with Fiber, Postgres and pgx"

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/ping", s.pingHandler)
	s.App.Get("/health", s.healthHandler)
	s.App.Get("/metrics", s.metrics.Handler())

	api := s.App.Group("/api")
	api.Get("/notes", s.getAllNotes)
	api.Get("/notes/:id<guid>", s.getSingleNote)
	api.Post("/notes", s.createNote)
	api.Put("/notes/:id<guid>", s.updateNote)
	api.Delete("/notes/:id<guid>", s.deleteNote)
}

func (s *FiberServer) pingHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": pingMessage,
	})
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	if s.db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
	}
	stats := s.db.Health(c.UserContext())
	if stats["status"] != "up" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(stats)
	}
	return c.JSON(stats)
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	notes, err := s.notes.GetNotes(c.UserContext())
	if err != nil {
		return s.failed(c, "error retrieving notes", err)
	}
	return c.JSON(notes)
}

// getSingleNote answers 200 with a JSON null body when the note does not exist.
func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	note, err := s.notes.GetNote(c.UserContext(), id)
	if err != nil {
		return s.failed(c, "error retrieving note", err)
	}
	return c.JSON(note)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	var req dto.CreateNote
	if err := s.bind(c, &req); err != nil {
		return err
	}
	note, err := s.notes.CreateNote(c.UserContext(), req.Title, *req.Content)
	if err != nil {
		return s.failed(c, "error creating note", err)
	}
	return c.JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateNote
	if err := s.bind(c, &req); err != nil {
		return err
	}
	note, err := s.notes.UpdateNote(c.UserContext(), id, req.Title, *req.Content)
	if err != nil {
		return s.failed(c, "error updating note", err)
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := s.notes.DeleteNote(c.UserContext(), id); err != nil {
		return s.failed(c, "error deleting note", err)
	}
	return c.JSON(nil)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid uid")
	}
	return id, nil
}

// bind decodes a JSON body into out and runs its validation tags.
func (s *FiberServer) bind(c *fiber.Ctx, out interface{}) error {
	if !c.Is("json") {
		return fiber.ErrUnsupportedMediaType
	}
	if err := c.BodyParser(out); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Validate(out); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

func (s *FiberServer) failed(c *fiber.Ctx, msg string, err error) error {
	s.log.Error(msg,
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return errFailed
}
