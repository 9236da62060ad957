package server

import (
	"notesvc/internal/config"
	"notesvc/internal/database"
	"notesvc/internal/logger"
	"notesvc/internal/metrics"
	"notesvc/internal/services"
	"notesvc/internal/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type FiberServer struct {
	*fiber.App

	db       database.Service
	notes    services.NoteService
	validate *validator.Validator
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func New(cfg *config.Config, db database.Service, register services.ServiceRegister, log *logger.Logger) *FiberServer {
	appLog := log.For("notesvc")

	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader:          "notesvc",
			AppName:               "notesvc",
			DisableStartupMessage: cfg.IsProduction(),
			ErrorHandler:          errorHandler(appLog),
		}),
		db:       db,
		notes:    register.NoteService,
		validate: validator.New(),
		metrics:  metrics.New(),
		log:      appLog,
	}

	if db != nil {
		if err := server.metrics.RegisterDB(db.DB()); err != nil {
			appLog.Warn("could not register database metrics", zap.Error(err))
		}
	}

	server.App.Use(requestid.New())
	server.App.Use(favicon.New())
	if cfg.CORSOrigins != "" {
		server.App.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			MaxAge:       3600,
		}))
	}
	server.App.Use(requestLogger(log.For("http")))
	server.App.Use(server.metrics.Middleware())
	// Inside the logger and metrics so panics are still logged and counted.
	server.App.Use(recover.New())
	if cfg.EnablePprof {
		server.App.Use(pprof.New())
	}
	return server
}
