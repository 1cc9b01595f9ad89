// Package server owns the fiber application: middleware, routes, and
// lifecycle.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/config"
	"github.com/herogame/herogame/internal/handler"
	"github.com/herogame/herogame/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of the game backend.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger auth.Logger
}

// New builds the fiber app and mounts every route.
func New(cfg *config.Config, repo store.RepositoryManager, auther *auth.Authenticator, logger auth.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "herogame",
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				code = ferr.Code
			}
			return ctx.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	handler.RegisterRoutes(app, repo, auther, logger)

	return &Server{
		app:    app,
		cfg:    cfg,
		logger: logger,
	}
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens until the context is canceled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("listening on %s", s.cfg.Server.Address)
		errCh <- s.app.Listen(s.cfg.Server.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}
