// Package server exposes the note store over a JSON REST API so several
// boards can share one SQLite file.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/pinboard/internal/dto"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	app    *fiber.App
	logger *slog.Logger
}

func New(notes service.NoteService, tags service.TagService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	app := fiber.New(fiber.Config{
		AppName:               "pinboard",
		BodyLimit:             1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(requestLogger(logger))
	app.Use(authorFromHeader)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	newNoteController(notes).RegisterRoutes(api)
	newTagController(tags).RegisterRoutes(api)

	return &Server{app: app, logger: logger}
}

// App returns the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Run listens on addr until ctx is done, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}

func authorFromHeader(c *fiber.Ctx) error {
	if a := c.Get(dto.AuthorHeader); a != "" {
		c.SetUserContext(service.WithAuthor(c.UserContext(), a))
	}
	return c.Next()
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			// Render the error now so the logged status is the one sent.
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}
		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("http_request", attrs...)
		} else {
			logger.Debug("http_request", attrs...)
		}
		return nil
	}
}
