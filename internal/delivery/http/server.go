package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/config"
	"github.com/wemeet-microservice/internal/delivery/http/handler"
	"github.com/wemeet-microservice/internal/delivery/http/middleware"
)

// Server - HTTP server on top of Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	sessionHandler   *handler.SessionHandler
	midpointHandler  *handler.MidpointHandler
	referenceHandler *handler.ReferenceHandler
	eventHandler     *handler.EventHandler
}

// NewServer - wires middleware and routes
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *handler.SessionHandler,
	midpointHandler *handler.MidpointHandler,
	referenceHandler *handler.ReferenceHandler,
	eventHandler *handler.EventHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "WeMeet Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		sessionHandler:   sessionHandler,
		midpointHandler:  midpointHandler,
		referenceHandler: referenceHandler,
		eventHandler:     eventHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Midpoint
	api.Post("/midpoint/candidates", s.midpointHandler.Candidates)

	// Sessions
	api.Post("/sessions", s.sessionHandler.Create)
	api.Get("/sessions/:id", s.sessionHandler.Get)
	api.Delete("/sessions/:id", s.sessionHandler.Delete)
	api.Put("/sessions/:id/participants", s.sessionHandler.ReplaceParticipants)
	api.Put("/sessions/:id/filters", s.sessionHandler.SetFilters)
	api.Put("/sessions/:id/region", s.sessionHandler.SelectRegion)
	api.Get("/sessions/:id/recommendations", s.sessionHandler.GetRecommendations)
	api.Post("/sessions/:id/recommendations/refresh", s.sessionHandler.Refresh)

	// Reference data
	api.Get("/hotspots", s.referenceHandler.GetHotspots)
	api.Get("/friends", s.referenceHandler.GetFriends)
	api.Get("/purposes", s.referenceHandler.GetPurposes)

	// Calendar events
	api.Post("/events", s.eventHandler.Create)
	api.Get("/events", s.eventHandler.List)
	api.Get("/events/:id", s.eventHandler.Get)
	api.Put("/events/:id", s.eventHandler.Update)
	api.Delete("/events/:id", s.eventHandler.Delete)
}

// Start - blocking listen
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
