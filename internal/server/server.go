package server

import (
	"adorder-be/internal/bootstrap"
	"adorder-be/internal/config"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := newApp(container.Logger, cfg.App.CorsAllowedOrigins)
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// newApp builds the fiber app and its global middleware, without routes.
func newApp(log logger.ILogger, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ErrorHandler: serverutils.NewErrorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	return app
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.RegisterRoutes(api)
	c.NotificationHandler.RegisterRoutes(api)
}
