package app

import (
	"fmt"
	"log"
	"strings"

	"placement-pro/internal/config"
	"placement-pro/internal/delivery/http/handler"
	"placement-pro/internal/delivery/http/middleware"
	"placement-pro/internal/delivery/http/routes"
	"placement-pro/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(cfg, c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	accessMw := middleware.NewAccessLogMiddleware(logger, "/health", "/ws/analyses")
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	registry := routes.NewRegistry(routes.Handlers{
		Health:    handler.NewHealthHandler(c.CatalogUC),
		SkillGap:  handler.NewSkillGapHandler(c.SkillGap),
		Catalog:   handler.NewCatalogHandler(c.CatalogUC),
		Interview: handler.NewInterviewHandler(c.Interview),
		WS:        ws.NewHandler(c.Hub, c.Logger, c.Config.WS.AllowedOrigins...),
	})
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
