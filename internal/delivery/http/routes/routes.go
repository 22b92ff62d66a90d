package routes

import (
	"placement-pro/internal/delivery/http/handler"
	"placement-pro/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health    *handler.HealthHandler
	SkillGap  *handler.SkillGapHandler
	Catalog   *handler.CatalogHandler
	Interview *handler.InterviewHandler
	WS        *ws.Handler
}

type Registry struct {
	handlers Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{handlers: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health == nil {
		return
	}
	r.handlers.Health.RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.handlers.WS == nil {
		return
	}
	app.Get("/ws/analyses", r.handlers.WS.HandleAnalysesWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.handlers)
}
