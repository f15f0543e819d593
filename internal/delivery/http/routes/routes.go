package routes

import (
	"staffmatch/internal/delivery/http/handler"
	v1 "staffmatch/internal/delivery/http/routes/v1"
	"staffmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	teams  *ws.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, teams *ws.Handler, api v1.Handlers) *Registry {
	return &Registry{health: health, teams: teams, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.teams == nil {
		return
	}
	app.Get("/ws/teams", r.teams.HandleTeamsWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
