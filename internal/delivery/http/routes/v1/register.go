package v1

import (
	"staffmatch/internal/delivery/http/handler"
	"staffmatch/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers are the route groups served under /api/v1.
type Handlers struct {
	Auth      *middleware.AuthMiddleware
	Skills    *handler.SkillHandler
	Projects  *handler.ProjectHandler
	Resources *handler.ResourceHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	protected := r.Group("", h.Auth.Middleware())

	h.Skills.RegisterRoutes(protected)
	h.Projects.RegisterRoutes(protected)
	h.Resources.RegisterRoutes(protected)
}
