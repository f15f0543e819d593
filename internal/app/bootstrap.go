package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffmatch/internal/config"
	"staffmatch/internal/delivery/http/handler"
	"staffmatch/internal/delivery/http/middleware"
	"staffmatch/internal/delivery/http/routes"
	v1 "staffmatch/internal/delivery/http/routes/v1"
	"staffmatch/internal/usecase"
	"staffmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an assembled container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency and returns the app with a shutdown
// function that drains in-flight matching runs before closing resources.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func(context.Context) error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	a := New(c)
	return a, a.Shutdown, nil
}

// Shutdown stops accepting requests, waits for detached matching runs and
// closes the container.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.Container.Matcher.Wait(ctx); err != nil {
		errs = append(errs, fmt.Errorf("wait for matching runs: %w", err))
	}
	if err := a.Container.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close: %w", err))
	}
	return errors.Join(errs...)
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(log)
	accessMw := middleware.NewAccessLogMiddleware(log)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	projects := usecase.NewProjectUsecase(c.Projects, c.Skills, c.Teams, c.Matcher, c.Cache, c.Logger)
	teams := usecase.NewTeamUsecase(c.Projects, c.Teams, c.Cache, c.Events, c.Logger)
	analytics := usecase.NewAnalyticsUsecase(c.Projects, c.Employees, c.Teams, c.Cache)
	insights := usecase.NewInsightsUsecase(usecase.InsightsParams{
		Projects:  c.Projects,
		Employees: c.Employees,
		Skills:    c.Skills,
		Teams:     c.Teams,
		Generator: c.Generator,
		Logger:    c.Logger,
	})

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		ws.NewHandler(c.Hub, c.Logger),
		v1.Handlers{
			Auth:      middleware.NewAuthMiddleware(c.JWT),
			Skills:    handler.NewSkillHandler(usecase.NewSkillUsecase(c.Skills)),
			Projects:  handler.NewProjectHandler(projects, teams, analytics, insights),
			Resources: handler.NewResourceHandler(analytics),
		},
	)
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
