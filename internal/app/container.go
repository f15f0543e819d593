package app

import (
	"context"
	"fmt"
	"time"

	"staffmatch/internal/ai"
	"staffmatch/internal/config"
	"staffmatch/internal/database"
	"staffmatch/internal/database/migration"
	dbpostgres "staffmatch/internal/database/postgres"
	"staffmatch/internal/database/sqlite"
	"staffmatch/internal/infrastructure/cache"
	"staffmatch/internal/logger"
	"staffmatch/internal/pipeline"
	"staffmatch/internal/pkg/jwt"
	"staffmatch/internal/repository"
	"staffmatch/internal/ws"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

const connectAttempts = 5

// Deps are the externally owned pieces a Container is assembled from.
type Deps struct {
	DB    database.DB
	Cache *cache.Redis
	// Generator overrides the shared model client.
	Generator pipeline.GeneratorFactory
	Logger    *zap.Logger
}

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *zap.Logger

	Projects  *repository.SQLProjectRepository
	Employees *repository.SQLEmployeeRepository
	Skills    *repository.SQLSkillRepository
	Teams     *repository.SQLTeamRepository

	Hub       *ws.Hub
	Events    *ws.Notifier
	Matcher   *pipeline.TeamMatching
	Generator pipeline.GeneratorFactory
	JWT       jwt.Service

	stopHub context.CancelFunc
}

// NewContainer connects to the configured database and cache and wires every
// long-lived service.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	db, err := Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := migration.Apply(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return Assemble(cfg, Deps{
		DB:     db,
		Cache:  cache.NewRedis(ctx, cfg.Redis, log),
		Logger: log,
	}), nil
}

// Assemble wires services around an already opened database.
func Assemble(cfg config.Config, d Deps) *Container {
	log := logger.OrNop(d.Logger)
	ai.SetLogger(log)

	rc := d.Cache
	if rc == nil {
		rc = cache.Bypass(log)
	}

	c := &Container{
		Config:    cfg,
		DB:        d.DB,
		Cache:     rc,
		Logger:    log,
		Projects:  repository.NewSQLProjectRepository(d.DB),
		Employees: repository.NewSQLEmployeeRepository(d.DB),
		Skills:    repository.NewSQLSkillRepository(d.DB),
		Teams:     repository.NewSQLTeamRepository(d.DB),
		Hub:       ws.NewHub(log),
		Generator: d.Generator,
	}
	c.Events = ws.NewNotifier(c.Hub)

	hubCtx, cancel := context.WithCancel(context.Background())
	c.stopHub = cancel
	go c.Hub.Run(hubCtx)

	c.Matcher = pipeline.NewTeamMatching(pipeline.Params{
		Employees: c.Employees,
		Skills:    c.Skills,
		Teams:     c.Teams,
		Generator: d.Generator,
		Cache:     rc,
		Events:    c.Events,
		Logger:    log,
	})

	if cfg.Auth.JWTSecret != "" {
		c.JWT = jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.App.AppName, cfg.Auth.TokenTTL)
	}
	return c
}

// Connect opens the configured database, retrying while it comes up.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (database.DB, error) {
	log = logger.OrNop(log).Named("database")
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var db database.DB
	err := retry.Do(func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var err error
		switch cfg.Driver {
		case config.DriverSQLite:
			db, err = sqlite.Open(attemptCtx, cfg.SQLitePath)
		default:
			db, err = dbpostgres.Connect(attemptCtx, cfg)
		}
		return err
	},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("database connect failed, retrying", zap.Uint("attempt", n+1), zap.String("driver", cfg.Driver), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Close stops the hub and releases the cache and database. In-flight
// pipeline runs must be awaited first.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
