// Package pipeline runs model-backed team matching for projects.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"staffmatch/internal/ai"
	"staffmatch/internal/config"
	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/matching"
	"staffmatch/internal/domain/skill"
	"staffmatch/internal/domain/team"
	"staffmatch/internal/logger"
	"staffmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// matchTemperature is the sampling temperature for ranking requests.
const matchTemperature = 0.7

// GeneratorFactory returns the model client for the given settings.
type GeneratorFactory func(cfg config.AIConfig) (ai.Generator, error)

// ResourceCache drops cached views derived from team assignments.
type ResourceCache interface {
	InvalidateResources(ctx context.Context) error
}

// Notifier announces new team assignments to connected clients.
type Notifier interface {
	TeamMatched(projectID int64, inserted int64)
}

type Params struct {
	Employees repository.EmployeeRepository
	Skills    repository.SkillRepository
	Teams     repository.TeamRepository

	// Generator defaults to the process-wide shared client.
	Generator GeneratorFactory
	// AIConfig is read at the start of every run. It defaults to the live environment.
	AIConfig func() config.AIConfig

	Cache  ResourceCache
	Events Notifier
	Logger *zap.Logger
}

// Outcome summarizes one run.
type Outcome struct {
	RunID      string        `json:"run_id"`
	Mode       matching.Mode `json:"mode"`
	Candidates int           `json:"candidates"`
	Rejected   int           `json:"rejected"`
	Valid      int           `json:"valid"`
	Discarded  []int64       `json:"discarded,omitempty"`
	Inserted   int64         `json:"inserted"`
}

type TeamMatching struct {
	employees repository.EmployeeRepository
	skills    repository.SkillRepository
	teams     repository.TeamRepository
	generator GeneratorFactory
	aiConfig  func() config.AIConfig
	cache     ResourceCache
	events    Notifier
	log       *zap.Logger

	inflight sync.WaitGroup
}

func NewTeamMatching(p Params) *TeamMatching {
	gen := p.Generator
	if gen == nil {
		gen = ai.SharedGenerator
	}
	cfg := p.AIConfig
	if cfg == nil {
		cfg = config.AIFromEnv
	}
	return &TeamMatching{
		employees: p.Employees,
		skills:    p.Skills,
		teams:     p.Teams,
		generator: gen,
		aiConfig:  cfg,
		cache:     p.Cache,
		events:    p.Events,
		log:       logger.OrNop(p.Logger).Named("pipeline"),
	}
}

// Run matches employees to the project and persists the accepted matches. Each
// stage failure is returned as a *StageError; Run itself never drops an error.
// Zero accepted matches is a successful outcome.
func (m *TeamMatching) Run(ctx context.Context, projectID int64, description string) (Outcome, error) {
	out := Outcome{RunID: uuid.NewString()}
	log := logger.ForProject(m.log, projectID, out.RunID)

	description = strings.TrimSpace(description)
	if description == "" {
		return out, stageErr(StageLoad, ErrEmptyDescription)
	}

	roster, catalog, err := m.load(ctx)
	if err != nil {
		return out, err
	}

	prompt, err := matching.BuildPrompt(description, roster, catalog)
	if err != nil {
		return out, stageErr(StagePrompt, err)
	}

	raw, err := m.invoke(ctx, log, prompt)
	if err != nil {
		return out, stageErr(StageInvoke, err)
	}

	candidates, mode, err := matching.ParseCandidates(raw)
	out.Mode = mode
	if err != nil {
		return out, stageErr(StageParse, err)
	}
	out.Candidates = len(candidates)
	if mode == matching.ModeRecovered {
		log.Warn("model response was not a JSON array, recovered objects", zap.Int("recovered", len(candidates)))
	}

	matches, rejected := matching.ValidateCandidates(candidates)
	out.Valid = len(matches)
	out.Rejected = len(rejected)
	for _, r := range rejected {
		log.Debug("candidate rejected", zap.String("reason", r.Reason), zap.String("candidate", logger.TruncateForLog(r.Raw, 200)))
	}
	if len(matches) == 0 {
		log.Info("no valid candidates in model response", zap.Int("candidates", out.Candidates))
		return out, nil
	}

	assignments, discarded, err := m.verify(ctx, projectID, matches)
	if err != nil {
		return out, stageErr(StageVerify, err)
	}
	out.Discarded = discarded
	if len(discarded) > 0 {
		log.Warn("discarding candidates for unknown employees", zap.Int64s("employee_ids", discarded))
	}
	if len(assignments) == 0 {
		return out, nil
	}

	inserted, err := m.teams.InsertSkipDuplicates(ctx, projectID, assignments)
	if err != nil {
		return out, stageErr(StagePersist, err)
	}
	out.Inserted = inserted
	if inserted > 0 {
		m.afterPersist(ctx, log, projectID, inserted)
	}
	return out, nil
}

func (m *TeamMatching) load(ctx context.Context) ([]employee.Employee, []skill.Skill, error) {
	var (
		roster  []employee.Employee
		catalog []skill.Skill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = m.employees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = m.skills.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, stageErr(StageLoad, err)
	}
	if len(roster) == 0 {
		return nil, nil, stageErr(StageLoad, ErrEmptyRoster)
	}
	if len(catalog) == 0 {
		return nil, nil, stageErr(StageLoad, ErrEmptyCatalog)
	}
	return roster, catalog, nil
}

func (m *TeamMatching) invoke(ctx context.Context, log *zap.Logger, prompt string) (string, error) {
	gen, err := m.generator(m.aiConfig())
	if err != nil {
		return "", err
	}

	start := time.Now()
	log.Info("requesting team ranking", zap.Int("prompt_length", len(prompt)))
	raw, err := gen.Generate(ctx, ai.Request{
		System:      matching.SystemInstruction,
		Prompt:      prompt,
		Temperature: matchTemperature,
	})
	if err != nil {
		return "", err
	}
	log.Info("team ranking received", zap.Duration("duration", time.Since(start)), zap.Int("response_length", len(raw)))
	return raw, nil
}

// verify keeps the matches whose employee exists and reports the ids it dropped.
func (m *TeamMatching) verify(ctx context.Context, projectID int64, matches []matching.Match) ([]team.Assignment, []int64, error) {
	existing, err := m.employees.FindExistingIDs(ctx, matching.IDs(matches))
	if err != nil {
		return nil, nil, err
	}
	known := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	assignments := make([]team.Assignment, 0, len(matches))
	var discarded []int64
	for _, mt := range matches {
		if _, ok := known[mt.EmployeeID]; !ok {
			discarded = append(discarded, mt.EmployeeID)
			continue
		}
		assignments = append(assignments, team.Assignment{ProjectID: projectID, EmployeeID: mt.EmployeeID, Score: mt.Score})
	}
	return assignments, discarded, nil
}

func (m *TeamMatching) afterPersist(ctx context.Context, log *zap.Logger, projectID int64, inserted int64) {
	if m.cache != nil {
		if err := m.cache.InvalidateResources(ctx); err != nil {
			log.Warn("resource cache invalidation failed", zap.Error(err))
		}
	}
	if m.events != nil {
		m.events.TeamMatched(projectID, inserted)
	}
}
