package usecase

import (
	"context"
	"errors"
	"strings"

	"staffmatch/internal/ai"
	"staffmatch/internal/config"
	"staffmatch/internal/domain/analytics"
	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/insights"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/domain/skill"
	"staffmatch/internal/logger"
	"staffmatch/internal/pipeline"
	"staffmatch/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	predictionTemperature   = 0.7
	alternativesTemperature = 0.8
)

// Alternatives are the strategy teams with the budget pick among them.
type Alternatives struct {
	Teams  []insights.Team         `json:"teams"`
	Budget *analytics.BudgetChoice `json:"budget,omitempty"`
}

type InsightsUsecase interface {
	Prediction(ctx context.Context, projectID int64) (insights.Prediction, error)
	AlternativeTeams(ctx context.Context, projectID int64) (Alternatives, error)
	Suggestions(ctx context.Context, projectID int64) ([]insights.Suggestion, error)
}

type InsightsParams struct {
	Projects  repository.ProjectRepository
	Employees repository.EmployeeRepository
	Skills    repository.SkillRepository
	Teams     repository.TeamRepository

	// Generator and AIConfig default like the matching pipeline.
	Generator pipeline.GeneratorFactory
	AIConfig  func() config.AIConfig

	Logger *zap.Logger
}

// Insights answers model-backed questions about a project. Model failures never
// fail a request; they are logged and replaced by defaults.
type Insights struct {
	projects  repository.ProjectRepository
	employees repository.EmployeeRepository
	skills    repository.SkillRepository
	teams     repository.TeamRepository
	generator pipeline.GeneratorFactory
	aiConfig  func() config.AIConfig
	log       *zap.Logger
}

func NewInsightsUsecase(p InsightsParams) *Insights {
	gen := p.Generator
	if gen == nil {
		gen = ai.SharedGenerator
	}
	cfg := p.AIConfig
	if cfg == nil {
		cfg = config.AIFromEnv
	}
	return &Insights{
		projects:  p.Projects,
		employees: p.Employees,
		skills:    p.Skills,
		teams:     p.Teams,
		generator: gen,
		aiConfig:  cfg,
		log:       logger.OrNop(p.Logger).Named("insights"),
	}
}

func (u *Insights) Prediction(ctx context.Context, projectID int64) (insights.Prediction, error) {
	var (
		p       project.Project
		members []project.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p, err = u.projects.Get(gctx, projectID)
		return projectErr("get project", err)
	})
	g.Go(func() (err error) {
		members, err = u.teams.ListByProject(gctx, projectID)
		return wrapInternal("list team", err)
	})
	if err := g.Wait(); err != nil {
		return insights.Prediction{}, err
	}

	log := u.log.With(zap.Int64(logger.FieldProjectID, projectID))
	prompt, err := insights.PredictionPrompt(p, members)
	if err != nil {
		log.Warn("prediction prompt failed, serving default", zap.Error(err))
		return insights.DefaultPrediction(), nil
	}
	raw, err := u.ask(ctx, insights.PredictionSystem, prompt, predictionTemperature)
	if err != nil {
		log.Warn("prediction unavailable, serving default", zap.String("error_kind", string(ai.Classify(err))), zap.Error(err))
		return insights.DefaultPrediction(), nil
	}
	pred, err := insights.ParsePrediction(raw)
	if err != nil {
		log.Warn("prediction response unreadable, serving default", zap.Error(err), zap.String("response", logger.TruncateForLog(raw, 300)))
		return insights.DefaultPrediction(), nil
	}
	return pred, nil
}

// AlternativeTeams proposes one team per strategy from the whole roster.
func (u *Insights) AlternativeTeams(ctx context.Context, projectID int64) (Alternatives, error) {
	p, roster, catalog, err := u.loadForTeams(ctx, projectID)
	if err != nil {
		return Alternatives{}, err
	}

	teams := u.alternatives(ctx, p, roster, catalog)
	insights.EnrichNames(teams, roster)

	out := Alternatives{Teams: teams}
	if choice, ok := analytics.BudgetFriendlyOption(teamOptions(teams, roster)); ok {
		out.Budget = &choice
	}
	return out, nil
}

// Suggestions proposes employees not yet on the project team.
func (u *Insights) Suggestions(ctx context.Context, projectID int64) ([]insights.Suggestion, error) {
	p, roster, catalog, err := u.loadForTeams(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := u.teams.ListByProject(ctx, projectID)
	if err != nil {
		return nil, internalErr("list team", err)
	}

	onTeam := make(map[int64]bool, len(members))
	for _, m := range members {
		onTeam[m.Employee.ID] = true
	}
	available := make([]employee.Employee, 0, len(roster))
	for _, e := range roster {
		if !onTeam[e.ID] {
			available = append(available, e)
		}
	}
	if len(available) == 0 {
		return []insights.Suggestion{}, nil
	}

	return insights.Suggest(u.alternatives(ctx, p, available, catalog), available), nil
}

func (u *Insights) loadForTeams(ctx context.Context, projectID int64) (project.Project, []employee.Employee, []skill.Skill, error) {
	var (
		p       project.Project
		roster  []employee.Employee
		catalog []skill.Skill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p, err = u.projects.Get(gctx, projectID)
		return projectErr("get project", err)
	})
	g.Go(func() (err error) {
		roster, err = u.employees.List(gctx)
		return wrapInternal("list employees", err)
	})
	g.Go(func() (err error) {
		catalog, err = u.skills.List(gctx)
		return wrapInternal("list skills", err)
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return project.Project{}, nil, nil, ErrMissingDescription
		}
		return project.Project{}, nil, nil, err
	}
	if strings.TrimSpace(p.Description) == "" {
		return project.Project{}, nil, nil, ErrMissingDescription
	}
	return p, roster, catalog, nil
}

func (u *Insights) alternatives(ctx context.Context, p project.Project, roster []employee.Employee, catalog []skill.Skill) []insights.Team {
	log := u.log.With(zap.Int64(logger.FieldProjectID, p.ID))

	prompt, err := insights.AlternativesPrompt(p.Description, roster, catalog)
	if err != nil {
		log.Warn("alternative teams prompt failed, serving defaults", zap.Error(err))
		return insights.DefaultTeams()
	}
	raw, err := u.ask(ctx, insights.AlternativesSystem, prompt, alternativesTemperature)
	if err != nil {
		log.Warn("alternative teams unavailable, serving defaults", zap.String("error_kind", string(ai.Classify(err))), zap.Error(err))
		return insights.DefaultTeams()
	}
	teams, err := insights.ParseAlternatives(raw)
	if err != nil {
		log.Warn("alternative teams response unreadable, serving defaults", zap.Error(err), zap.String("response", logger.TruncateForLog(raw, 300)))
		return insights.DefaultTeams()
	}
	return teams
}

func (u *Insights) ask(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	gen, err := u.generator(u.aiConfig())
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, ai.Request{System: system, Prompt: prompt, Temperature: temperature})
}

// teamOptions prices each strategy team with the seniority of its members.
func teamOptions(teams []insights.Team, roster []employee.Employee) []analytics.TeamOption {
	seniority := make(map[int64]string, len(roster))
	for _, e := range roster {
		seniority[e.ID] = e.Seniority
	}
	out := make([]analytics.TeamOption, 0, len(teams))
	for _, t := range teams {
		members := make([]analytics.CostMember, 0, len(t.Employees))
		for _, pick := range t.Employees {
			members = append(members, analytics.CostMember{EmployeeID: pick.EmployeeID, Seniority: seniority[pick.EmployeeID]})
		}
		out = append(out, analytics.TeamOption{
			Members:            members,
			EstimatedWeeks:     t.EstimatedCompletionWeeks,
			SuccessProbability: t.SuccessProbability,
		})
	}
	return out
}
