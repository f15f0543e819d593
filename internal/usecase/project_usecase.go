package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/logger"
	"staffmatch/internal/repository"

	"go.uber.org/zap"
)

const maxProjectNameLen = 100

// Matcher starts team matching for a project without waiting for it.
type Matcher interface {
	Trigger(projectID int64, description string)
}

// ResourceCache drops cached views derived from team assignments.
type ResourceCache interface {
	InvalidateResources(ctx context.Context) error
}

type CreateProjectInput struct {
	Name        string
	Description string
	CreatedBy   string
	Skills      []project.SkillRequirement
	Seniority   []project.SeniorityRequirement
}

// ProjectDetail is a project with its current team.
type ProjectDetail struct {
	Project project.Project
	Team    []project.Member
}

type ProjectUsecase interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (int64, error)
	GetProject(ctx context.Context, id int64) (ProjectDetail, error)
	ListProjects(ctx context.Context) ([]project.Summary, error)
	DeleteProject(ctx context.Context, id int64) error
	Rematch(ctx context.Context, id int64) error
}

type Project struct {
	projects repository.ProjectRepository
	skills   repository.SkillRepository
	teams    repository.TeamRepository
	matcher  Matcher
	cache    ResourceCache
	log      *zap.Logger
}

func NewProjectUsecase(
	projects repository.ProjectRepository,
	skills repository.SkillRepository,
	teams repository.TeamRepository,
	matcher Matcher,
	cache ResourceCache,
	log *zap.Logger,
) *Project {
	return &Project{
		projects: projects,
		skills:   skills,
		teams:    teams,
		matcher:  matcher,
		cache:    cache,
		log:      logger.OrNop(log),
	}
}

// CreateProject stores the project and hands it to the matcher. It returns as
// soon as the project row exists; matching runs detached.
func (u *Project) CreateProject(ctx context.Context, in CreateProjectInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := u.validate(ctx, in); err != nil {
		return 0, err
	}

	id, err := u.projects.Create(ctx, repository.NewProject{
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   in.CreatedBy,
		Skills:      in.Skills,
		Seniority:   in.Seniority,
	})
	if err != nil {
		return 0, internalErr("create project", err)
	}

	if u.matcher != nil {
		u.matcher.Trigger(id, in.Description)
	}
	return id, nil
}

func (u *Project) validate(ctx context.Context, in CreateProjectInput) error {
	if in.Name == "" {
		return invalid("project_name", "is required")
	}
	if len(in.Name) > maxProjectNameLen {
		return invalid("project_name", "is too long")
	}

	ids := make([]int64, 0, len(in.Skills))
	for _, s := range in.Skills {
		if s.SkillID <= 0 {
			return invalid("skills", "skill_id must be positive")
		}
		if s.MinExperienceYears < 0 {
			return invalid("skills", "min_experience_years must not be negative")
		}
		if slices.Contains(ids, s.SkillID) {
			return invalid("skills", fmt.Sprintf("skill %d is listed twice", s.SkillID))
		}
		ids = append(ids, s.SkillID)
	}
	if len(ids) > 0 {
		found, err := u.skills.FindExistingIDs(ctx, ids)
		if err != nil {
			return internalErr("check skills", err)
		}
		for _, id := range ids {
			if !slices.Contains(found, id) {
				return invalid("skills", fmt.Sprintf("skill %d does not exist", id))
			}
		}
	}

	levels := make([]string, 0, len(in.Seniority))
	for _, s := range in.Seniority {
		if !slices.Contains(employee.Levels, s.Level) {
			return invalid("seniority", fmt.Sprintf("unknown level %q", s.Level))
		}
		if s.Count < 1 {
			return invalid("seniority", "required_count must be at least 1")
		}
		if slices.Contains(levels, s.Level) {
			return invalid("seniority", fmt.Sprintf("level %q is listed twice", s.Level))
		}
		levels = append(levels, s.Level)
	}
	return nil
}

func (u *Project) GetProject(ctx context.Context, id int64) (ProjectDetail, error) {
	p, err := u.projects.Get(ctx, id)
	if err != nil {
		return ProjectDetail{}, projectErr("get project", err)
	}
	members, err := u.teams.ListByProject(ctx, id)
	if err != nil {
		return ProjectDetail{}, internalErr("list team", err)
	}
	return ProjectDetail{Project: p, Team: members}, nil
}

func (u *Project) ListProjects(ctx context.Context) ([]project.Summary, error) {
	items, err := u.projects.List(ctx)
	if err != nil {
		return nil, internalErr("list projects", err)
	}
	return items, nil
}

func (u *Project) DeleteProject(ctx context.Context, id int64) error {
	if err := u.projects.Delete(ctx, id); err != nil {
		return projectErr("delete project", err)
	}
	u.invalidate(ctx, id)
	return nil
}

// Rematch runs team matching again for an existing project.
func (u *Project) Rematch(ctx context.Context, id int64) error {
	p, err := u.projects.Get(ctx, id)
	if err != nil {
		return projectErr("get project", err)
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrMissingDescription
	}
	if u.matcher != nil {
		u.matcher.Trigger(p.ID, p.Description)
	}
	return nil
}

func (u *Project) invalidate(ctx context.Context, projectID int64) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateResources(ctx); err != nil {
		u.log.Warn("resource cache invalidation failed", zap.Int64(logger.FieldProjectID, projectID), zap.Error(err))
	}
}

func projectErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrProjectNotFound) {
		return ErrProjectNotFound
	}
	return internalErr(op, err)
}
