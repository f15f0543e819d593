package usecase

import (
	"context"

	"staffmatch/internal/logger"
	"staffmatch/internal/repository"

	"go.uber.org/zap"
)

// TeamNotifier announces manually saved rosters.
type TeamNotifier interface {
	TeamSaved(projectID int64, count int64)
}

type TeamUsecase interface {
	SaveTeam(ctx context.Context, projectID int64, employeeIDs []int64) (int64, error)
}

type Team struct {
	projects repository.ProjectRepository
	teams    repository.TeamRepository
	cache    ResourceCache
	events   TeamNotifier
	log      *zap.Logger
}

func NewTeamUsecase(projects repository.ProjectRepository, teams repository.TeamRepository, cache ResourceCache, events TeamNotifier, log *zap.Logger) *Team {
	return &Team{projects: projects, teams: teams, cache: cache, events: events, log: logger.OrNop(log)}
}

// SaveTeam replaces the project's roster with the given employees and clears
// their scores. The old roster is removed before ids are checked, so a request
// naming no existing employee leaves the project without a team and fails with
// ErrNoValidEmployees.
func (u *Team) SaveTeam(ctx context.Context, projectID int64, employeeIDs []int64) (int64, error) {
	ok, err := u.projects.Exists(ctx, projectID)
	if err != nil {
		return 0, internalErr("check project", err)
	}
	if !ok {
		return 0, ErrProjectNotFound
	}

	n, err := u.teams.Replace(ctx, projectID, employeeIDs)
	if err != nil {
		return 0, internalErr("replace team", err)
	}

	if u.cache != nil {
		if err := u.cache.InvalidateResources(ctx); err != nil {
			u.log.Warn("resource cache invalidation failed", zap.Int64(logger.FieldProjectID, projectID), zap.Error(err))
		}
	}
	if n == 0 {
		return 0, ErrNoValidEmployees
	}

	if u.events != nil {
		u.events.TeamSaved(projectID, n)
	}
	return n, nil
}
