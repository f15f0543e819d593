package usecase

import (
	"context"
	"errors"

	"staffmatch/internal/domain/analytics"
	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/domain/team"
	"staffmatch/internal/infrastructure/cache"
	"staffmatch/internal/repository"

	"golang.org/x/sync/errgroup"
)

type TeamBudget struct {
	Cost analytics.TeamCost `json:"cost"`
	ROI  analytics.ROI      `json:"roi"`
}

type AnalyticsUsecase interface {
	Qualified(ctx context.Context, projectID int64) ([]analytics.Qualification, error)
	SkillGaps(ctx context.Context, projectID int64) (analytics.SkillGapReport, error)
	Chemistry(ctx context.Context, projectID int64) (analytics.Chemistry, error)
	TeamBudget(ctx context.Context, projectID int64, weeks int, successProbability float64) (TeamBudget, error)
	Budget(members []analytics.CostMember, weeks int, successProbability float64) TeamBudget
	ResourceConflicts(ctx context.Context) ([]analytics.Conflict, error)
	ResourceAllocation(ctx context.Context) ([]analytics.Allocation, error)
	UnallocatedEmployees(ctx context.Context) ([]analytics.Unallocated, error)
	Growth(ctx context.Context, employeeID int64) ([]analytics.Growth, error)
}

type Analytics struct {
	projects  repository.ProjectRepository
	employees repository.EmployeeRepository
	teams     repository.TeamRepository
	cache     *cache.Redis
}

// NewAnalyticsUsecase wires the read-only analytics. A nil cache computes every
// resource view on demand.
func NewAnalyticsUsecase(projects repository.ProjectRepository, employees repository.EmployeeRepository, teams repository.TeamRepository, c *cache.Redis) *Analytics {
	return &Analytics{projects: projects, employees: employees, teams: teams, cache: c}
}

func (u *Analytics) Qualified(ctx context.Context, projectID int64) ([]analytics.Qualification, error) {
	var (
		p       project.Project
		members []project.Member
		roster  []employee.Employee
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
	g.Go(func() (err error) {
		roster, err = u.employees.List(gctx)
		return wrapInternal("list employees", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	onTeam := make([]int64, 0, len(members))
	for _, m := range members {
		onTeam = append(onTeam, m.Employee.ID)
	}
	return analytics.Qualify(p, onTeam, roster), nil
}

func (u *Analytics) SkillGaps(ctx context.Context, projectID int64) (analytics.SkillGapReport, error) {
	p, team, err := u.projectWithTeam(ctx, projectID)
	if err != nil {
		return analytics.SkillGapReport{}, err
	}
	return analytics.SkillGaps(p.Skills, team), nil
}

func (u *Analytics) Chemistry(ctx context.Context, projectID int64) (analytics.Chemistry, error) {
	_, team, err := u.projectWithTeam(ctx, projectID)
	if err != nil {
		return analytics.Chemistry{}, err
	}
	return analytics.TeamChemistry(team), nil
}

// TeamBudget prices the project's current team. A non-positive success
// probability falls back to analytics.DefaultSuccessPercent.
func (u *Analytics) TeamBudget(ctx context.Context, projectID int64, weeks int, successProbability float64) (TeamBudget, error) {
	_, team, err := u.projectWithTeam(ctx, projectID)
	if err != nil {
		return TeamBudget{}, err
	}
	return u.Budget(analytics.CostMembers(team), weeks, successProbability), nil
}

func (u *Analytics) Budget(members []analytics.CostMember, weeks int, successProbability float64) TeamBudget {
	if weeks <= 0 {
		weeks = analytics.DefaultDurationWeeks
	}
	if successProbability <= 0 {
		successProbability = analytics.DefaultSuccessPercent
	}
	cost := analytics.EstimateTeamCost(members, weeks)
	return TeamBudget{Cost: cost, ROI: analytics.EstimateROI(cost.TotalCost, weeks, successProbability)}
}

func (u *Analytics) ResourceConflicts(ctx context.Context) ([]analytics.Conflict, error) {
	return cache.Remember(ctx, u.cache, cache.KeyConflicts, func(ctx context.Context) ([]analytics.Conflict, error) {
		allocs, err := u.teams.ListAllAssignments(ctx)
		if err != nil {
			return nil, internalErr("list assignments", err)
		}
		return analytics.ResourceConflicts(allocs), nil
	})
}

func (u *Analytics) ResourceAllocation(ctx context.Context) ([]analytics.Allocation, error) {
	return cache.Remember(ctx, u.cache, cache.KeyAllocation, func(ctx context.Context) ([]analytics.Allocation, error) {
		roster, allocs, err := u.rosterWithAssignments(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.ResourceAllocation(roster, allocs), nil
	})
}

func (u *Analytics) UnallocatedEmployees(ctx context.Context) ([]analytics.Unallocated, error) {
	return cache.Remember(ctx, u.cache, cache.KeyUnallocated, func(ctx context.Context) ([]analytics.Unallocated, error) {
		roster, allocs, err := u.rosterWithAssignments(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.UnallocatedEmployees(roster, allocs), nil
	})
}

// Growth reports growth for one employee, or for everyone when employeeID is
// zero. An unknown employee yields an empty list.
func (u *Analytics) Growth(ctx context.Context, employeeID int64) ([]analytics.Growth, error) {
	if employeeID == 0 {
		roster, allocs, err := u.rosterWithAssignments(ctx)
		if err != nil {
			return nil, err
		}
		byEmployee := projectsByEmployee(allocs)
		out := make([]analytics.Growth, 0, len(roster))
		for _, e := range roster {
			out = append(out, analytics.EmployeeGrowth(e, byEmployee[e.ID]))
		}
		return out, nil
	}

	var (
		e      employee.Employee
		allocs []team.Allocation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		e, err = u.employees.Get(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		allocs, err = u.teams.ListAllAssignments(gctx)
		return wrapInternal("list assignments", err)
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return []analytics.Growth{}, nil
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, internalErr("get employee", err)
	}
	return []analytics.Growth{analytics.EmployeeGrowth(e, projectsByEmployee(allocs)[e.ID])}, nil
}

func (u *Analytics) projectWithTeam(ctx context.Context, projectID int64) (project.Project, []employee.Employee, error) {
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
		return project.Project{}, nil, err
	}
	return p, memberEmployees(members), nil
}

func (u *Analytics) rosterWithAssignments(ctx context.Context) ([]employee.Employee, []team.Allocation, error) {
	var (
		roster []employee.Employee
		allocs []team.Allocation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roster, err = u.employees.List(gctx)
		return wrapInternal("list employees", err)
	})
	g.Go(func() (err error) {
		allocs, err = u.teams.ListAllAssignments(gctx)
		return wrapInternal("list assignments", err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return roster, allocs, nil
}

func memberEmployees(members []project.Member) []employee.Employee {
	out := make([]employee.Employee, 0, len(members))
	for _, m := range members {
		out = append(out, m.Employee)
	}
	return out
}

func projectsByEmployee(allocs []team.Allocation) map[int64][]analytics.ProjectRef {
	out := make(map[int64][]analytics.ProjectRef)
	for _, a := range allocs {
		out[a.EmployeeID] = append(out[a.EmployeeID], analytics.ProjectRef{ProjectID: a.ProjectID, ProjectName: a.ProjectName})
	}
	return out
}

func wrapInternal(op string, err error) error {
	if err == nil {
		return nil
	}
	return internalErr(op, err)
}
