package usecase

import (
	"context"
	"testing"

	"staffmatch/internal/database/dbtest"
	"staffmatch/internal/domain/analytics"
	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/infrastructure/cache"
	"staffmatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsFixture struct {
	repos
	uc               *Analytics
	billing, search  int64
	ana, budi, citra int64
}

func newAnalyticsFixture(t *testing.T) analyticsFixture {
	t.Helper()
	r := newRepos(t)
	goID := dbtest.AddSkill(t, r.db, "Go")
	reactID := dbtest.AddSkill(t, r.db, "React")

	f := analyticsFixture{repos: r}
	f.ana = dbtest.AddEmployee(t, r.db, dbtest.Employee{FullName: "Ana", Seniority: "Senior", Years: 8, Location: "Jakarta", Skills: map[int64]int{goID: 6}, Languages: []string{"English"}})
	f.budi = dbtest.AddEmployee(t, r.db, dbtest.Employee{FullName: "Budi", Seniority: "Junior", Years: 1, Location: "Bandung", Skills: map[int64]int{goID: 1, reactID: 2}, Languages: []string{"English", "Indonesian"}})
	f.citra = dbtest.AddEmployee(t, r.db, dbtest.Employee{FullName: "Citra", Seniority: "Mid", Years: 4, Skills: map[int64]int{reactID: 4}})

	var err error
	f.billing, err = r.projects.Create(context.Background(), repository.NewProject{
		Name:        "Billing",
		Description: "Payments",
		Skills:      []project.SkillRequirement{{SkillID: goID, MinExperienceYears: 3}, {SkillID: reactID, MinExperienceYears: 3}},
		Seniority:   []project.SeniorityRequirement{{Level: "Mid", Count: 1}},
	})
	require.NoError(t, err)
	f.search = dbtest.AddProject(t, r.db, "Search", "")

	dbtest.Assign(t, r.db, f.billing, f.ana, dbtest.Float(90))
	dbtest.Assign(t, r.db, f.billing, f.budi, nil)
	dbtest.Assign(t, r.db, f.search, f.budi, nil)

	f.uc = NewAnalyticsUsecase(r.projects, r.employees, r.teams, cache.Bypass(nil))
	return f
}

func TestAnalyticsSkillGapsAndChemistry(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	gaps, err := f.uc.SkillGaps(ctx, f.billing)
	require.NoError(t, err)
	assert.Empty(t, gaps.MissingSkills)
	require.Len(t, gaps.WeakSkills, 1)
	assert.Equal(t, "React", gaps.WeakSkills[0].Skill)
	assert.Equal(t, 2, gaps.WeakSkills[0].CurrentMaxExperience)
	require.Len(t, gaps.CoveredSkills, 1)
	assert.Equal(t, "Go", gaps.CoveredSkills[0].Skill)

	chem, err := f.uc.Chemistry(ctx, f.billing)
	require.NoError(t, err)
	assert.Equal(t, analytics.TeamChemistry(mustTeam(t, f, f.billing)).OverallScore, chem.OverallScore)
	assert.Positive(t, chem.OverallScore)

	_, err = f.uc.Chemistry(ctx, f.billing+100)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func mustTeam(t *testing.T, f analyticsFixture, projectID int64) []employee.Employee {
	t.Helper()
	members, err := f.teams.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	return memberEmployees(members)
}

func TestAnalyticsQualifiedExcludesTeam(t *testing.T) {
	f := newAnalyticsFixture(t)
	got, err := f.uc.Qualified(context.Background(), f.billing)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.citra, got[0].EmployeeID)
	assert.False(t, got[0].IsQualified)
	assert.True(t, got[0].SeniorityMatch)
}

func TestAnalyticsBudget(t *testing.T) {
	f := newAnalyticsFixture(t)

	budget, err := f.uc.TeamBudget(context.Background(), f.billing, 0, 0)
	require.NoError(t, err)
	want := analytics.EstimateTeamCost([]analytics.CostMember{{EmployeeID: f.ana, Seniority: "Senior"}, {EmployeeID: f.budi, Seniority: "Junior"}}, 12)
	assert.InDelta(t, want.TotalCost, budget.Cost.TotalCost, 1e-6)
	assert.Equal(t, analytics.EstimateROI(want.TotalCost, 12, 80), budget.ROI)

	adhoc := f.uc.Budget([]analytics.CostMember{{Seniority: "Lead"}}, 4, 90)
	assert.Len(t, adhoc.Cost.CostPerMember, 1)
	assert.InDelta(t, 160000.0/12/4.33*4, adhoc.Cost.TotalCost, 1e-6)
}

func TestAnalyticsResourceViews(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	conflicts, err := f.uc.ResourceConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, f.budi, conflicts[0].EmployeeID)
	assert.Equal(t, analytics.SeverityLow, conflicts[0].Severity)

	alloc, err := f.uc.ResourceAllocation(ctx)
	require.NoError(t, err)
	require.Len(t, alloc, 3)
	assert.Equal(t, 2, alloc[1].TotalProjects)
	assert.Equal(t, 100, alloc[1].Utilization)
	assert.Zero(t, alloc[2].TotalProjects)

	idle, err := f.uc.UnallocatedEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, idle, 1)
	assert.Equal(t, "Citra", idle[0].EmployeeName)
}

func TestAnalyticsGrowth(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	one, err := f.uc.Growth(ctx, f.budi)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Len(t, one[0].ProjectHistory, 2)
	assert.Equal(t, "Mid", one[0].CareerPath.NextLevel)

	none, err := f.uc.Growth(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := f.uc.Growth(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
