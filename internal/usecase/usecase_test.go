package usecase

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"staffmatch/internal/ai"
	"staffmatch/internal/config"
	"staffmatch/internal/database"
	"staffmatch/internal/database/dbtest"
	"staffmatch/internal/repository"
)

type triggered struct {
	projectID   int64
	description string
}

type recordingMatcher struct {
	mu    sync.Mutex
	calls []triggered
}

func (m *recordingMatcher) Trigger(projectID int64, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, triggered{projectID, description})
}

type countingCache struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCache) InvalidateResources(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return nil
}

type savedEvent struct {
	projectID int64
	count     int64
}

type recordingNotifier struct {
	events []savedEvent
}

func (n *recordingNotifier) TeamSaved(projectID, count int64) {
	n.events = append(n.events, savedEvent{projectID, count})
}

type scriptedGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []ai.Request
}

// Generate answers by system prompt so one generator can serve every insight.
func (g *scriptedGenerator) Generate(_ context.Context, req ai.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.responses[req.System], nil
}

type repos struct {
	db        database.DB
	projects  *repository.SQLProjectRepository
	employees *repository.SQLEmployeeRepository
	skills    *repository.SQLSkillRepository
	teams     *repository.SQLTeamRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db := dbtest.New(t)
	return repos{
		db:        db,
		projects:  repository.NewSQLProjectRepository(db),
		employees: repository.NewSQLEmployeeRepository(db),
		skills:    repository.NewSQLSkillRepository(db),
		teams:     repository.NewSQLTeamRepository(db),
	}
}

func staticGenerator(g ai.Generator) func(config.AIConfig) (ai.Generator, error) {
	return func(config.AIConfig) (ai.Generator, error) { return g, nil }
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
