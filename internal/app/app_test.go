package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffmatch/internal/ai"
	"staffmatch/internal/config"
	"staffmatch/internal/database/dbtest"
	"staffmatch/internal/domain/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type matchGenerator struct {
	employeeID int64
}

func (g *matchGenerator) Generate(_ context.Context, req ai.Request) (string, error) {
	if req.System != matching.SystemInstruction {
		return "", fmt.Errorf("unexpected prompt")
	}
	return fmt.Sprintf("```json\n[{\"employeeId\": %d, \"score\": 88}]\n```", g.employeeID), nil
}

type testApp struct {
	*App
	gen *matchGenerator
}

func newTestApp(t *testing.T, cfg config.Config) testApp {
	t.Helper()
	db := dbtest.New(t)
	gen := &matchGenerator{}
	c := Assemble(cfg, Deps{
		DB:        db,
		Generator: func(config.AIConfig) (ai.Generator, error) { return gen, nil },
	})
	a := New(c)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Shutdown(ctx)
	})
	return testApp{App: a, gen: gen}
}

func testConfig() config.Config {
	return config.Config{App: config.AppConfig{AppName: "staffmatch", HTTPPort: "8080"}}
}

func (a testApp) do(t *testing.T, method, path string, body any, headers ...string) (int, semanticResponse) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, testConfig())
	status, body := a.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body.Data))
}

func TestProjectLifecycle(t *testing.T) {
	a := newTestApp(t, testConfig())
	db := a.Container.DB

	status, body := a.do(t, http.MethodPost, "/api/v1/skills", map[string]any{"name": "Go", "category": "Backend"})
	require.Equal(t, http.StatusCreated, status)
	goID := decode[struct {
		ID int64 `json:"id"`
	}](t, body.Data).ID

	ana := dbtest.AddEmployee(t, db, dbtest.Employee{FullName: "Ana", Seniority: "Senior", Years: 7, Skills: map[int64]int{goID: 5}})
	budi := dbtest.AddEmployee(t, db, dbtest.Employee{FullName: "Budi", Seniority: "Junior", Years: 1})
	a.gen.employeeID = ana

	status, body = a.do(t, http.MethodPost, "/api/v1/projects", map[string]any{
		"project_name": "Billing",
		"description":  "Payments backend in Go",
		"skills":       []map[string]any{{"skill_id": goID, "min_experience_years": 3}},
		"seniority":    []map[string]any{{"seniority_level": "Senior", "required_count": 2}},
	})
	require.Equal(t, http.StatusCreated, status, body.Message)
	projectID := decode[struct {
		ID int64 `json:"id"`
	}](t, body.Data).ID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Container.Matcher.Wait(ctx))

	type member struct {
		EmployeeID int64    `json:"employee_id"`
		FullName   string   `json:"full_name"`
		Score      *float64 `json:"score"`
	}
	type detail struct {
		ProjectName string   `json:"project_name"`
		Team        []member `json:"team"`
	}

	path := fmt.Sprintf("/api/v1/projects/%d", projectID)
	status, body = a.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[detail](t, body.Data)
	assert.Equal(t, "Billing", got.ProjectName)
	require.Len(t, got.Team, 1)
	assert.Equal(t, "Ana", got.Team[0].FullName)
	require.NotNil(t, got.Team[0].Score)
	assert.InDelta(t, 88, *got.Team[0].Score, 1e-9)

	status, body = a.do(t, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]struct {
		DevelopersNeeded int      `json:"developersNeeded"`
		ExperienceYears  int      `json:"experienceYears"`
		Skills           []string `json:"skills"`
		TeamEmployeeIDs  []int64  `json:"team_employee_ids"`
	}](t, body.Data)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].DevelopersNeeded)
	assert.Equal(t, 3, list[0].ExperienceYears)
	assert.Equal(t, []string{"Go"}, list[0].Skills)
	assert.Equal(t, []int64{ana}, list[0].TeamEmployeeIDs)

	status, body = a.do(t, http.MethodPut, path+"/team", map[string]any{"employee_ids": []int64{ana, budi}})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"count":2}`, string(body.Data))

	_, body = a.do(t, http.MethodGet, path, nil)
	got = decode[detail](t, body.Data)
	require.Len(t, got.Team, 2)
	for _, m := range got.Team {
		assert.Nil(t, m.Score)
	}

	status, _ = a.do(t, http.MethodGet, path+"/skill-gaps", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = a.do(t, http.MethodGet, path+"/budget?weeks=4&success=90", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = a.do(t, http.MethodGet, path+"/budget?weeks=soon", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)
	status, body = a.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Project not found", body.Message)
}

func TestCreateProjectValidation(t *testing.T) {
	a := newTestApp(t, testConfig())

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing name", map[string]any{"description": "x"}, "project_name"},
		{"unknown level", map[string]any{
			"project_name": "p",
			"seniority":    []map[string]any{{"seniority_level": "Wizard", "required_count": 1}},
		}, "seniority[0].seniority_level"},
		{"unknown skill", map[string]any{
			"project_name": "p",
			"skills":       []map[string]any{{"skill_id": 42}},
		}, "skills"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := a.do(t, http.MethodPost, "/api/v1/projects", tc.body)
			require.Equal(t, http.StatusBadRequest, status)
			fields := decode[[]struct {
				Field string `json:"field"`
			}](t, body.Data)
			require.NotEmpty(t, fields)
			assert.Equal(t, tc.field, fields[0].Field)
		})
	}
}

func TestSaveTeamWithoutValidEmployees(t *testing.T) {
	a := newTestApp(t, testConfig())
	pid := dbtest.AddProject(t, a.Container.DB, "Billing", "")

	status, body := a.do(t, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d/team", pid), map[string]any{"employee_ids": []int64{999}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No valid employees found", body.Message)
}

func TestAuthGuardsAPI(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	a := newTestApp(t, cfg)

	status, _ := a.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := a.do(t, http.MethodGet, "/api/v1/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body.Message)

	token, err := a.Container.JWT.GenerateAccessToken("ops")
	require.NoError(t, err)
	auth := []string{"Authorization", "Bearer " + token}

	status, body = a.do(t, http.MethodPost, "/api/v1/projects", map[string]any{"project_name": "Internal"}, auth...)
	require.Equal(t, http.StatusCreated, status)
	id := decode[struct {
		ID int64 `json:"id"`
	}](t, body.Data).ID

	_, body = a.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), nil, auth...)
	assert.Equal(t, "ops", decode[struct {
		CreatedBy string `json:"created_by"`
	}](t, body.Data).CreatedBy)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("  ")
	require.Error(t, err)
}
