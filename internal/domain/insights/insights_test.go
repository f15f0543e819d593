package insights

import (
	"testing"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrediction(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Prediction
	}{
		{
			name: "fenced and complete",
			raw: "```json\n" + `{"successProbability": 85, "estimatedCompletionWeeks": 10,
				"riskFactors": ["a","b","c","d","e","f"], "strengths": ["s"], "recommendations": []}` + "\n```",
			want: Prediction{
				SuccessProbability:       85,
				EstimatedCompletionWeeks: 10,
				RiskFactors:              []string{"a", "b", "c", "d", "e"},
				Strengths:                []string{"s"},
				Recommendations:          []string{},
			},
		},
		{
			name: "defaults and clamping",
			raw:  `Here you go: {"successProbability": 140, "riskFactors": "none"} thanks`,
			want: Prediction{
				SuccessProbability:       100,
				EstimatedCompletionWeeks: 12,
				RiskFactors:              []string{},
				Strengths:                []string{},
				Recommendations:          []string{},
			},
		},
		{
			name: "zero probability falls back",
			raw:  `{"successProbability": 0, "estimatedCompletionWeeks": -3}`,
			want: Prediction{
				SuccessProbability:       70,
				EstimatedCompletionWeeks: 12,
				RiskFactors:              []string{},
				Strengths:                []string{},
				Recommendations:          []string{},
			},
		},
		{
			name: "negative probability clamps to zero",
			raw:  `{"successProbability": -5}`,
			want: Prediction{
				SuccessProbability:       0,
				EstimatedCompletionWeeks: 12,
				RiskFactors:              []string{},
				Strengths:                []string{},
				Recommendations:          []string{},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePrediction(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParsePrediction("I cannot help with that")
	require.Error(t, err)
}

func TestPredictionPrompt(t *testing.T) {
	score := 88.0
	p := project.Project{
		Description: "Payments API",
		Skills:      []project.SkillRequirement{{SkillName: "Go"}, {SkillName: "Kafka"}},
		Seniority:   []project.SeniorityRequirement{{Level: "Senior", Count: 1}},
	}
	team := []project.Member{
		{Employee: employee.Employee{FullName: "Ana", Skills: []employee.SkillExperience{{SkillName: "Go"}}}, Score: &score},
		{Employee: employee.Employee{Seniority: "Lead"}},
	}

	prompt, err := PredictionPrompt(p, team)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Project: Payments API")
	assert.Contains(t, prompt, "Required Skills: Go, Kafka")
	assert.Contains(t, prompt, "Required Seniority: Senior")
	assert.Contains(t, prompt, `"seniority": "Mid"`)
	assert.Contains(t, prompt, `"matchScore": 88`)
	assert.Contains(t, prompt, `"name": "Unknown"`)
}

func TestParseAlternatives(t *testing.T) {
	raw := `[
		{"strategy": "balanced", "strategyName": "Steady", "description": "mix",
		 "employees": [{"employeeId": 2, "score": "90%", "reason": "go"}, {"employeeId": 2, "score": 10}, {"employeeId": "x"}],
		 "estimatedCompletionWeeks": 9, "successProbability": 82},
		{"strategy": "balanced", "strategyName": "Duplicate"},
		{"strategy": "turbo"},
		{"strategy": "fast"}
	]`

	teams, err := ParseAlternatives(raw)
	require.NoError(t, err)
	require.Len(t, teams, 3)

	assert.Equal(t, Team{
		Strategy:                 StrategyBalanced,
		StrategyName:             "Steady",
		Description:              "mix",
		Employees:                []Pick{{EmployeeID: 2, Score: 90, Reason: "go"}},
		EstimatedCompletionWeeks: 9,
		SuccessProbability:       82,
	}, teams[0])

	assert.Equal(t, StrategyFast, teams[1].Strategy)
	assert.Equal(t, "fast team", teams[1].StrategyName)
	assert.Equal(t, 12, teams[1].EstimatedCompletionWeeks)
	assert.EqualValues(t, 70, teams[1].SuccessProbability)
	assert.Empty(t, teams[1].Employees)

	assert.Equal(t, placeholderTeam(StrategyExperienced), teams[2])
	assert.Equal(t, "Experienced Team", teams[2].StrategyName)
	assert.Equal(t, "A experienced team composition", teams[2].Description)
}

func TestParseAlternativesRecoversTruncatedArray(t *testing.T) {
	raw := `[{"strategy": "experienced", "employees": [{"employeeId": 7, "score": 95}]}, {"strategy": "fast", "employees": [{"empl`
	teams, err := ParseAlternatives(raw)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, StrategyExperienced, teams[0].Strategy)
	assert.Equal(t, []Pick{{EmployeeID: 7, Score: 95}}, teams[0].Employees)
	assert.Equal(t, StrategyFast, teams[1].Strategy)
	assert.Equal(t, StrategyBalanced, teams[2].Strategy)

	_, err = ParseAlternatives("no json at all")
	require.Error(t, err)
}

func TestAlternativesPrompt(t *testing.T) {
	roster := []employee.Employee{{ID: 3, FullName: "Budi", TotalExperienceYears: 4, Skills: []employee.SkillExperience{{SkillName: "React"}, {SkillName: "Go"}}}}
	prompt, err := AlternativesPrompt("Checkout revamp", roster, []skill.Skill{{Name: "React"}, {Name: "Go"}})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Project Description: Checkout revamp")
	assert.Contains(t, prompt, `"skills": "React, Go"`)
	assert.Contains(t, prompt, `"seniority": "Mid"`)
	assert.Contains(t, prompt, "Available Skills: React, Go")
}

func TestEnrichNames(t *testing.T) {
	teams := []Team{{Employees: []Pick{{EmployeeID: 1}, {EmployeeID: 9}}}}
	EnrichNames(teams, []employee.Employee{{ID: 1, FullName: "Ana"}})
	assert.Equal(t, "Ana", teams[0].Employees[0].EmployeeName)
	assert.Equal(t, "Employee #9", teams[0].Employees[1].EmployeeName)
}

func TestSuggest(t *testing.T) {
	available := []employee.Employee{
		{ID: 1, FullName: "Ana"}, {ID: 2, FullName: "Budi"}, {ID: 3, FullName: "Citra"},
		{ID: 4, FullName: "Dewi"}, {ID: 5, FullName: "Eko"}, {ID: 6, FullName: "Fajar"},
	}

	t.Run("balanced team restricted to available", func(t *testing.T) {
		teams := []Team{
			{Strategy: StrategyFast, Employees: []Pick{{EmployeeID: 1, Score: 50}}},
			{Strategy: StrategyBalanced, Employees: []Pick{{EmployeeID: 3, Score: 80}, {EmployeeID: 2, Reason: "frontend"}, {EmployeeID: 42, Score: 99}}},
		}
		got := Suggest(teams, available)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].EmployeeID)
		assert.Equal(t, "frontend", got[0].Reason)
		require.NotNil(t, got[0].Score)
		assert.Zero(t, *got[0].Score)
		assert.Equal(t, int64(3), got[1].EmployeeID)
		assert.Equal(t, defaultReason, got[1].Reason)
		assert.EqualValues(t, 80, *got[1].Score)
	})

	t.Run("first team when no balanced one", func(t *testing.T) {
		got := Suggest([]Team{{Strategy: StrategyFast, Employees: []Pick{{EmployeeID: 6, Score: 60}}}}, available)
		require.Len(t, got, 1)
		assert.Equal(t, "Fajar", got[0].FullName)
	})

	t.Run("fallback to first five", func(t *testing.T) {
		got := Suggest(DefaultTeams(), available)
		require.Len(t, got, 5)
		for _, s := range got {
			assert.Equal(t, fallbackReason, s.Reason)
			assert.Nil(t, s.Score)
		}
		assert.Equal(t, int64(5), got[4].EmployeeID)
	})

	t.Run("nobody available", func(t *testing.T) {
		assert.Empty(t, Suggest(DefaultTeams(), nil))
	})
}
