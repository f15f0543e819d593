package insights

import (
	"fmt"
	"strings"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/matching"
	"staffmatch/internal/domain/skill"

	"github.com/tidwall/gjson"
)

// AlternativesSystem is sent with every alternative-teams prompt.
const AlternativesSystem = "You are an expert at building project teams. Return only valid JSON arrays, no markdown."

type Strategy string

const (
	StrategyFast        Strategy = "fast"
	StrategyBalanced    Strategy = "balanced"
	StrategyExperienced Strategy = "experienced"
)

// Strategies lists every strategy in presentation order.
var Strategies = []Strategy{StrategyFast, StrategyBalanced, StrategyExperienced}

func (s Strategy) valid() bool {
	for _, known := range Strategies {
		if s == known {
			return true
		}
	}
	return false
}

type Pick struct {
	EmployeeID   int64   `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Score        float64 `json:"score"`
	Reason       string  `json:"reason,omitempty"`
}

type Team struct {
	Strategy                 Strategy `json:"strategy"`
	StrategyName             string   `json:"strategyName"`
	Description              string   `json:"description"`
	Employees                []Pick   `json:"employees"`
	EstimatedCompletionWeeks int      `json:"estimatedCompletionWeeks"`
	SuccessProbability       float64  `json:"successProbability"`
}

// DefaultTeams is served when the model cannot be reached or understood.
func DefaultTeams() []Team {
	return []Team{
		{Strategy: StrategyFast, StrategyName: "Fast Delivery Team", Description: "Optimized for speed with agile developers", Employees: []Pick{}, EstimatedCompletionWeeks: 8, SuccessProbability: 70},
		{Strategy: StrategyBalanced, StrategyName: "Balanced Team", Description: "Mix of experience levels for optimal results", Employees: []Pick{}, EstimatedCompletionWeeks: 10, SuccessProbability: 80},
		{Strategy: StrategyExperienced, StrategyName: "Experienced Team", Description: "Senior-heavy team for high quality", Employees: []Pick{}, EstimatedCompletionWeeks: 12, SuccessProbability: 85},
	}
}

func placeholderTeam(s Strategy) Team {
	name := string(s)
	return Team{
		Strategy:                 s,
		StrategyName:             strings.ToUpper(name[:1]) + name[1:] + " Team",
		Description:              "A " + name + " team composition",
		Employees:                []Pick{},
		EstimatedCompletionWeeks: defaultWeeks,
		SuccessProbability:       defaultProbability,
	}
}

type candidateProfile struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Skills          string `json:"skills"`
	Seniority       string `json:"seniority"`
	ExperienceYears int    `json:"experienceYears"`
}

// AlternativesPrompt asks for one team per strategy drawn from roster.
func AlternativesPrompt(description string, roster []employee.Employee, catalog []skill.Skill) (string, error) {
	profiles := make([]candidateProfile, 0, len(roster))
	for _, e := range roster {
		profiles = append(profiles, candidateProfile{
			ID:              e.ID,
			Name:            e.FullName,
			Skills:          strings.Join(e.SkillNames(), ", "),
			Seniority:       seniorityOrMid(e.Seniority),
			ExperienceYears: e.TotalExperienceYears,
		})
	}
	rosterJSON, err := indentJSON(profiles)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(catalog))
	for _, s := range catalog {
		names = append(names, s.Name)
	}

	return fmt.Sprintf(`You are an expert at building project teams. For this project:

Project Description: %s

Available Employees:
%s

Available Skills: %s

Generate THREE different team compositions with different strategies:

1. "fast" strategy: Prioritize speed and agility (more junior developers, faster delivery)
2. "balanced" strategy: Mix of experience levels for optimal balance
3. "experienced" strategy: Senior-heavy team for high quality and reliability

For each strategy, return:
- strategy: "fast" | "balanced" | "experienced"
- strategyName: Human-readable name
- description: Brief explanation of why this team composition
- employees: Array of {employeeId, score (0-100), reason}
- estimatedCompletionWeeks: Rough estimate
- successProbability: 0-100

Return ONLY a JSON array with 3 objects, one for each strategy. Format:
[
  {
    "strategy": "fast",
    "strategyName": "Fast Delivery Team",
    "description": "...",
    "employees": [...],
    "estimatedCompletionWeeks": 8,
    "successProbability": 75
  },
  ...
]`, description, rosterJSON, strings.Join(names, ", ")), nil
}

func hasStrategy(obj gjson.Result) bool {
	return obj.Get("strategy").Type == gjson.String
}

// ParseAlternatives reads an alternative-teams answer. The first team per known
// strategy is kept, missing fields get defaults and absent strategies are
// appended as placeholders, so a parsed answer always holds three teams.
func ParseAlternatives(raw string) ([]Team, error) {
	items, _, err := matching.DecodeArray(raw, hasStrategy)
	if err != nil {
		return nil, err
	}

	teams := make([]Team, 0, len(Strategies))
	seen := make(map[Strategy]bool, len(Strategies))
	for _, item := range items {
		r := gjson.ParseBytes(item)
		s := Strategy(r.Get("strategy").String())
		if !r.IsObject() || !s.valid() || seen[s] {
			continue
		}
		seen[s] = true
		teams = append(teams, readTeam(s, r))
	}

	for _, s := range Strategies {
		if !seen[s] {
			teams = append(teams, placeholderTeam(s))
		}
	}
	return teams, nil
}

func readTeam(s Strategy, r gjson.Result) Team {
	t := Team{
		Strategy:                 s,
		StrategyName:             r.Get("strategyName").String(),
		Description:              r.Get("description").String(),
		Employees:                readPicks(r.Get("employees")),
		EstimatedCompletionWeeks: weeksOrDefault(r.Get("estimatedCompletionWeeks")),
		SuccessProbability:       r.Get("successProbability").Float(),
	}
	if t.StrategyName == "" {
		t.StrategyName = string(s) + " team"
	}
	if t.SuccessProbability == 0 {
		t.SuccessProbability = defaultProbability
	}
	t.SuccessProbability = clampPercent(t.SuccessProbability)
	return t
}

// readPicks keeps entries with a valid employee id, first occurrence wins.
func readPicks(v gjson.Result) []Pick {
	picks := []Pick{}
	if !v.IsArray() {
		return picks
	}
	seen := make(map[int64]bool)
	for _, item := range v.Array() {
		id, ok := matching.EmployeeID(item.Get("employeeId"))
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		p := Pick{EmployeeID: id, Reason: item.Get("reason").String()}
		if score := matching.CoerceScore(item.Get("score")); score != nil {
			p.Score = *score
		}
		picks = append(picks, p)
	}
	return picks
}

// EnrichNames fills employee names from roster, falling back to "Employee #<id>".
func EnrichNames(teams []Team, roster []employee.Employee) {
	names := make(map[int64]string, len(roster))
	for _, e := range roster {
		names[e.ID] = e.FullName
	}
	for i := range teams {
		for j := range teams[i].Employees {
			p := &teams[i].Employees[j]
			if name, ok := names[p.EmployeeID]; ok && name != "" {
				p.EmployeeName = name
				continue
			}
			p.EmployeeName = fmt.Sprintf("Employee #%d", p.EmployeeID)
		}
	}
}
