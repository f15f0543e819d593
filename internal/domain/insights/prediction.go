// Package insights builds the model prompts behind project insights and reads
// their answers back into defaults-filled results.
package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/matching"
	"staffmatch/internal/domain/project"

	"github.com/tidwall/gjson"
)

// PredictionSystem is sent with every prediction prompt.
const PredictionSystem = "You are a project management expert. Return only valid JSON, no markdown."

const (
	defaultProbability = 70.0
	defaultWeeks       = 12
	maxListItems       = 5
)

type Prediction struct {
	SuccessProbability       float64  `json:"successProbability"`
	EstimatedCompletionWeeks int      `json:"estimatedCompletionWeeks"`
	RiskFactors              []string `json:"riskFactors"`
	Strengths                []string `json:"strengths"`
	Recommendations          []string `json:"recommendations"`
}

// DefaultPrediction is served when the model cannot be reached or understood.
func DefaultPrediction() Prediction {
	return Prediction{
		SuccessProbability:       defaultProbability,
		EstimatedCompletionWeeks: defaultWeeks,
		RiskFactors:              []string{"Unable to analyze - AI service unavailable"},
		Strengths:                []string{"Team composition available"},
		Recommendations:          []string{"Review team composition manually"},
	}
}

type memberSummary struct {
	Name            string  `json:"name"`
	Skills          string  `json:"skills"`
	Seniority       string  `json:"seniority"`
	ExperienceYears int     `json:"experienceYears"`
	MatchScore      float64 `json:"matchScore"`
}

// PredictionPrompt asks for a success prediction of the team on the project.
func PredictionPrompt(p project.Project, team []project.Member) (string, error) {
	summary := make([]memberSummary, 0, len(team))
	for _, m := range team {
		s := memberSummary{
			Name:            m.Employee.FullName,
			Skills:          strings.Join(m.Employee.SkillNames(), ", "),
			Seniority:       seniorityOrMid(m.Employee.Seniority),
			ExperienceYears: m.Employee.TotalExperienceYears,
		}
		if s.Name == "" {
			s.Name = "Unknown"
		}
		if m.Score != nil {
			s.MatchScore = *m.Score
		}
		summary = append(summary, s)
	}
	teamJSON, err := indentJSON(summary)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze this project and team composition:

Project: %s
Required Skills: %s
Required Seniority: %s

Current Team:
%s

Provide a project success prediction with:
- successProbability: 0-100 (how likely to succeed)
- estimatedCompletionWeeks: rough estimate
- riskFactors: array of potential risks (max 5)
- strengths: array of team strengths (max 5)
- recommendations: array of actionable recommendations (max 5)

Return ONLY valid JSON:
{
  "successProbability": 85,
  "estimatedCompletionWeeks": 10,
  "riskFactors": [...],
  "strengths": [...],
  "recommendations": [...]
}`, p.Description, strings.Join(p.SkillNames(), ", "), strings.Join(p.Categories(), ", "), teamJSON), nil
}

// ParsePrediction reads a prediction answer. A missing or zero probability
// becomes 70 and is then clamped to 0..100; missing weeks become 12; every
// list keeps at most five strings.
func ParsePrediction(raw string) (Prediction, error) {
	obj, _, err := matching.DecodeObject(raw, nil)
	if err != nil {
		return Prediction{}, err
	}
	r := gjson.ParseBytes(obj)

	prob := r.Get("successProbability").Float()
	if prob == 0 || math.IsNaN(prob) {
		prob = defaultProbability
	}

	return Prediction{
		SuccessProbability:       clampPercent(prob),
		EstimatedCompletionWeeks: weeksOrDefault(r.Get("estimatedCompletionWeeks")),
		RiskFactors:              stringList(r.Get("riskFactors")),
		Strengths:                stringList(r.Get("strengths")),
		Recommendations:          stringList(r.Get("recommendations")),
	}, nil
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func weeksOrDefault(v gjson.Result) int {
	w := int(math.Round(v.Float()))
	if w <= 0 {
		return defaultWeeks
	}
	return w
}

func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if len(out) == maxListItems {
			break
		}
		out = append(out, item.String())
	}
	return out
}

func seniorityOrMid(s string) string {
	if s == "" {
		return employee.Mid
	}
	return s
}

func indentJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
