package analytics

import (
	"sort"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
)

const (
	pointsPerSkill     = 10
	maxExcessBonus     = 5
	pointsPerSeniority = 5
)

type SkillMatch struct {
	SkillName string `json:"skillName"`
	Required  int    `json:"required"`
	Has       int    `json:"has"`
	Match     bool   `json:"match"`
}

type SkillYears struct {
	Name            string `json:"name"`
	ExperienceYears int    `json:"experienceYears"`
}

type Qualification struct {
	EmployeeID           int64        `json:"employeeId"`
	FullName             string       `json:"fullName"`
	Role                 string       `json:"role,omitempty"`
	Seniority            string       `json:"seniority,omitempty"`
	TotalExperienceYears int          `json:"totalExperienceYears"`
	Location             string       `json:"location,omitempty"`
	Languages            []string     `json:"languages"`
	Skills               []SkillYears `json:"skills"`
	MatchScore           int          `json:"matchScore"`
	SkillMatchPercentage float64      `json:"skillMatchPercentage"`
	SkillMatches         []SkillMatch `json:"skillMatches"`
	SeniorityMatch       bool         `json:"seniorityMatch"`
	IsQualified          bool         `json:"isQualified"`
}

// Qualify scores every employee not on the project team against its
// requirements. Each required skill held with enough years earns 10 points plus
// one per extra year up to 5; holding a requested seniority earns 5. An
// employee is qualified when every required skill is met. Qualified employees
// come first, then higher scores.
func Qualify(p project.Project, onTeam []int64, employees []employee.Employee) []Qualification {
	skip := make(map[int64]struct{}, len(onTeam))
	for _, id := range onTeam {
		skip[id] = struct{}{}
	}
	wanted := make(map[string]struct{}, len(p.Seniority))
	for _, s := range p.Seniority {
		wanted[s.Level] = struct{}{}
	}

	out := make([]Qualification, 0, len(employees))
	for _, e := range employees {
		if _, ok := skip[e.ID]; ok {
			continue
		}
		out = append(out, qualify(p, wanted, e))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsQualified != out[j].IsQualified {
			return out[i].IsQualified
		}
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

func qualify(p project.Project, wanted map[string]struct{}, e employee.Employee) Qualification {
	years := make(map[int64]int, len(e.Skills))
	for _, s := range e.Skills {
		years[s.SkillID] = s.Years
	}

	q := Qualification{
		EmployeeID:           e.ID,
		FullName:             e.FullName,
		Role:                 e.Role,
		Seniority:            e.Seniority,
		TotalExperienceYears: e.TotalExperienceYears,
		Location:             e.Location,
		Languages:            append([]string{}, e.Languages...),
		Skills:               make([]SkillYears, 0, len(e.Skills)),
		SkillMatches:         make([]SkillMatch, 0, len(p.Skills)),
	}
	for _, s := range e.Skills {
		q.Skills = append(q.Skills, SkillYears{Name: s.SkillName, ExperienceYears: s.Years})
	}

	matched := 0
	for _, req := range p.Skills {
		has, ok := years[req.SkillID]
		if !ok || has < req.MinExperienceYears {
			q.SkillMatches = append(q.SkillMatches, SkillMatch{SkillName: req.SkillName, Required: req.MinExperienceYears})
			continue
		}
		matched++
		q.MatchScore += pointsPerSkill + min(has-req.MinExperienceYears, maxExcessBonus)
		q.SkillMatches = append(q.SkillMatches, SkillMatch{SkillName: req.SkillName, Required: req.MinExperienceYears, Has: has, Match: true})
	}

	if _, ok := wanted[e.Seniority]; ok && e.Seniority != "" {
		q.SeniorityMatch = true
		q.MatchScore += pointsPerSeniority
	}
	if len(p.Skills) > 0 {
		q.SkillMatchPercentage = float64(matched) / float64(len(p.Skills)) * 100
		q.IsQualified = matched == len(p.Skills)
	}
	return q
}
