package analytics

import (
	"fmt"
	"math"
	"strings"

	"staffmatch/internal/domain/employee"
)

type Factor struct {
	Score float64 `json:"score"`
	Note  string  `json:"note"`
}

type ChemistryFactors struct {
	SeniorityBalance      Factor `json:"seniorityBalance"`
	SkillDiversity        Factor `json:"skillDiversity"`
	LocationCompatibility Factor `json:"locationCompatibility"`
	LanguageOverlap       Factor `json:"languageOverlap"`
}

type Chemistry struct {
	OverallScore    int              `json:"overallScore"`
	Factors         ChemistryFactors `json:"factors"`
	Recommendations []string         `json:"recommendations"`
}

const (
	weightSeniority = 0.3
	weightSkills    = 0.3
	weightLocation  = 0.2
	weightLanguage  = 0.2
)

// TeamChemistry scores how well a team fits together on a 0-100 scale.
func TeamChemistry(team []employee.Employee) Chemistry {
	if len(team) == 0 {
		none := Factor{Score: 0, Note: "No team members"}
		return Chemistry{
			Factors:         ChemistryFactors{none, none, none, none},
			Recommendations: []string{},
		}
	}

	levels := make(map[string]struct{})
	skills := make(map[string]struct{})
	locations := make(map[string]struct{})
	for _, m := range team {
		level := m.Seniority
		if level == "" {
			level = "Unknown"
		}
		levels[level] = struct{}{}
		for _, s := range m.Skills {
			skills[s.SkillName] = struct{}{}
		}
		if m.Location != "" {
			locations[m.Location] = struct{}{}
		}
	}

	seniority := Factor{Score: math.Min(100, float64(len(levels))*25)}
	if len(levels) >= 2 {
		seniority.Note = "Good mix of experience levels"
	} else {
		seniority.Note = "Consider adding more diverse seniority levels"
	}

	diversity := Factor{Score: math.Min(100, float64(len(skills))/float64(len(team))*30)}
	if len(skills) > len(team) {
		diversity.Note = "Good skill diversity"
	} else {
		diversity.Note = "Some team members may have overlapping skills"
	}

	location := locationFactor(len(locations))

	common := commonLanguages(team)
	language := Factor{Score: 70, Note: "No common language - may need translation support"}
	if len(common) > 0 {
		language = Factor{Score: 100, Note: "Common language: " + strings.Join(common, ", ")}
	}

	overall := seniority.Score*weightSeniority +
		diversity.Score*weightSkills +
		location.Score*weightLocation +
		language.Score*weightLanguage

	recs := make([]string, 0, 4)
	if len(levels) < 2 {
		recs = append(recs, "Add team members with different seniority levels for better balance")
	}
	if len(skills) <= len(team) {
		recs = append(recs, "Consider adding team members with complementary skills")
	}
	if len(locations) > 1 {
		recs = append(recs, "Ensure timezone coordination for distributed team")
	}
	if len(common) == 0 {
		recs = append(recs, "Establish a common communication language for the team")
	}

	return Chemistry{
		OverallScore: int(math.Round(overall)),
		Factors: ChemistryFactors{
			SeniorityBalance:      seniority,
			SkillDiversity:        diversity,
			LocationCompatibility: location,
			LanguageOverlap:       language,
		},
		Recommendations: recs,
	}
}

func locationFactor(n int) Factor {
	switch n {
	case 0:
		return Factor{Score: 100, Note: "No location data"}
	case 1:
		return Factor{Score: 100, Note: "All team members in same location"}
	}
	return Factor{
		Score: math.Max(50, 100-float64(n-1)*20),
		Note:  fmt.Sprintf("%d different locations - may need coordination", n),
	}
}

// commonLanguages returns the languages every member speaks, in first-seen order.
func commonLanguages(team []employee.Employee) []string {
	counts := make(map[string]int)
	var order []string
	for _, m := range team {
		seen := make(map[string]struct{}, len(m.Languages))
		for _, l := range m.Languages {
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			if counts[l] == 0 {
				order = append(order, l)
			}
			counts[l]++
		}
	}
	out := make([]string, 0, len(order))
	for _, l := range order {
		if counts[l] == len(team) {
			out = append(out, l)
		}
	}
	return out
}
