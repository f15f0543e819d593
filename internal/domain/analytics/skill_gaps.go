// Package analytics holds pure heuristics over loaded project and team data.
// Nothing here performs I/O.
package analytics

import (
	"fmt"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
)

type MissingSkill struct {
	Skill          string `json:"skill"`
	MinExperience  int    `json:"minExperience"`
	Recommendation string `json:"recommendation"`
}

type WeakSkill struct {
	Skill                string `json:"skill"`
	CurrentMaxExperience int    `json:"currentMaxExperience"`
	Required             int    `json:"required"`
	Recommendation       string `json:"recommendation"`
}

type CoveredSkill struct {
	Skill         string `json:"skill"`
	MaxExperience int    `json:"maxExperience"`
}

type SkillGapReport struct {
	MissingSkills []MissingSkill `json:"missingSkills"`
	WeakSkills    []WeakSkill    `json:"weakSkills"`
	CoveredSkills []CoveredSkill `json:"coveredSkills"`
}

// SkillGaps compares each required skill with the best experience on the team.
// A skill nobody holds, or held with zero years, is missing; one held below the
// minimum is weak; anything else is covered.
func SkillGaps(required []project.SkillRequirement, team []employee.Employee) SkillGapReport {
	best := make(map[string]int)
	for _, m := range team {
		for _, s := range m.Skills {
			if s.Years > best[s.SkillName] {
				best[s.SkillName] = s.Years
			}
		}
	}

	out := SkillGapReport{
		MissingSkills: []MissingSkill{},
		WeakSkills:    []WeakSkill{},
		CoveredSkills: []CoveredSkill{},
	}
	for _, r := range required {
		have := best[r.SkillName]
		switch {
		case have == 0:
			out.MissingSkills = append(out.MissingSkills, MissingSkill{
				Skill:         r.SkillName,
				MinExperience: r.MinExperienceYears,
				Recommendation: fmt.Sprintf("Add a team member with %d+ years of %s experience, or provide training to existing team members.",
					r.MinExperienceYears, r.SkillName),
			})
		case have < r.MinExperienceYears:
			out.WeakSkills = append(out.WeakSkills, WeakSkill{
				Skill:                r.SkillName,
				CurrentMaxExperience: have,
				Required:             r.MinExperienceYears,
				Recommendation: fmt.Sprintf("Current team has %d years of %s experience, but %d years are required. Consider adding a more experienced developer or upskilling.",
					have, r.SkillName, r.MinExperienceYears),
			})
		default:
			out.CoveredSkills = append(out.CoveredSkills, CoveredSkill{Skill: r.SkillName, MaxExperience: have})
		}
	}
	return out
}
