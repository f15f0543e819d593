package project

import "staffmatch/internal/domain/employee"

type SkillRequirement struct {
	SkillID            int64
	SkillName          string
	MinExperienceYears int
}

type SeniorityRequirement struct {
	Level string
	Count int
}

type Project struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   string
	Skills      []SkillRequirement
	Seniority   []SeniorityRequirement
}

// Member is an employee on a project team. Score is nil for manually added
// members and set for members placed by the matching pipeline.
type Member struct {
	Employee employee.Employee
	Score    *float64
}

// Summary is the list view of a project.
type Summary struct {
	Project
	TeamEmployeeIDs []int64
}

// DevelopersNeeded sums the required headcount over all seniority requirements.
func (p Project) DevelopersNeeded() int {
	n := 0
	for _, s := range p.Seniority {
		n += s.Count
	}
	return n
}

// ExperienceYears is the largest minimum experience over required skills.
func (p Project) ExperienceYears() int {
	m := 0
	for _, s := range p.Skills {
		if s.MinExperienceYears > m {
			m = s.MinExperienceYears
		}
	}
	return m
}

func (p Project) SkillNames() []string {
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		out = append(out, s.SkillName)
	}
	return out
}

// Categories are the requested seniority levels in order.
func (p Project) Categories() []string {
	out := make([]string, 0, len(p.Seniority))
	for _, s := range p.Seniority {
		out = append(out, s.Level)
	}
	return out
}
