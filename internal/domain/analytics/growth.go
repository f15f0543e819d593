package analytics

import (
	"math"

	"staffmatch/internal/domain/employee"
)

type CurrentSkill struct {
	SkillName       string `json:"skillName"`
	ExperienceYears int    `json:"experienceYears"`
}

type ProjectHistory struct {
	ProjectID   int64    `json:"projectId"`
	ProjectName string   `json:"projectName"`
	SkillsUsed  []string `json:"skillsUsed"`
}

type SkillGrowth struct {
	SkillName         string  `json:"skillName"`
	InitialExperience float64 `json:"initialExperience"`
	CurrentExperience int     `json:"currentExperience"`
	Growth            float64 `json:"growth"`
	Projects          int     `json:"projects"`
}

type CareerPath struct {
	CurrentLevel    string   `json:"currentLevel"`
	NextLevel       string   `json:"nextLevel,omitempty"`
	ReadinessScore  int      `json:"readinessScore"`
	Recommendations []string `json:"recommendations"`
}

type Growth struct {
	EmployeeID     int64            `json:"employeeId"`
	EmployeeName   string           `json:"employeeName"`
	CurrentSkills  []CurrentSkill   `json:"currentSkills"`
	ProjectHistory []ProjectHistory `json:"projectHistory"`
	SkillGrowth    []SkillGrowth    `json:"skillGrowth"`
	CareerPath     CareerPath       `json:"careerPath"`
}

const (
	growthPerProject = 0.5
	maxSkillGrowth   = 5.0
)

// EmployeeGrowth estimates skill growth and promotion readiness from the
// employee's profile and the projects they are assigned to. Every skill is
// assumed to be exercised on every project.
func EmployeeGrowth(e employee.Employee, projects []ProjectRef) Growth {
	skills := make([]CurrentSkill, 0, len(e.Skills))
	for _, s := range e.Skills {
		skills = append(skills, CurrentSkill{SkillName: s.SkillName, ExperienceYears: s.Years})
	}

	history := make([]ProjectHistory, 0, len(projects))
	for _, p := range projects {
		history = append(history, ProjectHistory{ProjectID: p.ProjectID, ProjectName: p.ProjectName, SkillsUsed: e.SkillNames()})
	}

	grown := math.Min(float64(len(projects))*growthPerProject, maxSkillGrowth)
	growth := make([]SkillGrowth, 0, len(skills))
	for _, s := range skills {
		growth = append(growth, SkillGrowth{
			SkillName:         s.SkillName,
			InitialExperience: math.Max(0, float64(s.ExperienceYears)-grown),
			CurrentExperience: s.ExperienceYears,
			Growth:            grown,
			Projects:          len(projects),
		})
	}

	return Growth{
		EmployeeID:     e.ID,
		EmployeeName:   e.FullName,
		CurrentSkills:  skills,
		ProjectHistory: history,
		SkillGrowth:    growth,
		CareerPath:     careerPath(e, len(projects)),
	}
}

// ReadinessScore weighs projects, skill count and total years, capped at 100.
func ReadinessScore(projects, skills, years int) int {
	raw := math.Round(float64(projects*10+skills*5+years*2) / 3)
	return int(math.Min(100, raw))
}

// NextLevel returns the seniority after level, or "" at the top of the ladder
// or for an unrecognized level.
func NextLevel(level string) string {
	for i, l := range employee.Levels {
		if l == level && i+1 < len(employee.Levels) {
			return employee.Levels[i+1]
		}
	}
	return ""
}

func careerPath(e employee.Employee, projects int) CareerPath {
	current := e.Seniority
	if current == "" {
		current = employee.Junior
	}
	next := NextLevel(current)
	score := ReadinessScore(projects, len(e.Skills), e.TotalExperienceYears)

	var recs []string
	switch {
	case score >= 80 && next != "":
		recs = []string{"Ready for promotion to " + next + " level"}
	case score < 50:
		recs = []string{"Gain more project experience to advance", "Develop additional skills in your domain"}
	default:
		recs = []string{"Continue building project experience", "Take on more challenging projects"}
	}
	return CareerPath{CurrentLevel: current, NextLevel: next, ReadinessScore: score, Recommendations: recs}
}
