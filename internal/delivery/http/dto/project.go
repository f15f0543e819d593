package dto

import (
	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/usecase"
)

type ProjectSkillRequest struct {
	SkillID            int64 `json:"skill_id" validate:"required,gt=0"`
	MinExperienceYears int   `json:"min_experience_years" validate:"gte=0,lte=60"`
}

type SeniorityRequest struct {
	Level         string `json:"seniority_level" validate:"required,oneof=Junior Mid Senior Lead Principal"`
	RequiredCount int    `json:"required_count" validate:"required,gte=1,lte=100"`
}

type CreateProjectRequest struct {
	ProjectName string                `json:"project_name" validate:"required,max=100"`
	Description string                `json:"description" validate:"max=10000"`
	Skills      []ProjectSkillRequest `json:"skills" validate:"dive"`
	Seniority   []SeniorityRequest    `json:"seniority" validate:"dive"`
}

func (r CreateProjectRequest) Input(createdBy string) usecase.CreateProjectInput {
	in := usecase.CreateProjectInput{
		Name:        r.ProjectName,
		Description: r.Description,
		CreatedBy:   createdBy,
		Skills:      make([]project.SkillRequirement, 0, len(r.Skills)),
		Seniority:   make([]project.SeniorityRequirement, 0, len(r.Seniority)),
	}
	for _, s := range r.Skills {
		in.Skills = append(in.Skills, project.SkillRequirement{SkillID: s.SkillID, MinExperienceYears: s.MinExperienceYears})
	}
	for _, s := range r.Seniority {
		in.Seniority = append(in.Seniority, project.SeniorityRequirement{Level: s.Level, Count: s.RequiredCount})
	}
	return in
}

type CreateProjectResponse struct {
	ID int64 `json:"id"`
}

type ProjectListItem struct {
	ID               int64    `json:"id"`
	ProjectName      string   `json:"project_name"`
	Description      string   `json:"description"`
	DevelopersNeeded int      `json:"developersNeeded"`
	ExperienceYears  int      `json:"experienceYears"`
	Skills           []string `json:"skills"`
	Categories       []string `json:"categories"`
	TeamEmployeeIDs  []int64  `json:"team_employee_ids"`
}

func NewProjectListItem(s project.Summary) ProjectListItem {
	return ProjectListItem{
		ID:               s.ID,
		ProjectName:      s.Name,
		Description:      s.Description,
		DevelopersNeeded: s.DevelopersNeeded(),
		ExperienceYears:  s.ExperienceYears(),
		Skills:           s.SkillNames(),
		Categories:       s.Categories(),
		TeamEmployeeIDs:  s.TeamEmployeeIDs,
	}
}

type ProjectSkillResponse struct {
	SkillID            int64  `json:"skill_id"`
	SkillName          string `json:"skill_name"`
	MinExperienceYears int    `json:"min_experience_years"`
}

type SeniorityResponse struct {
	Level         string `json:"seniority_level"`
	RequiredCount int    `json:"required_count"`
}

type EmployeeSkillResponse struct {
	SkillID         int64  `json:"skill_id"`
	SkillName       string `json:"skill_name"`
	ExperienceYears int    `json:"experience_years"`
}

type TeamMemberResponse struct {
	EmployeeID           int64                   `json:"employee_id"`
	FullName             string                  `json:"full_name"`
	Email                string                  `json:"email"`
	Role                 string                  `json:"role"`
	Seniority            string                  `json:"seniority"`
	TotalExperienceYears int                     `json:"total_experience_years"`
	Location             string                  `json:"location"`
	Skills               []EmployeeSkillResponse `json:"skills"`
	Languages            []string                `json:"languages"`
	Score                *float64                `json:"score"`
}

type ProjectDetailResponse struct {
	ID          int64                  `json:"id"`
	ProjectName string                 `json:"project_name"`
	Description string                 `json:"description"`
	CreatedBy   string                 `json:"created_by,omitempty"`
	Skills      []ProjectSkillResponse `json:"skills"`
	Seniority   []SeniorityResponse    `json:"seniority"`
	Team        []TeamMemberResponse   `json:"team"`
}

func NewProjectDetailResponse(d usecase.ProjectDetail) ProjectDetailResponse {
	p := d.Project
	out := ProjectDetailResponse{
		ID:          p.ID,
		ProjectName: p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		Skills:      make([]ProjectSkillResponse, 0, len(p.Skills)),
		Seniority:   make([]SeniorityResponse, 0, len(p.Seniority)),
		Team:        make([]TeamMemberResponse, 0, len(d.Team)),
	}
	for _, s := range p.Skills {
		out.Skills = append(out.Skills, ProjectSkillResponse{SkillID: s.SkillID, SkillName: s.SkillName, MinExperienceYears: s.MinExperienceYears})
	}
	for _, s := range p.Seniority {
		out.Seniority = append(out.Seniority, SeniorityResponse{Level: s.Level, RequiredCount: s.Count})
	}
	for _, m := range d.Team {
		out.Team = append(out.Team, newTeamMember(m.Employee, m.Score))
	}
	return out
}

func newTeamMember(e employee.Employee, score *float64) TeamMemberResponse {
	out := TeamMemberResponse{
		EmployeeID:           e.ID,
		FullName:             e.FullName,
		Email:                e.Email,
		Role:                 e.Role,
		Seniority:            e.Seniority,
		TotalExperienceYears: e.TotalExperienceYears,
		Location:             e.Location,
		Skills:               make([]EmployeeSkillResponse, 0, len(e.Skills)),
		Languages:            append([]string{}, e.Languages...),
		Score:                score,
	}
	for _, s := range e.Skills {
		out.Skills = append(out.Skills, EmployeeSkillResponse{SkillID: s.SkillID, SkillName: s.SkillName, ExperienceYears: s.Years})
	}
	return out
}
