package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectDerivedFields(t *testing.T) {
	p := Project{
		Skills: []SkillRequirement{
			{SkillName: "Go", MinExperienceYears: 3},
			{SkillName: "PostgreSQL", MinExperienceYears: 5},
		},
		Seniority: []SeniorityRequirement{
			{Level: "Senior", Count: 2},
			{Level: "Junior", Count: 1},
		},
	}

	assert.Equal(t, 3, p.DevelopersNeeded())
	assert.Equal(t, 5, p.ExperienceYears())
	assert.Equal(t, []string{"Go", "PostgreSQL"}, p.SkillNames())
	assert.Equal(t, []string{"Senior", "Junior"}, p.Categories())
}

func TestEmptyProjectDerivedFields(t *testing.T) {
	var p Project
	assert.Zero(t, p.DevelopersNeeded())
	assert.Zero(t, p.ExperienceYears())
	assert.Empty(t, p.SkillNames())
}
