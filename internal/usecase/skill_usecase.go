package usecase

import (
	"context"
	"errors"
	"strings"

	"staffmatch/internal/domain/skill"
	"staffmatch/internal/repository"
)

const maxSkillNameLen = 100

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, internalErr("list skills", err)
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, invalid("name", "is required")
	}
	if len(name) > maxSkillNameLen {
		return skill.Skill{}, invalid("name", "is too long")
	}

	created, err := u.repo.Create(ctx, name, strings.TrimSpace(category))
	if err != nil {
		if errors.Is(err, repository.ErrSkillExists) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		return skill.Skill{}, internalErr("create skill", err)
	}
	return created, nil
}
