package repository

import (
	"context"
	"errors"
	"strings"

	"staffmatch/internal/database"
	"staffmatch/internal/domain/skill"
)

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	Create(ctx context.Context, name, category string) (skill.Skill, error)
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type SQLSkillRepository struct {
	db database.DB
}

func NewSQLSkillRepository(db database.DB) *SQLSkillRepository {
	return &SQLSkillRepository{db: db}
}

func (r *SQLSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLSkillRepository) Create(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (name, category) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING RETURNING id`,
		name, category,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return skill.Skill{}, ErrSkillExists
		}
		return skill.Skill{}, err
	}
	return skill.Skill{ID: id, Name: name, Category: category}, nil
}

func (r *SQLSkillRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return existingIDs(ctx, r.db, "skills", ids)
}

// existingIDs returns the subset of ids present in table, ascending.
func existingIDs(ctx context.Context, db database.DB, table string, ids []int64) ([]int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []int64{}, nil
	}

	rows, err := db.Query(ctx,
		`SELECT id FROM `+table+` WHERE id IN (`+database.Placeholders(1, len(ids))+`) ORDER BY id ASC`,
		int64Args(ids)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
