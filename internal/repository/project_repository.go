package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffmatch/internal/database"
	"staffmatch/internal/domain/project"
)

type NewProject struct {
	Name        string
	Description string
	CreatedBy   string
	Skills      []project.SkillRequirement
	Seniority   []project.SeniorityRequirement
}

type ProjectRepository interface {
	Create(ctx context.Context, p NewProject) (int64, error)
	Get(ctx context.Context, id int64) (project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type SQLProjectRepository struct {
	db database.DB
}

func NewSQLProjectRepository(db database.DB) *SQLProjectRepository {
	return &SQLProjectRepository{db: db}
}

// Create writes the project and its ordered requirements in one transaction.
func (r *SQLProjectRepository) Create(ctx context.Context, p NewProject) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO projects (name, description, created_by) VALUES ($1, $2, $3) RETURNING id`,
		strings.TrimSpace(p.Name), strings.TrimSpace(p.Description), p.CreatedBy,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}

	for i, s := range p.Skills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_skills (project_id, skill_id, min_experience_years, position) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (project_id, skill_id) DO NOTHING`,
			id, s.SkillID, s.MinExperienceYears, i,
		); err != nil {
			return 0, fmt.Errorf("insert project skill %d: %w", s.SkillID, err)
		}
	}

	for i, s := range p.Seniority {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_seniority (project_id, seniority, required_count, position) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (project_id, seniority) DO NOTHING`,
			id, s.Level, s.Count, i,
		); err != nil {
			return 0, fmt.Errorf("insert project seniority %s: %w", s.Level, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *SQLProjectRepository) Get(ctx context.Context, id int64) (project.Project, error) {
	var p project.Project
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_by FROM projects WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, err
	}

	byID := map[int64]*project.Project{p.ID: &p}
	if err := r.loadRequirements(ctx, byID, []int64{p.ID}); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (r *SQLProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_by FROM projects ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	out := make([]project.Summary, 0)
	for rows.Next() {
		var s project.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedBy); err != nil {
			rows.Close()
			return nil, err
		}
		s.TeamEmployeeIDs = []int64{}
		out = append(out, s)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	byID := make(map[int64]*project.Project, len(out))
	summaries := make(map[int64]*project.Summary, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i].Project
		summaries[out[i].ID] = &out[i]
	}
	if err := r.loadRequirements(ctx, byID, nil); err != nil {
		return nil, err
	}

	if err := scanEach(ctx, r.db,
		`SELECT project_id, employee_id FROM project_team ORDER BY project_id ASC, employee_id ASC`,
		nil,
		func(rows database.Rows) error {
			var pid, eid int64
			if err := rows.Scan(&pid, &eid); err != nil {
				return err
			}
			if s, ok := summaries[pid]; ok {
				s.TeamEmployeeIDs = append(s.TeamEmployeeIDs, eid)
			}
			return nil
		},
	); err != nil {
		return nil, err
	}
	return out, nil
}

// loadRequirements fills skills and seniority for the projects in byID. A nil
// ids slice reads all requirement rows.
func (r *SQLProjectRepository) loadRequirements(ctx context.Context, byID map[int64]*project.Project, ids []int64) error {
	where := ""
	var args []any
	if ids != nil {
		where = ` WHERE ps.project_id IN (` + database.Placeholders(1, len(ids)) + `)`
		args = int64Args(ids)
	}
	for _, p := range byID {
		p.Skills = []project.SkillRequirement{}
		p.Seniority = []project.SeniorityRequirement{}
	}

	if err := scanEach(ctx, r.db,
		`SELECT ps.project_id, s.id, s.name, ps.min_experience_years
		 FROM project_skills ps
		 JOIN skills s ON s.id = ps.skill_id`+where+`
		 ORDER BY ps.project_id ASC, ps.position ASC`,
		args,
		func(rows database.Rows) error {
			var pid int64
			var req project.SkillRequirement
			if err := rows.Scan(&pid, &req.SkillID, &req.SkillName, &req.MinExperienceYears); err != nil {
				return err
			}
			if p, ok := byID[pid]; ok {
				p.Skills = append(p.Skills, req)
			}
			return nil
		},
	); err != nil {
		return err
	}

	return scanEach(ctx, r.db,
		`SELECT ps.project_id, ps.seniority, ps.required_count
		 FROM project_seniority ps`+where+`
		 ORDER BY ps.project_id ASC, ps.position ASC`,
		args,
		func(rows database.Rows) error {
			var pid int64
			var req project.SeniorityRequirement
			if err := rows.Scan(&pid, &req.Level, &req.Count); err != nil {
				return err
			}
			if p, ok := byID[pid]; ok {
				p.Seniority = append(p.Seniority, req)
			}
			return nil
		},
	)
}

func (r *SQLProjectRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *SQLProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, `SELECT 1 FROM projects WHERE id = $1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
