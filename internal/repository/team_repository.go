package repository

import (
	"context"
	"fmt"
	"strings"

	"staffmatch/internal/database"
	"staffmatch/internal/domain/project"
	"staffmatch/internal/domain/team"
)

type TeamRepository interface {
	InsertSkipDuplicates(ctx context.Context, projectID int64, assignments []team.Assignment) (int64, error)
	Replace(ctx context.Context, projectID int64, employeeIDs []int64) (int64, error)
	ListByProject(ctx context.Context, projectID int64) ([]project.Member, error)
	ListAllAssignments(ctx context.Context) ([]team.Allocation, error)
}

type SQLTeamRepository struct {
	db database.DB
}

func NewSQLTeamRepository(db database.DB) *SQLTeamRepository {
	return &SQLTeamRepository{db: db}
}

// InsertSkipDuplicates writes all assignments in one statement. Pairs that
// already exist are skipped, so the returned count is the rows actually added.
func (r *SQLTeamRepository) InsertSkipDuplicates(ctx context.Context, projectID int64, assignments []team.Assignment) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)*3)
	for _, a := range assignments {
		n := len(args)
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", n+1, n+2, n+3))
		args = append(args, projectID, a.EmployeeID, a.Score)
	}

	return r.db.Exec(ctx,
		`INSERT INTO project_team (project_id, employee_id, score) VALUES `+strings.Join(values, ", ")+`
		 ON CONFLICT (project_id, employee_id) DO NOTHING`,
		args...,
	)
}

// Replace deletes every assignment of the project, then adds the given
// employees with null scores. Ids without an employee row are skipped. The two
// statements are not wrapped in a transaction or lock.
func (r *SQLTeamRepository) Replace(ctx context.Context, projectID int64, employeeIDs []int64) (int64, error) {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_team WHERE project_id = $1`, projectID); err != nil {
		return 0, fmt.Errorf("clear team: %w", err)
	}

	ids := uniqueIDs(employeeIDs)
	if len(ids) == 0 {
		return 0, nil
	}

	args := append([]any{projectID}, int64Args(ids)...)
	n, err := r.db.Exec(ctx,
		`INSERT INTO project_team (project_id, employee_id)
		 SELECT CAST($1 AS BIGINT), e.id FROM employees e WHERE e.id IN (`+database.Placeholders(2, len(ids))+`)
		 ON CONFLICT (project_id, employee_id) DO NOTHING`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("insert team: %w", err)
	}
	return n, nil
}

// ListByProject returns members ordered by score descending with null scores last.
func (r *SQLTeamRepository) ListByProject(ctx context.Context, projectID int64) ([]project.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT employee_id, score FROM project_team
		 WHERE project_id = $1
		 ORDER BY CASE WHEN score IS NULL THEN 1 ELSE 0 END ASC, score DESC, employee_id ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	type pair struct {
		id    int64
		score *float64
	}
	pairs := make([]pair, 0)
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.id, &p.score); err != nil {
			rows.Close()
			return nil, err
		}
		pairs = append(pairs, p)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return []project.Member{}, nil
	}

	ids := make([]int64, 0, len(pairs))
	for _, p := range pairs {
		ids = append(ids, p.id)
	}
	emps, err := loadEmployees(ctx, r.db, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]int, len(emps))
	for i, e := range emps {
		byID[e.ID] = i
	}

	out := make([]project.Member, 0, len(pairs))
	for _, p := range pairs {
		i, ok := byID[p.id]
		if !ok {
			continue
		}
		out = append(out, project.Member{Employee: emps[i], Score: p.score})
	}
	return out, nil
}

func (r *SQLTeamRepository) ListAllAssignments(ctx context.Context) ([]team.Allocation, error) {
	out := make([]team.Allocation, 0)
	err := scanEach(ctx, r.db,
		`SELECT e.id, e.fullname, e.seniority, p.id, p.name
		 FROM project_team pt
		 JOIN employees e ON e.id = pt.employee_id
		 JOIN projects p ON p.id = pt.project_id
		 ORDER BY e.id ASC, p.id ASC`,
		nil,
		func(rows database.Rows) error {
			var a team.Allocation
			if err := rows.Scan(&a.EmployeeID, &a.EmployeeName, &a.Seniority, &a.ProjectID, &a.ProjectName); err != nil {
				return err
			}
			out = append(out, a)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
