package repository

import (
	"context"

	"staffmatch/internal/database"
	"staffmatch/internal/domain/employee"
)

type EmployeeRepository interface {
	List(ctx context.Context) ([]employee.Employee, error)
	ListByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error)
	Get(ctx context.Context, id int64) (employee.Employee, error)
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type SQLEmployeeRepository struct {
	db database.DB
}

func NewSQLEmployeeRepository(db database.DB) *SQLEmployeeRepository {
	return &SQLEmployeeRepository{db: db}
}

func (r *SQLEmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return loadEmployees(ctx, r.db, nil)
}

func (r *SQLEmployeeRepository) ListByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}
	return loadEmployees(ctx, r.db, ids)
}

func (r *SQLEmployeeRepository) Get(ctx context.Context, id int64) (employee.Employee, error) {
	if id <= 0 {
		return employee.Employee{}, ErrEmployeeNotFound
	}
	out, err := loadEmployees(ctx, r.db, []int64{id})
	if err != nil {
		return employee.Employee{}, err
	}
	if len(out) == 0 {
		return employee.Employee{}, ErrEmployeeNotFound
	}
	return out[0], nil
}

func (r *SQLEmployeeRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return existingIDs(ctx, r.db, "employees", ids)
}

// loadEmployees reads employees with their skills and languages. A nil ids
// slice loads the whole roster.
func loadEmployees(ctx context.Context, db database.DB, ids []int64) ([]employee.Employee, error) {
	where := ""
	var args []any
	if ids != nil {
		where = ` WHERE e.id IN (` + database.Placeholders(1, len(ids)) + `)`
		args = int64Args(ids)
	}

	rows, err := db.Query(ctx,
		`SELECT e.id, e.fullname, e.email, e.role, e.seniority, e.total_experience_years, COALESCE(l.name, '')
		 FROM employees e
		 LEFT JOIN locations l ON l.id = e.location_id`+where+`
		 ORDER BY e.id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0)
	index := map[int64]int{}
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.Email, &e.Role, &e.Seniority, &e.TotalExperienceYears, &e.Location); err != nil {
			rows.Close()
			return nil, err
		}
		e.Skills = []employee.SkillExperience{}
		e.Languages = []string{}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	skillWhere := ""
	if ids != nil {
		skillWhere = ` WHERE es.employee_id IN (` + database.Placeholders(1, len(ids)) + `)`
	}
	if err := scanEach(ctx, db,
		`SELECT es.employee_id, s.id, s.name, es.years
		 FROM employee_skills es
		 JOIN skills s ON s.id = es.skill_id`+skillWhere+`
		 ORDER BY es.employee_id ASC, s.name ASC`,
		args,
		func(rows database.Rows) error {
			var empID int64
			var se employee.SkillExperience
			if err := rows.Scan(&empID, &se.SkillID, &se.SkillName, &se.Years); err != nil {
				return err
			}
			if i, ok := index[empID]; ok {
				out[i].Skills = append(out[i].Skills, se)
			}
			return nil
		},
	); err != nil {
		return nil, err
	}

	langWhere := ""
	if ids != nil {
		langWhere = ` WHERE el.employee_id IN (` + database.Placeholders(1, len(ids)) + `)`
	}
	if err := scanEach(ctx, db,
		`SELECT el.employee_id, l.name
		 FROM employee_languages el
		 JOIN languages l ON l.id = el.language_id`+langWhere+`
		 ORDER BY el.employee_id ASC, l.name ASC`,
		args,
		func(rows database.Rows) error {
			var empID int64
			var name string
			if err := rows.Scan(&empID, &name); err != nil {
				return err
			}
			if i, ok := index[empID]; ok {
				out[i].Languages = append(out[i].Languages, name)
			}
			return nil
		},
	); err != nil {
		return nil, err
	}

	return out, nil
}

func scanEach(ctx context.Context, db database.DB, query string, args []any, fn func(database.Rows) error) error {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
