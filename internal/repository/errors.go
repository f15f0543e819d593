package repository

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrSkillExists      = errors.New("skill already exists")
)
