package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
	ErrProjectNotFound    = errors.New("Project not found")
	ErrEmployeeNotFound   = errors.New("Employee not found")
	ErrSkillAlreadyExists = errors.New("Skill already exists")
	ErrNoValidEmployees   = errors.New("No valid employees found")
	ErrMissingDescription = errors.New("Project not found or missing description")
)

// InputError reports a rejected field. It matches ErrInvalidInput.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

// internalErr keeps the cause for logs while matching ErrInternal.
func internalErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
