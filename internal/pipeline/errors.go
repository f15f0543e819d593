package pipeline

import (
	"errors"
	"fmt"
)

const (
	StageLoad    = "load"
	StagePrompt  = "prompt"
	StageInvoke  = "invoke"
	StageParse   = "parse"
	StageVerify  = "verify"
	StagePersist = "persist"
)

var (
	ErrEmptyDescription = errors.New("project description is empty")
	ErrEmptyRoster      = errors.New("no employees to match")
	ErrEmptyCatalog     = errors.New("skill catalog is empty")
)

// StageError is the failure result of one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the stage an error came from, or "" for foreign errors.
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// skipped reports errors that mean there was nothing to match rather than a fault.
func skipped(err error) bool {
	return errors.Is(err, ErrEmptyDescription) || errors.Is(err, ErrEmptyRoster) || errors.Is(err, ErrEmptyCatalog)
}
