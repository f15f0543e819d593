package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldProjectID = "project_id"
	FieldRunID     = "run_id"
	FieldStage     = "stage"
)

// CommonFields returns the provider and model fields, skipping empty values.
func CommonFields(provider, model string) []zap.Field {
	out := make([]zap.Field, 0, 2)
	if p := strings.TrimSpace(provider); p != "" {
		out = append(out, zap.String(FieldProvider, p))
	}
	if m := strings.TrimSpace(model); m != "" {
		out = append(out, zap.String(FieldModel, m))
	}
	return out
}

// WithCommonFields attaches provider and model to l. A nil l yields a no-op logger.
func WithCommonFields(l *zap.Logger, provider, model string) *zap.Logger {
	l = OrNop(l)
	fields := CommonFields(provider, model)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// ForProject scopes l to one pipeline run of a project.
func ForProject(l *zap.Logger, projectID int64, runID string) *zap.Logger {
	l = OrNop(l)
	fields := []zap.Field{zap.Int64(FieldProjectID, projectID)}
	if runID != "" {
		fields = append(fields, zap.String(FieldRunID, runID))
	}
	return l.With(fields...)
}
