package pipeline

import (
	"context"
	"time"

	"staffmatch/internal/ai"
	"staffmatch/internal/logger"

	"go.uber.org/zap"
)

// Trigger starts a run in its own goroutine and returns at once. The caller
// never sees the result: this is the one place where run failures are logged
// and dropped.
func (m *TeamMatching) Trigger(projectID int64, description string) {
	if m == nil {
		return
	}
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.ForProject(m.log, projectID, "").Error("team matching panicked", zap.Any("panic", r), zap.Stack("stack"))
			}
		}()

		start := time.Now()
		out, err := m.Run(context.Background(), projectID, description)
		m.report(projectID, out, err, time.Since(start))
	}()
}

func (m *TeamMatching) report(projectID int64, out Outcome, err error, elapsed time.Duration) {
	log := logger.ForProject(m.log, projectID, out.RunID)
	if err == nil {
		log.Info("team matching finished",
			zap.String("mode", string(out.Mode)),
			zap.Int("candidates", out.Candidates),
			zap.Int("valid", out.Valid),
			zap.Int("discarded", len(out.Discarded)),
			zap.Int64("inserted", out.Inserted),
			zap.Duration("duration", elapsed),
		)
		return
	}

	fields := []zap.Field{
		zap.String(logger.FieldStage, StageOf(err)),
		zap.Duration("duration", elapsed),
		zap.Error(err),
	}
	if StageOf(err) == StageInvoke {
		fields = append(fields, zap.String("error_kind", string(ai.Classify(err))))
	}
	if skipped(err) {
		log.Warn("team matching skipped", fields...)
		return
	}
	log.Error("team matching failed", fields...)
}

// Wait blocks until every triggered run has finished or ctx is done.
func (m *TeamMatching) Wait(ctx context.Context) error {
	if m == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
