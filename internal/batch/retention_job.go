package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lending-engine/internal/domain/schedule"
	"lending-engine/internal/infrastructure/monitoring"
)

// RetentionSweepJob removes persisted schedules older than the retention
// period. Calculations are cheap to reproduce from their terms, so aged
// audit copies are swept rather than archived.
type RetentionSweepJob struct {
	repo            schedule.Repository
	retentionPeriod time.Duration
	logger          *slog.Logger
}

func NewRetentionSweepJob(repo schedule.Repository, retentionPeriod time.Duration, logger *slog.Logger) *RetentionSweepJob {
	if repo == nil || logger == nil {
		panic("RetentionSweepJob dependencies cannot be nil")
	}
	return &RetentionSweepJob{
		repo:            repo,
		retentionPeriod: retentionPeriod,
		logger:          logger.With("job", "RetentionSweep"),
	}
}

func (j *RetentionSweepJob) Run(ctx context.Context) error {
	startTime := time.Now()
	cutoff := startTime.Add(-j.retentionPeriod)
	j.logger.InfoContext(ctx, "Starting schedule retention sweep.", slog.Time("cutoff", cutoff))

	deleted, err := j.repo.DeleteSchedulesBefore(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention sweep failed.", slog.Any("error", err))
		return fmt.Errorf("cannot sweep schedules before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	monitoring.RecordRetentionSweep(deleted)
	j.logger.InfoContext(ctx, "Schedule retention sweep finished.",
		slog.Int64("schedules_deleted", deleted),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
