package schedule

import (
	"context"
	"time"
)

// StoredSchedule is a persisted calculation: the terms it was computed
// from, the immutable result, and the audit metadata the compliance and
// document collaborators key on.
type StoredSchedule struct {
	ID        int64
	Terms     LoanTerms
	Result    RepaymentSchedule
	CreatedAt time.Time
}

type Repository interface {
	SaveSchedule(ctx context.Context, terms LoanTerms, result *RepaymentSchedule) (*StoredSchedule, error)

	GetScheduleByID(ctx context.Context, scheduleID int64) (*StoredSchedule, error)

	DeleteSchedulesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Cache is a read-through cache over stored schedules. Implementations
// must treat misses and transport errors identically (return ok=false);
// the service always falls back to the repository.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
