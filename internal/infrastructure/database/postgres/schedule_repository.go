package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lending-engine/internal/domain/schedule"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// ScheduleRepository persists calculated repayment schedules. The terms
// and the full result are stored as JSONB documents alongside a few
// scalar audit columns the compliance reports query on.
type ScheduleRepository struct {
	db     DBPool
	logger *slog.Logger
}

func NewScheduleRepository(db DBPool, logger *slog.Logger) *ScheduleRepository {
	return &ScheduleRepository{db: db, logger: logger.With("component", "ScheduleRepository")}
}

func (r *ScheduleRepository) SaveSchedule(ctx context.Context, terms schedule.LoanTerms, result *schedule.RepaymentSchedule) (*schedule.StoredSchedule, error) {
	termsJSON, err := json.Marshal(terms)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode loan terms: %w", apperrors.ErrInternalServer, err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode schedule result: %w", apperrors.ErrInternalServer, err)
	}

	sql := `
        INSERT INTO repayment_schedules (principal, repayment_type, number_of_payments, total_interest, annual_percentage_rate, terms, result, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, created_at`

	status := "success"
	startTime := time.Now()

	var stored schedule.StoredSchedule
	err = r.db.QueryRow(ctx, sql,
		terms.Principal, string(terms.RepaymentType), result.NumberOfPayments,
		result.TotalInterest, result.AnnualPercentageRate, termsJSON, resultJSON,
	).Scan(&stored.ID, &stored.CreatedAt)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("SaveSchedule", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert schedule", "error", err)
		return nil, fmt.Errorf("%w: failed to insert schedule: %w", apperrors.ErrDatabase, err)
	}

	stored.Terms = terms
	stored.Result = *result
	r.logger.InfoContext(ctx, "Schedule stored in DB", "schedule_id", stored.ID)
	return &stored, nil
}

func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, scheduleID int64) (*schedule.StoredSchedule, error) {
	query := `
        SELECT id, terms, result, created_at
        FROM repayment_schedules
        WHERE id = $1`

	status := "success"
	startTime := time.Now()

	var (
		stored     schedule.StoredSchedule
		termsJSON  []byte
		resultJSON []byte
	)
	err := r.db.QueryRow(ctx, query, scheduleID).Scan(&stored.ID, &termsJSON, &resultJSON, &stored.CreatedAt)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("GetScheduleByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Schedule not found", "schedule_id", scheduleID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get schedule by ID", "schedule_id", scheduleID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	if err := json.Unmarshal(termsJSON, &stored.Terms); err != nil {
		r.logger.ErrorContext(ctx, "Failed to decode stored loan terms", "schedule_id", scheduleID, "error", err)
		return nil, fmt.Errorf("%w: stored terms are not decodable: %w", apperrors.ErrInternalServer, err)
	}
	if err := json.Unmarshal(resultJSON, &stored.Result); err != nil {
		r.logger.ErrorContext(ctx, "Failed to decode stored schedule result", "schedule_id", scheduleID, "error", err)
		return nil, fmt.Errorf("%w: stored result is not decodable: %w", apperrors.ErrInternalServer, err)
	}
	return &stored, nil
}

func (r *ScheduleRepository) DeleteSchedulesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sql := `DELETE FROM repayment_schedules WHERE created_at < $1`

	status := "success"
	startTime := time.Now()

	cmdTag, err := r.db.Exec(ctx, sql, cutoff)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("DeleteSchedulesBefore", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete schedules before cutoff", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return cmdTag.RowsAffected(), nil
}
