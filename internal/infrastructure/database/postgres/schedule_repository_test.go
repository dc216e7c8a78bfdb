package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-engine/internal/domain/schedule"
	"lending-engine/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

func scheduleFixture(t *testing.T) (schedule.LoanTerms, *schedule.RepaymentSchedule) {
	t.Helper()
	terms := schedule.LoanTerms{
		Principal:          100000,
		InterestRate:       12,
		InterestType:       schedule.InterestReducing,
		TenureValue:        12,
		TenureUnit:         schedule.TenureUnitMonths,
		RepaymentType:      schedule.RepaymentEMI,
		RepaymentFrequency: schedule.FrequencyMonthly,
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	result, err := schedule.Calculate(terms)
	require.NoError(t, err)
	return terms, result
}

func setupScheduleRepo(t *testing.T) (context.Context, *ScheduleRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewScheduleRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestSaveScheduleWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	terms, result := scheduleFixture(t)
	termsJSON, err := json.Marshal(terms)
	require.NoError(t, err)
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	query := `
        INSERT INTO repayment_schedules (principal, repayment_type, number_of_payments, total_interest, annual_percentage_rate, terms, result, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, created_at`

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		terms.Principal,
		string(terms.RepaymentType),
		result.NumberOfPayments,
		result.TotalInterest,
		result.AnnualPercentageRate,
		termsJSON,
		resultJSON,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), createdAt))

	stored, err := repo.SaveSchedule(ctx, terms, result)

	assert.NoError(t, err)
	if assert.NotNil(t, stored) {
		assert.Equal(t, int64(42), stored.ID)
		assert.Equal(t, createdAt, stored.CreatedAt)
		assert.Equal(t, terms, stored.Terms)
		assert.Equal(t, *result, stored.Result)
	}
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveScheduleWhenInsertFails(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	terms, result := scheduleFixture(t)

	mockPool.ExpectQuery("INSERT INTO repayment_schedules").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection refused"))

	stored, err := repo.SaveSchedule(ctx, terms, result)

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestGetScheduleByIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	terms, result := scheduleFixture(t)
	termsJSON, err := json.Marshal(terms)
	require.NoError(t, err)
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	query := `
        SELECT id, terms, result, created_at
        FROM repayment_schedules
        WHERE id = $1`

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "terms", "result", "created_at"}).
			AddRow(int64(42), termsJSON, resultJSON, createdAt))

	stored, err := repo.GetScheduleByID(ctx, 42)

	assert.NoError(t, err)
	if assert.NotNil(t, stored) {
		assert.Equal(t, int64(42), stored.ID)
		assert.Equal(t, terms.Principal, stored.Terms.Principal)
		assert.Equal(t, result.NumberOfPayments, stored.Result.NumberOfPayments)
		assert.Equal(t, result.TotalInterest, stored.Result.TotalInterest)
		assert.Len(t, stored.Result.Schedule, result.NumberOfPayments)
	}
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestGetScheduleByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT id, terms, result, created_at").WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "terms", "result", "created_at"}))

	stored, err := repo.GetScheduleByID(ctx, 99)

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestGetScheduleByIDWhenStoredTermsCorrupt(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery("SELECT id, terms, result, created_at").WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "terms", "result", "created_at"}).
			AddRow(int64(42), []byte("{not json"), []byte("{}"), createdAt))

	stored, err := repo.GetScheduleByID(ctx, 42)

	assert.Nil(t, stored)
	assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteSchedulesBeforeWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM repayment_schedules WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	deleted, err := repo.DeleteSchedulesBefore(ctx, cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteSchedulesBeforeWhenExecFails(t *testing.T) {
	ctx, repo, mockPool := setupScheduleRepo(t)
	defer mockPool.Close()

	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mockPool.ExpectExec("DELETE FROM repayment_schedules").WithArgs(cutoff).
		WillReturnError(errors.New("connection refused"))

	deleted, err := repo.DeleteSchedulesBefore(ctx, cutoff)

	assert.Zero(t, deleted)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
