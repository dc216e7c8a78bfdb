package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
)

// CalculationPublisher notifies downstream consumers (document
// generation, compliance reporting) that a schedule has been calculated
// and persisted.
type CalculationPublisher interface {
	PublishScheduleCalculated(ctx context.Context, stored *StoredSchedule) error
}

type ScheduleService interface {
	// CalculateSchedule runs the engine, persists the result and
	// publishes a calculation event.
	CalculateSchedule(ctx context.Context, terms LoanTerms) (*StoredSchedule, error)

	// PreviewSchedule runs the engine without persisting anything.
	PreviewSchedule(ctx context.Context, terms LoanTerms) (*RepaymentSchedule, error)

	GetSchedule(ctx context.Context, scheduleID int64) (*StoredSchedule, error)

	ValidatePayment(ctx context.Context, scheduleID int64, amount Money, installmentNumber int) (PaymentValidation, error)

	NextPaymentDue(ctx context.Context, scheduleID int64, paidInstallments []int) (*PaymentScheduleItem, error)
}

type scheduleServiceImpl struct {
	repo      Repository
	cache     Cache
	publisher CalculationPublisher
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// NewScheduleService wires the engine to its collaborators. cache and
// publisher may be nil when the deployment runs without Redis or
// RabbitMQ; both are best-effort side channels.
func NewScheduleService(repo Repository, cache Cache, publisher CalculationPublisher, cacheTTL time.Duration, logger *slog.Logger) ScheduleService {
	return &scheduleServiceImpl{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		logger:    logger.With("component", "ScheduleService"),
	}
}

func (s *scheduleServiceImpl) CalculateSchedule(ctx context.Context, terms LoanTerms) (*StoredSchedule, error) {
	start := time.Now()
	result, err := Calculate(terms)
	if err != nil {
		monitoring.RecordScheduleCalculation(string(terms.RepaymentType), "failure_validation", time.Since(start))
		s.logger.Error("Schedule calculation rejected", "error", err)
		return nil, err
	}

	stored, err := s.repo.SaveSchedule(ctx, terms, result)
	if err != nil {
		monitoring.RecordScheduleCalculation(string(terms.RepaymentType), "failure_persist", time.Since(start))
		s.logger.Error("Failed to persist calculated schedule", "error", err)
		return nil, fmt.Errorf("%w: failed to persist schedule: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordScheduleCalculation(string(terms.RepaymentType), "success", time.Since(start))
	s.logger.Info("Schedule calculated",
		"scheduleID", stored.ID,
		"repaymentType", terms.RepaymentType,
		"numberOfPayments", result.NumberOfPayments,
		"apr", result.AnnualPercentageRate,
	)

	s.cacheStored(ctx, stored)

	if s.publisher != nil {
		if err := s.publisher.PublishScheduleCalculated(ctx, stored); err != nil {
			// Event delivery is best effort; the schedule is already durable.
			s.logger.Warn("Failed to publish schedule calculated event", "scheduleID", stored.ID, "error", err)
		}
	}

	return stored, nil
}

func (s *scheduleServiceImpl) PreviewSchedule(ctx context.Context, terms LoanTerms) (*RepaymentSchedule, error) {
	start := time.Now()
	result, err := Calculate(terms)
	if err != nil {
		monitoring.RecordScheduleCalculation(string(terms.RepaymentType), "failure_validation", time.Since(start))
		return nil, err
	}
	monitoring.RecordScheduleCalculation(string(terms.RepaymentType), "preview", time.Since(start))
	return result, nil
}

func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, scheduleID int64) (*StoredSchedule, error) {
	if cached, ok := s.cachedStored(ctx, scheduleID); ok {
		return cached, nil
	}

	stored, err := s.repo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	s.cacheStored(ctx, stored)
	return stored, nil
}

func (s *scheduleServiceImpl) ValidatePayment(ctx context.Context, scheduleID int64, amount Money, installmentNumber int) (PaymentValidation, error) {
	stored, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return PaymentValidation{}, err
	}
	validation := ValidatePayment(amount, installmentNumber, stored.Result.Schedule)
	result := "accepted"
	if !validation.IsValid {
		result = "rejected"
	}
	monitoring.RecordPaymentValidation(result)
	s.logger.Info("Payment validated", "scheduleID", scheduleID, "installment", installmentNumber, "result", result)
	return validation, nil
}

func (s *scheduleServiceImpl) NextPaymentDue(ctx context.Context, scheduleID int64, paidInstallments []int) (*PaymentScheduleItem, error) {
	stored, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return NextPaymentDue(stored.Result.Schedule, paidInstallments), nil
}

func cacheKey(scheduleID int64) string {
	return fmt.Sprintf("schedule:%d", scheduleID)
}

func (s *scheduleServiceImpl) cacheStored(ctx context.Context, stored *StoredSchedule) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		s.logger.Warn("Failed to marshal schedule for cache", "scheduleID", stored.ID, "error", err)
		return
	}
	if err := s.cache.Set(ctx, cacheKey(stored.ID), string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache schedule", "scheduleID", stored.ID, "error", err)
	}
}

func (s *scheduleServiceImpl) cachedStored(ctx context.Context, scheduleID int64) (*StoredSchedule, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, ok := s.cache.Get(ctx, cacheKey(scheduleID))
	if !ok {
		monitoring.RecordCacheLookup("miss")
		return nil, false
	}
	var stored StoredSchedule
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		s.logger.Warn("Discarding undecodable cached schedule", "scheduleID", scheduleID, "error", err)
		monitoring.RecordCacheLookup("miss")
		return nil, false
	}
	monitoring.RecordCacheLookup("hit")
	return &stored, true
}
