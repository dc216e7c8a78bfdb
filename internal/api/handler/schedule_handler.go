package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/schedule"
	"lending-engine/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ScheduleHandler struct {
	service schedule.ScheduleService
	logger  *slog.Logger
}

func NewScheduleHandler(s schedule.ScheduleService, l *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: s,
		logger:  l.With("component", "ScheduleHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getScheduleIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "scheduleID")
	if idStr == "" {
		return 0, fmt.Errorf("scheduleID not found in URL path")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// CalculateSchedule computes and stores a repayment schedule.
//
// @Summary Calculate a repayment schedule
// @Description Computes the amortization table and cost-of-credit disclosures for the given loan terms, persists the result for downstream consumers and returns it with its assigned ID.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param request body dto.CalculateScheduleRequest true "Loan terms"
// @Success 201 {object} dto.RepaymentScheduleResponse "Schedule successfully calculated and stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules [post]
// @Security BearerAuth
func (h *ScheduleHandler) CalculateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	stored, err := h.service.CalculateSchedule(r.Context(), req.ToLoanTerms())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewStoredScheduleResponse(stored))
}

// PreviewSchedule computes a repayment schedule without storing it.
//
// @Summary Preview a repayment schedule
// @Description Computes the amortization table and disclosures for the given loan terms without persisting anything. Identical terms always produce identical output.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param request body dto.CalculateScheduleRequest true "Loan terms"
// @Success 200 {object} dto.RepaymentScheduleResponse "Schedule successfully calculated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/preview [post]
// @Security BearerAuth
func (h *ScheduleHandler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	result, err := h.service.PreviewSchedule(r.Context(), req.ToLoanTerms())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRepaymentScheduleResponse(result))
}

// GetSchedule retrieves a previously calculated schedule.
//
// @Summary Retrieve a stored repayment schedule
// @Description Retrieves a previously calculated schedule by its ID, including the full amortization table.
// @Tags Schedules
// @Produce json
// @Param scheduleID path int true "Schedule ID"
// @Success 200 {object} dto.RepaymentScheduleResponse "Schedule successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule ID"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{scheduleID} [get]
// @Security BearerAuth
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getScheduleIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	stored, err := h.service.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewStoredScheduleResponse(stored))
}

// ValidatePayment checks a payment amount against the schedule.
//
// @Summary Validate a payment amount
// @Description Checks an incoming payment amount against the expected installment amount, with one minor-currency-unit tolerance for rounding drift.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param scheduleID path int true "Schedule ID"
// @Param request body dto.ValidatePaymentRequest true "Payment to validate"
// @Success 200 {object} dto.PaymentValidationResponse "Validation verdict"
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{scheduleID}/payments/validate [post]
// @Security BearerAuth
func (h *ScheduleHandler) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getScheduleIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.ValidatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	amountDecimal, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, fmt.Errorf("%w: invalid numeric format for amount", apperrors.ErrInvalidArgument))
		return
	}
	amountFloat, _ := amountDecimal.Float64()

	validation, err := h.service.ValidatePayment(r.Context(), scheduleID, amountFloat, req.InstallmentNumber)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewPaymentValidationResponse(validation))
}

// NextPaymentDue returns the first unpaid installment.
//
// @Summary Get the next payment due
// @Description Returns the first schedule row whose installment number is not in the paid set, supplied as a comma-separated `paid` query parameter.
// @Tags Schedules
// @Produce json
// @Param scheduleID path int true "Schedule ID"
// @Param paid query string false "Comma-separated list of paid installment numbers"
// @Success 200 {object} dto.NextPaymentDueResponse "Next due installment, or allPaid"
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule ID or paid list"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{scheduleID}/next-due [get]
// @Security BearerAuth
func (h *ScheduleHandler) NextPaymentDue(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getScheduleIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	paidInstallments, err := parsePaidParam(r.URL.Query().Get("paid"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	next, err := h.service.NextPaymentDue(r.Context(), scheduleID, paidInstallments)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewNextPaymentDueResponse(next))
}

func parsePaidParam(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	paid := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid installment number %q in paid list", part)
		}
		paid = append(paid, n)
	}
	return paid, nil
}
