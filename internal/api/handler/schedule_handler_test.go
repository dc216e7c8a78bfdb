package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/schedule"
	"lending-engine/internal/pkg/apperrors"
)

type MockScheduleService struct {
	mock.Mock
}

func (_m *MockScheduleService) CalculateSchedule(ctx context.Context, terms schedule.LoanTerms) (*schedule.StoredSchedule, error) {
	ret := _m.Called(ctx, terms)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*schedule.StoredSchedule), ret.Error(1)
}

func (_m *MockScheduleService) PreviewSchedule(ctx context.Context, terms schedule.LoanTerms) (*schedule.RepaymentSchedule, error) {
	ret := _m.Called(ctx, terms)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*schedule.RepaymentSchedule), ret.Error(1)
}

func (_m *MockScheduleService) GetSchedule(ctx context.Context, scheduleID int64) (*schedule.StoredSchedule, error) {
	ret := _m.Called(ctx, scheduleID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*schedule.StoredSchedule), ret.Error(1)
}

func (_m *MockScheduleService) ValidatePayment(ctx context.Context, scheduleID int64, amount schedule.Money, installmentNumber int) (schedule.PaymentValidation, error) {
	ret := _m.Called(ctx, scheduleID, amount, installmentNumber)
	return ret.Get(0).(schedule.PaymentValidation), ret.Error(1)
}

func (_m *MockScheduleService) NextPaymentDue(ctx context.Context, scheduleID int64, paidInstallments []int) (*schedule.PaymentScheduleItem, error) {
	ret := _m.Called(ctx, scheduleID, paidInstallments)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*schedule.PaymentScheduleItem), ret.Error(1)
}

func setupScheduleRouter(service schedule.ScheduleService) *chi.Mux {
	h := NewScheduleHandler(service, logger)
	router := chi.NewRouter()
	router.Post("/schedules", h.CalculateSchedule)
	router.Post("/schedules/preview", h.PreviewSchedule)
	router.Get("/schedules/{scheduleID}", h.GetSchedule)
	router.Post("/schedules/{scheduleID}/payments/validate", h.ValidatePayment)
	router.Get("/schedules/{scheduleID}/next-due", h.NextPaymentDue)
	return router
}

func calculateRequestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CalculateScheduleRequest{
		Principal:          100000,
		InterestRate:       12,
		InterestType:       "reducing",
		TenureValue:        12,
		TenureUnit:         "months",
		RepaymentType:      "emi",
		RepaymentFrequency: "monthly",
		StartDate:          "2025-01-01",
	})
	require.NoError(t, err)
	return body
}

func handlerFixture(t *testing.T) *schedule.StoredSchedule {
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
	return &schedule.StoredSchedule{
		ID:        42,
		Terms:     terms,
		Result:    *result,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCalculateScheduleHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		stored := handlerFixture(t)
		mockService.On("CalculateSchedule", mock.Anything, mock.AnythingOfType("schedule.LoanTerms")).Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader(calculateRequestBody(t)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var respBody dto.RepaymentScheduleResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.Equal(t, "42", respBody.ID)
		require.NotNil(t, respBody.EMIAmount)
		assert.Equal(t, "8884.88", *respBody.EMIAmount)
		assert.Len(t, respBody.Schedule, 12)
		mockService.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader([]byte("not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		mockService.AssertNotCalled(t, "CalculateSchedule", mock.Anything, mock.Anything)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader([]byte(`{"principal":1,"bogus":true}`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})

	t.Run("engine validation error maps to 400", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		mockService.On("CalculateSchedule", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError("repaymentFrequency", "unrecognized repayment frequency")).Once()

		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader(calculateRequestBody(t)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var respBody dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.Equal(t, "repaymentFrequency", respBody.Error.Field)
	})

	t.Run("persist failure maps to 500", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		mockService.On("CalculateSchedule", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInternalServer).Once()

		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader(calculateRequestBody(t)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
	})
}

func TestPreviewScheduleHandler(t *testing.T) {
	mockService := new(MockScheduleService)
	router := setupScheduleRouter(mockService)

	stored := handlerFixture(t)
	mockService.On("PreviewSchedule", mock.Anything, mock.AnythingOfType("schedule.LoanTerms")).Return(&stored.Result, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/schedules/preview", bytes.NewReader(calculateRequestBody(t)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var respBody dto.RepaymentScheduleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
	assert.Empty(t, respBody.ID)
	assert.Nil(t, respBody.CreatedAt)
	mockService.AssertExpectations(t)
}

func TestGetScheduleHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		stored := handlerFixture(t)
		mockService.On("GetSchedule", mock.Anything, int64(42)).Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/schedules/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var respBody dto.RepaymentScheduleResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.Equal(t, "42", respBody.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		mockService.On("GetSchedule", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/schedules/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	})

	t.Run("non numeric id", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/schedules/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		mockService.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything)
	})
}

func TestValidatePaymentHandler(t *testing.T) {
	t.Run("valid payment", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		expected := schedule.Money(8884.88)
		mockService.On("ValidatePayment", mock.Anything, int64(42), 8884.88, 1).
			Return(schedule.PaymentValidation{
				IsValid:        true,
				Message:        "payment amount matches the scheduled installment",
				ExpectedAmount: &expected,
			}, nil).Once()

		body, _ := json.Marshal(dto.ValidatePaymentRequest{Amount: "8884.88", InstallmentNumber: 1})
		req := httptest.NewRequest(http.MethodPost, "/schedules/42/payments/validate", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var respBody dto.PaymentValidationResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.True(t, respBody.IsValid)
		require.NotNil(t, respBody.ExpectedAmount)
		assert.Equal(t, "8884.88", *respBody.ExpectedAmount)
		mockService.AssertExpectations(t)
	})

	t.Run("non numeric amount", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		req := httptest.NewRequest(http.MethodPost, "/schedules/42/payments/validate",
			bytes.NewReader([]byte(`{"amount":"abc","installmentNumber":1}`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		mockService.AssertNotCalled(t, "ValidatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("schedule not found", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		mockService.On("ValidatePayment", mock.Anything, int64(99), mock.Anything, 1).
			Return(schedule.PaymentValidation{}, apperrors.ErrNotFound).Once()

		body, _ := json.Marshal(dto.ValidatePaymentRequest{Amount: "100.00", InstallmentNumber: 1})
		req := httptest.NewRequest(http.MethodPost, "/schedules/99/payments/validate", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	})
}

func TestNextPaymentDueHandler(t *testing.T) {
	t.Run("next due", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		stored := handlerFixture(t)
		next := stored.Result.Schedule[2]
		mockService.On("NextPaymentDue", mock.Anything, int64(42), []int{1, 2}).Return(&next, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/schedules/42/next-due?paid=1,2", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var respBody dto.NextPaymentDueResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.False(t, respBody.AllPaid)
		require.NotNil(t, respBody.NextDue)
		assert.Equal(t, 3, respBody.NextDue.InstallmentNumber)
		mockService.AssertExpectations(t)
	})

	t.Run("all paid", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		mockService.On("NextPaymentDue", mock.Anything, int64(42), mock.Anything).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/schedules/42/next-due", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var respBody dto.NextPaymentDueResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.True(t, respBody.AllPaid)
		assert.Nil(t, respBody.NextDue)
	})

	t.Run("invalid paid list", func(t *testing.T) {
		mockService := new(MockScheduleService)
		router := setupScheduleRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/schedules/42/next-due?paid=1,x", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		mockService.AssertNotCalled(t, "NextPaymentDue", mock.Anything, mock.Anything, mock.Anything)
	})
}
