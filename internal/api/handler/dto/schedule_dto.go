package dto

import (
	"fmt"
	"strconv"
	"time"

	"lending-engine/internal/domain/schedule"

	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

type CalculateScheduleRequest struct {
	Principal          float64 `json:"principal"`
	InterestRate       float64 `json:"interestRate"`
	InterestType       string  `json:"interestType"`
	TenureValue        int     `json:"tenureValue"`
	TenureUnit         string  `json:"tenureUnit"`
	RepaymentType      string  `json:"repaymentType"`
	RepaymentFrequency string  `json:"repaymentFrequency,omitempty"`
	StartDate          string  `json:"startDate"`
	GracePeriodDays    int     `json:"gracePeriodDays,omitempty"`
	PrepaymentPenalty  float64 `json:"prepaymentPenalty,omitempty"`
	LatePaymentPenalty float64 `json:"latePaymentPenalty,omitempty"`
	ProcessingFee      float64 `json:"processingFee,omitempty"`
	OtherCharges       float64 `json:"otherCharges,omitempty"`
}

// Validate covers only what must hold before the terms can be built at
// all; the engine re-validates the full business rules.
func (r *CalculateScheduleRequest) Validate() error {
	if r.Principal <= 0 {
		return fmt.Errorf("principal must be greater than zero")
	}
	if r.InterestRate < 0 {
		return fmt.Errorf("interestRate must not be negative")
	}
	if r.TenureValue <= 0 {
		return fmt.Errorf("tenureValue must be positive")
	}
	if _, err := time.Parse(dateLayout, r.StartDate); err != nil || r.StartDate == "" {
		return fmt.Errorf("invalid startDate format (use YYYY-MM-DD): %w", err)
	}
	return nil
}

// ToLoanTerms builds the engine input. Validate must have passed first;
// the start date parse error is intentionally ignored here.
func (r *CalculateScheduleRequest) ToLoanTerms() schedule.LoanTerms {
	startDate, _ := time.Parse(dateLayout, r.StartDate)
	return schedule.LoanTerms{
		Principal:          r.Principal,
		InterestRate:       r.InterestRate,
		InterestType:       schedule.InterestType(r.InterestType),
		TenureValue:        r.TenureValue,
		TenureUnit:         schedule.TenureUnit(r.TenureUnit),
		RepaymentType:      schedule.RepaymentType(r.RepaymentType),
		RepaymentFrequency: schedule.Frequency(r.RepaymentFrequency),
		StartDate:          startDate,
		GracePeriodDays:    r.GracePeriodDays,
		PrepaymentPenalty:  r.PrepaymentPenalty,
		LatePaymentPenalty: r.LatePaymentPenalty,
		ProcessingFee:      r.ProcessingFee,
		OtherCharges:       r.OtherCharges,
	}
}

type ValidatePaymentRequest struct {
	Amount            string `json:"amount"`
	InstallmentNumber int    `json:"installmentNumber"`
}

func (r *ValidatePaymentRequest) Validate() error {
	if _, err := decimal.NewFromString(r.Amount); err != nil || r.Amount == "" {
		return fmt.Errorf("invalid payment amount: %w", err)
	}
	if r.InstallmentNumber <= 0 {
		return fmt.Errorf("installmentNumber must be positive")
	}
	return nil
}

type ScheduleItemResponse struct {
	InstallmentNumber   int     `json:"installmentNumber"`
	DueDate             string  `json:"dueDate"`
	PrincipalAmount     string  `json:"principalAmount"`
	InterestAmount      string  `json:"interestAmount"`
	TotalAmount         string  `json:"totalAmount"`
	RemainingBalance    string  `json:"remainingBalance"`
	CumulativePrincipal string  `json:"cumulativePrincipal"`
	CumulativeInterest  string  `json:"cumulativeInterest"`
	PrincipalPercentage float64 `json:"principalPercentage"`
	InterestPercentage  float64 `json:"interestPercentage"`
	GracePeriodEndDate  *string `json:"gracePeriodEndDate,omitempty"`
	LatePaymentFee      string  `json:"latePaymentFee"`
	DaysBetweenPayments int     `json:"daysBetweenPayments"`
	EffectivePeriodRate float64 `json:"effectivePeriodRate"`
}

type AmortizationSummaryResponse struct {
	TotalPrincipal           string  `json:"totalPrincipal"`
	TotalInterest            string  `json:"totalInterest"`
	TotalCharges             string  `json:"totalCharges"`
	AveragePayment           string  `json:"averagePayment"`
	PrincipalToInterestRatio float64 `json:"principalToInterestRatio"`
}

type ComplianceResponse struct {
	IsCompliant        bool `json:"isCompliant"`
	FairPracticesCode  bool `json:"fairPracticesCode"`
	TransparentPricing bool `json:"transparentPricing"`
}

type RepaymentScheduleResponse struct {
	ID                    string                      `json:"id,omitempty"`
	TotalAmount           string                      `json:"totalAmount"`
	TotalInterest         string                      `json:"totalInterest"`
	EMIAmount             *string                     `json:"emiAmount,omitempty"`
	NumberOfPayments      int                         `json:"numberOfPayments"`
	AnnualPercentageRate  float64                     `json:"annualPercentageRate"`
	EffectiveInterestRate float64                     `json:"effectiveInterestRate"`
	TotalCostOfCredit     string                      `json:"totalCostOfCredit"`
	ProcessingFee         string                      `json:"processingFee"`
	TotalCharges          string                      `json:"totalCharges"`
	Schedule              []ScheduleItemResponse      `json:"schedule"`
	AmortizationSummary   AmortizationSummaryResponse `json:"amortizationSummary"`
	RBICompliance         ComplianceResponse          `json:"rbiCompliance"`
	CreatedAt             *time.Time                  `json:"createdAt,omitempty"`
}

type PaymentValidationResponse struct {
	IsValid        bool    `json:"isValid"`
	Message        string  `json:"message"`
	ExpectedAmount *string `json:"expectedAmount,omitempty"`
}

type NextPaymentDueResponse struct {
	AllPaid bool                  `json:"allPaid"`
	NextDue *ScheduleItemResponse `json:"nextDue,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func NewScheduleItemResponse(item *schedule.PaymentScheduleItem) ScheduleItemResponse {
	var graceEnd *string
	if item.GracePeriodEndDate != nil {
		s := item.GracePeriodEndDate.Format(dateLayout)
		graceEnd = &s
	}

	return ScheduleItemResponse{
		InstallmentNumber:   item.InstallmentNumber,
		DueDate:             item.DueDate.Format(dateLayout),
		PrincipalAmount:     formatMoney(item.PrincipalAmount),
		InterestAmount:      formatMoney(item.InterestAmount),
		TotalAmount:         formatMoney(item.TotalAmount),
		RemainingBalance:    formatMoney(item.RemainingBalance),
		CumulativePrincipal: formatMoney(item.CumulativePrincipal),
		CumulativeInterest:  formatMoney(item.CumulativeInterest),
		PrincipalPercentage: item.PrincipalPercentage,
		InterestPercentage:  item.InterestPercentage,
		GracePeriodEndDate:  graceEnd,
		LatePaymentFee:      formatMoney(item.LatePaymentFee),
		DaysBetweenPayments: item.DaysBetweenPayments,
		EffectivePeriodRate: item.EffectivePeriodRate,
	}
}

func NewRepaymentScheduleResponse(result *schedule.RepaymentSchedule) RepaymentScheduleResponse {
	var emi *string
	if result.EMIAmount != nil {
		s := formatMoney(*result.EMIAmount)
		emi = &s
	}

	items := make([]ScheduleItemResponse, len(result.Schedule))
	for i := range result.Schedule {
		items[i] = NewScheduleItemResponse(&result.Schedule[i])
	}

	return RepaymentScheduleResponse{
		TotalAmount:           formatMoney(result.TotalAmount),
		TotalInterest:         formatMoney(result.TotalInterest),
		EMIAmount:             emi,
		NumberOfPayments:      result.NumberOfPayments,
		AnnualPercentageRate:  result.AnnualPercentageRate,
		EffectiveInterestRate: result.EffectiveInterestRate,
		TotalCostOfCredit:     formatMoney(result.TotalCostOfCredit),
		ProcessingFee:         formatMoney(result.ProcessingFee),
		TotalCharges:          formatMoney(result.TotalCharges),
		Schedule:              items,
		AmortizationSummary: AmortizationSummaryResponse{
			TotalPrincipal:           formatMoney(result.AmortizationSummary.TotalPrincipal),
			TotalInterest:            formatMoney(result.AmortizationSummary.TotalInterest),
			TotalCharges:             formatMoney(result.AmortizationSummary.TotalCharges),
			AveragePayment:           formatMoney(result.AmortizationSummary.AveragePayment),
			PrincipalToInterestRatio: result.AmortizationSummary.PrincipalToInterestRatio,
		},
		RBICompliance: ComplianceResponse{
			IsCompliant:        result.RBICompliance.IsCompliant,
			FairPracticesCode:  result.RBICompliance.FairPracticesCode,
			TransparentPricing: result.RBICompliance.TransparentPricing,
		},
	}
}

func NewStoredScheduleResponse(stored *schedule.StoredSchedule) RepaymentScheduleResponse {
	resp := NewRepaymentScheduleResponse(&stored.Result)
	resp.ID = strconv.FormatInt(stored.ID, 10)
	createdAt := stored.CreatedAt
	resp.CreatedAt = &createdAt
	return resp
}

func NewPaymentValidationResponse(v schedule.PaymentValidation) PaymentValidationResponse {
	var expected *string
	if v.ExpectedAmount != nil {
		s := formatMoney(*v.ExpectedAmount)
		expected = &s
	}
	return PaymentValidationResponse{
		IsValid:        v.IsValid,
		Message:        v.Message,
		ExpectedAmount: expected,
	}
}

func NewNextPaymentDueResponse(next *schedule.PaymentScheduleItem) NextPaymentDueResponse {
	if next == nil {
		return NextPaymentDueResponse{AllPaid: true}
	}
	item := NewScheduleItemResponse(next)
	return NextPaymentDueResponse{NextDue: &item}
}
