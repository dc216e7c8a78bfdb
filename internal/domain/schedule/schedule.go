package schedule

import (
	"math"
	"time"
)

// PaymentScheduleItem is one row of the amortization table. The full row
// sequence is produced once per calculation and never mutated afterwards;
// payment tracking re-derives outstanding state from payment records.
type PaymentScheduleItem struct {
	InstallmentNumber   int
	DueDate             time.Time
	PrincipalAmount     Money
	InterestAmount      Money
	TotalAmount         Money
	RemainingBalance    Money
	CumulativePrincipal Money
	CumulativeInterest  Money
	PrincipalPercentage float64
	InterestPercentage  float64
	GracePeriodEndDate  *time.Time
	LatePaymentFee      Money
	DaysBetweenPayments int
	EffectivePeriodRate float64
}

type AmortizationSummary struct {
	TotalPrincipal           Money
	TotalInterest            Money
	TotalCharges             Money
	AveragePayment           Money
	PrincipalToInterestRatio float64
}

// RBICompliance is the regulatory verdict attached to every schedule.
// FairPracticesCode and TransparentPricing are static policy flags, not
// the outcome of a legal review.
type RBICompliance struct {
	IsCompliant        bool
	FairPracticesCode  bool
	TransparentPricing bool
}

// RepaymentSchedule is the aggregate calculation output, owned entirely
// by the caller with no aliasing back to the input terms. EMIAmount is
// meaningful only when the repayment type is EMI and is nil otherwise.
type RepaymentSchedule struct {
	TotalAmount           Money
	TotalInterest         Money
	EMIAmount             *Money
	NumberOfPayments      int
	AnnualPercentageRate  float64
	EffectiveInterestRate float64
	TotalCostOfCredit     Money
	ProcessingFee         Money
	TotalCharges          Money
	Schedule              []PaymentScheduleItem
	AmortizationSummary   AmortizationSummary
	RBICompliance         RBICompliance
}

func roundTo(n float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(n*pow) / pow
}
