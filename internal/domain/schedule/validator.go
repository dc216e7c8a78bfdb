package schedule

import (
	"fmt"
	"math"
)

// paymentTolerance is one minor currency unit, absorbing rounding drift
// between the payer's amount and the scheduled installment.
const paymentTolerance = 0.01

// PaymentValidation is the outcome of checking a payment amount against
// the schedule. ExpectedAmount is set whenever the installment exists.
type PaymentValidation struct {
	IsValid        bool
	Message        string
	ExpectedAmount *Money
}

// ValidatePayment checks a payment amount against the expected total for
// the given installment. It is a pure predicate; the caller decides what
// to do with an over- or underpayment.
func ValidatePayment(amount Money, installmentNumber int, items []PaymentScheduleItem) PaymentValidation {
	var row *PaymentScheduleItem
	for i := range items {
		if items[i].InstallmentNumber == installmentNumber {
			row = &items[i]
			break
		}
	}
	if row == nil {
		return PaymentValidation{Message: fmt.Sprintf("invalid installment number %d", installmentNumber)}
	}

	expected := row.TotalAmount
	if math.Abs(amount-expected) <= paymentTolerance {
		return PaymentValidation{IsValid: true, Message: "payment amount matches the scheduled installment", ExpectedAmount: &expected}
	}

	direction := "under"
	if amount > expected {
		direction = "over"
	}
	return PaymentValidation{
		Message:        fmt.Sprintf("payment of %.2f is %s the expected installment amount %.2f", amount, direction, expected),
		ExpectedAmount: &expected,
	}
}

// NextPaymentDue returns the first schedule row whose installment number
// is not in the paid set, or nil when every installment is paid.
func NextPaymentDue(items []PaymentScheduleItem, paidInstallments []int) *PaymentScheduleItem {
	paid := make(map[int]struct{}, len(paidInstallments))
	for _, n := range paidInstallments {
		paid[n] = struct{}{}
	}
	for i := range items {
		if _, ok := paid[items[i].InstallmentNumber]; !ok {
			row := items[i]
			return &row
		}
	}
	return nil
}
