package schedule

import (
	"math"
	"time"
)

// firstRowDayGap is the placeholder day gap reported for the first
// installment, which has no prior due date to diff against.
const firstRowDayGap = 30

const daysPerYearSimple = 365

type builtSchedule struct {
	Items         []PaymentScheduleItem
	TotalInterest Money
	EMIAmount     *Money
}

// buildEMISchedule amortizes the principal over len(dueDates) level
// installments on a reducing balance. A zero periodic rate degenerates
// to equal-principal repayment with no interest.
func buildEMISchedule(terms LoanTerms, periodicRate float64, dueDates []time.Time) builtSchedule {
	n := len(dueDates)
	var emi Money
	if periodicRate == 0 {
		emi = roundTo(terms.Principal/float64(n), 2)
	} else {
		pow := math.Pow(1+periodicRate, float64(n))
		emi = roundTo(terms.Principal*periodicRate*pow/(pow-1), 2)
	}

	items := make([]PaymentScheduleItem, 0, n)
	balance := terms.Principal
	cumPrincipal, cumInterest := 0.0, 0.0

	for i := 0; i < n; i++ {
		interest := roundTo(balance*periodicRate, 2)
		principal := roundTo(emi-interest, 2)
		// The final installment clears whatever balance is left so the
		// schedule lands on exactly zero; no row may overshoot either.
		if i == n-1 || principal > balance {
			principal = roundTo(balance, 2)
		}
		balance = roundTo(balance-principal, 2)
		if balance < 0 {
			balance = 0
		}
		cumPrincipal = roundTo(cumPrincipal+principal, 2)
		cumInterest = roundTo(cumInterest+interest, 2)

		item := PaymentScheduleItem{
			InstallmentNumber:   i + 1,
			DueDate:             dueDates[i],
			PrincipalAmount:     principal,
			InterestAmount:      interest,
			TotalAmount:         roundTo(principal+interest, 2),
			RemainingBalance:    balance,
			CumulativePrincipal: cumPrincipal,
			CumulativeInterest:  cumInterest,
			DaysBetweenPayments: dayGap(dueDates, i),
			EffectivePeriodRate: periodicRate,
		}
		decorateItem(&item, terms)
		items = append(items, item)
	}

	return builtSchedule{Items: items, TotalInterest: cumInterest, EMIAmount: &emi}
}

// buildInterestOnlySchedule charges simple interest on the untouched
// principal every period; the final installment additionally repays the
// principal in full.
func buildInterestOnlySchedule(terms LoanTerms, periodicRate float64, dueDates []time.Time) builtSchedule {
	n := len(dueDates)
	interest := roundTo(terms.Principal*periodicRate, 2)

	items := make([]PaymentScheduleItem, 0, n)
	cumInterest := 0.0

	for i := 0; i < n; i++ {
		principal := Money(0)
		balance := terms.Principal
		if i == n-1 {
			principal = terms.Principal
			balance = 0
		}
		cumInterest = roundTo(cumInterest+interest, 2)

		item := PaymentScheduleItem{
			InstallmentNumber:   i + 1,
			DueDate:             dueDates[i],
			PrincipalAmount:     principal,
			InterestAmount:      interest,
			TotalAmount:         roundTo(principal+interest, 2),
			RemainingBalance:    balance,
			CumulativePrincipal: principal,
			CumulativeInterest:  cumInterest,
			DaysBetweenPayments: dayGap(dueDates, i),
			EffectivePeriodRate: periodicRate,
		}
		decorateItem(&item, terms)
		items = append(items, item)
	}

	return builtSchedule{Items: items, TotalInterest: cumInterest}
}

// buildBulletSchedule produces the single terminal row of a full-payment
// loan. Fixed interest is simple over the tenure day count; reducing
// interest compounds monthly over the tenure.
func buildBulletSchedule(terms LoanTerms, tenureMonths int, tenureDays float64, maturity time.Time) builtSchedule {
	annualRate := terms.InterestRate / 100
	var totalInterest Money
	if terms.InterestType == InterestFixed {
		totalInterest = roundTo(terms.Principal*annualRate*tenureDays/daysPerYearSimple, 2)
	} else {
		tenureYears := float64(tenureMonths) / monthsPerYear
		monthlyRate := annualRate / monthsPerYear
		totalInterest = roundTo(terms.Principal*(math.Pow(1+monthlyRate, monthsPerYear*tenureYears)-1), 2)
	}

	item := PaymentScheduleItem{
		InstallmentNumber:   1,
		DueDate:             maturity,
		PrincipalAmount:     terms.Principal,
		InterestAmount:      totalInterest,
		TotalAmount:         roundTo(terms.Principal+totalInterest, 2),
		RemainingBalance:    0,
		CumulativePrincipal: terms.Principal,
		CumulativeInterest:  totalInterest,
		DaysBetweenPayments: int(math.Round(tenureDays)),
		EffectivePeriodRate: totalInterest / terms.Principal,
	}
	decorateItem(&item, terms)

	return builtSchedule{Items: []PaymentScheduleItem{item}, TotalInterest: totalInterest}
}

func dayGap(dueDates []time.Time, i int) int {
	if i == 0 {
		return firstRowDayGap
	}
	return int(dueDates[i].Sub(dueDates[i-1]).Hours() / 24)
}

// decorateItem attaches the optional grace window, the late fee and the
// percentage split shared by every builder.
func decorateItem(item *PaymentScheduleItem, terms LoanTerms) {
	if terms.GracePeriodDays > 0 {
		graceEnd := item.DueDate.AddDate(0, 0, terms.GracePeriodDays)
		item.GracePeriodEndDate = &graceEnd
	}
	if terms.LatePaymentPenalty > 0 {
		item.LatePaymentFee = roundTo(item.TotalAmount*terms.LatePaymentPenalty/100, 2)
	}
	if item.TotalAmount > 0 {
		item.PrincipalPercentage = item.PrincipalAmount / item.TotalAmount * 100
		item.InterestPercentage = item.InterestAmount / item.TotalAmount * 100
	}
}
