package schedule

import "math"

// Regulatory caps applied by the compliance verdict.
const (
	maxCompliantAPR       = 50.0
	maxCompliantPrincipal = 1_000_000.0
)

// AnnualPercentageRate annualizes the total cost of credit over the
// tenure day count as a simple-interest-equivalent percentage. Payment
// timing inside the tenure is deliberately ignored beyond the day-count
// factor.
func AnnualPercentageRate(principal, totalInterest, processingFee, otherCharges Money, tenureDays float64) float64 {
	totalCost := totalInterest + processingFee + otherCharges
	return roundTo(totalCost/principal/tenureDays*daysPerYearSimple*100, 2)
}

// EffectiveAnnualRate converts the nominal annual rate (a percentage) to
// its monthly-compounded effective equivalent. The 12-period compounding
// assumption is fixed regardless of the actual repayment frequency; it
// diverges from the APR's day-count annualization on purpose, matching
// the published disclosure formulas.
func EffectiveAnnualRate(annualRatePercent float64) float64 {
	return roundTo((math.Pow(1+annualRatePercent/100/monthsPerYear, monthsPerYear)-1)*100, 2)
}

// ComplianceVerdict applies the APR and principal caps. The fair
// practices and transparent pricing flags are static policy assertions.
func ComplianceVerdict(apr float64, principal Money) RBICompliance {
	return RBICompliance{
		IsCompliant:        apr <= maxCompliantAPR && principal <= maxCompliantPrincipal,
		FairPracticesCode:  true,
		TransparentPricing: true,
	}
}

// NewAmortizationSummary aggregates schedule totals. A zero-interest loan
// has no meaningful principal:interest ratio; the principal itself is
// reported in that case to keep the field division-safe.
func NewAmortizationSummary(principal, totalInterest, totalCharges, totalAmount Money, numberOfPayments int) AmortizationSummary {
	ratio := principal
	if totalInterest != 0 {
		ratio = principal / totalInterest
	}
	return AmortizationSummary{
		TotalPrincipal:           principal,
		TotalInterest:            totalInterest,
		TotalCharges:             totalCharges,
		AveragePayment:           roundTo(totalAmount/float64(numberOfPayments), 2),
		PrincipalToInterestRatio: ratio,
	}
}
