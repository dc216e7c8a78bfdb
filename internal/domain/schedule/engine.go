package schedule

import (
	"fmt"
	"math"

	"lending-engine/internal/pkg/apperrors"
)

// Calculate runs the full pipeline: normalize the tenure, generate due
// dates, build the repayment rows for the requested strategy and attach
// the cost-of-credit disclosures. It is a pure function of its input;
// identical terms produce identical output, and the result shares no
// memory with the terms. Safe for concurrent callers.
func Calculate(terms LoanTerms) (*RepaymentSchedule, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	tenureMonths, err := TenureInMonths(terms.TenureValue, terms.TenureUnit)
	if err != nil {
		return nil, err
	}
	tenureDays, err := TenureInDays(terms.TenureValue, terms.TenureUnit)
	if err != nil {
		return nil, err
	}

	var built builtSchedule
	switch terms.RepaymentType {
	case RepaymentEMI, RepaymentInterestOnly:
		perYear, err := PaymentsPerYear(terms.RepaymentFrequency)
		if err != nil {
			return nil, err
		}
		monthsPer, err := MonthsPerPayment(terms.RepaymentFrequency)
		if err != nil {
			return nil, err
		}
		totalPayments := int(math.Ceil(float64(tenureMonths) / monthsPer))
		periodicRate := terms.InterestRate / 100 / float64(perYear)

		dueDates, err := GenerateDueDates(terms.StartDate, terms.RepaymentFrequency, totalPayments)
		if err != nil {
			return nil, err
		}

		if terms.RepaymentType == RepaymentEMI {
			built = buildEMISchedule(terms, periodicRate, dueDates)
		} else {
			built = buildInterestOnlySchedule(terms, periodicRate, dueDates)
		}
	case RepaymentFullPayment:
		maturity, err := MaturityDate(terms.StartDate, terms.TenureValue, terms.TenureUnit)
		if err != nil {
			return nil, err
		}
		built = buildBulletSchedule(terms, tenureMonths, tenureDays, maturity)
	default:
		return nil, apperrors.NewValidationError("repaymentType", fmt.Sprintf("unrecognized repayment type %q", terms.RepaymentType))
	}

	totalAmount := roundTo(terms.Principal+built.TotalInterest, 2)
	totalCharges := roundTo(terms.ProcessingFee+terms.OtherCharges, 2)
	apr := AnnualPercentageRate(terms.Principal, built.TotalInterest, terms.ProcessingFee, terms.OtherCharges, tenureDays)
	numberOfPayments := len(built.Items)

	return &RepaymentSchedule{
		TotalAmount:           totalAmount,
		TotalInterest:         built.TotalInterest,
		EMIAmount:             built.EMIAmount,
		NumberOfPayments:      numberOfPayments,
		AnnualPercentageRate:  apr,
		EffectiveInterestRate: EffectiveAnnualRate(terms.InterestRate),
		TotalCostOfCredit:     roundTo(built.TotalInterest+totalCharges, 2),
		ProcessingFee:         terms.ProcessingFee,
		TotalCharges:          totalCharges,
		Schedule:              built.Items,
		AmortizationSummary:   NewAmortizationSummary(terms.Principal, built.TotalInterest, totalCharges, totalAmount, numberOfPayments),
		RBICompliance:         ComplianceVerdict(apr, terms.Principal),
	}, nil
}
