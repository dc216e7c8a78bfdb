package schedule

import (
	"fmt"
	"time"

	"lending-engine/internal/pkg/apperrors"
)

type Money = float64

type InterestType string

const (
	InterestFixed    InterestType = "fixed"
	InterestReducing InterestType = "reducing"
)

type TenureUnit string

const (
	TenureUnitMonths TenureUnit = "months"
	TenureUnitYears  TenureUnit = "years"
)

type RepaymentType string

const (
	RepaymentEMI          RepaymentType = "emi"
	RepaymentInterestOnly RepaymentType = "interest-only"
	RepaymentFullPayment  RepaymentType = "full-payment"
)

type Frequency string

const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiWeekly   Frequency = "bi_weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi_annual"
	FrequencyYearly     Frequency = "yearly"
)

// Banking-standard averages used for day-count conversion. These are
// deliberate approximations, not calendar-exact values, and the APR
// figures are only reproducible if they stay exactly as they are.
const (
	avgDaysPerMonth = 30.44
	avgDaysPerYear  = 365.25
)

const monthsPerYear = 12

// LoanTerms is the immutable input to a schedule calculation. Rates and
// penalties are annual percentages (12 means 12%), not fractions.
type LoanTerms struct {
	Principal          Money
	InterestRate       float64
	InterestType       InterestType
	TenureValue        int
	TenureUnit         TenureUnit
	RepaymentType      RepaymentType
	RepaymentFrequency Frequency
	StartDate          time.Time
	GracePeriodDays    int
	PrepaymentPenalty  float64
	LatePaymentPenalty float64
	ProcessingFee      Money
	OtherCharges       Money
}

// Validate rejects input the upstream form validation should never have
// let through. Structural checks tied to the repayment type (frequency
// presence, recognized enum values) happen here as well so the engine
// fails before any arithmetic runs.
func (t LoanTerms) Validate() error {
	if t.Principal <= 0 {
		return apperrors.NewValidationError("principal", "must be greater than zero")
	}
	if t.InterestRate < 0 {
		return apperrors.NewValidationError("interestRate", "must not be negative")
	}
	if t.TenureValue <= 0 {
		return apperrors.NewValidationError("tenureValue", "must be greater than zero")
	}
	if t.StartDate.IsZero() {
		return apperrors.NewValidationError("startDate", "must be a valid date")
	}
	if _, err := TenureInMonths(t.TenureValue, t.TenureUnit); err != nil {
		return err
	}
	switch t.InterestType {
	case InterestFixed, InterestReducing:
	default:
		return apperrors.NewValidationError("interestType", fmt.Sprintf("unrecognized interest type %q", t.InterestType))
	}
	switch t.RepaymentType {
	case RepaymentEMI, RepaymentInterestOnly:
		if t.RepaymentFrequency == "" {
			return apperrors.NewValidationError("repaymentFrequency", fmt.Sprintf("required for repayment type %q", t.RepaymentType))
		}
		if _, err := PaymentsPerYear(t.RepaymentFrequency); err != nil {
			return err
		}
	case RepaymentFullPayment:
	default:
		return apperrors.NewValidationError("repaymentType", fmt.Sprintf("unrecognized repayment type %q", t.RepaymentType))
	}
	return nil
}

// TenureInMonths normalizes a tenure to whole months.
func TenureInMonths(value int, unit TenureUnit) (int, error) {
	switch unit {
	case TenureUnitMonths:
		return value, nil
	case TenureUnitYears:
		return value * monthsPerYear, nil
	default:
		return 0, apperrors.NewValidationError("tenureUnit", fmt.Sprintf("unrecognized tenure unit %q", unit))
	}
}

// TenureInDays normalizes a tenure to days using the banking-standard
// averages above (30.44 days/month, 365.25 days/year).
func TenureInDays(value int, unit TenureUnit) (float64, error) {
	switch unit {
	case TenureUnitMonths:
		return float64(value) * avgDaysPerMonth, nil
	case TenureUnitYears:
		return float64(value) * avgDaysPerYear, nil
	default:
		return 0, apperrors.NewValidationError("tenureUnit", fmt.Sprintf("unrecognized tenure unit %q", unit))
	}
}

// PaymentsPerYear maps a repayment frequency to its annual payment count.
func PaymentsPerYear(f Frequency) (int, error) {
	switch f {
	case FrequencyWeekly:
		return 52, nil
	case FrequencyBiWeekly:
		return 26, nil
	case FrequencyMonthly:
		return 12, nil
	case FrequencyQuarterly:
		return 4, nil
	case FrequencySemiAnnual:
		return 2, nil
	case FrequencyYearly:
		return 1, nil
	default:
		return 0, apperrors.NewValidationError("repaymentFrequency", fmt.Sprintf("unrecognized repayment frequency %q", f))
	}
}

// MonthsPerPayment returns the period length in months for a frequency,
// e.g. 3 for quarterly and 12.0/52 for weekly.
func MonthsPerPayment(f Frequency) (float64, error) {
	perYear, err := PaymentsPerYear(f)
	if err != nil {
		return 0, err
	}
	return float64(monthsPerYear) / float64(perYear), nil
}
