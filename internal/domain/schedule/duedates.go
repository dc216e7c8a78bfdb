package schedule

import (
	"fmt"
	"time"

	"lending-engine/internal/pkg/apperrors"
)

// GenerateDueDates returns the ordered due dates for count payments at
// the given frequency. The i-th date is startDate plus i whole periods,
// computed in one AddDate call rather than by repeated increments, so
// month-end rollover follows standard calendar addition (Jan 31 plus one
// month lands on Mar 2 or Mar 3 depending on the year). The start date
// itself is never a due date; the first entry is one full period later.
func GenerateDueDates(startDate time.Time, f Frequency, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: payment count must be positive, got %d", apperrors.ErrInvalidArgument, count)
	}

	dates := make([]time.Time, 0, count)
	for i := 1; i <= count; i++ {
		switch f {
		case FrequencyWeekly:
			dates = append(dates, startDate.AddDate(0, 0, 7*i))
		case FrequencyBiWeekly:
			dates = append(dates, startDate.AddDate(0, 0, 14*i))
		case FrequencyMonthly:
			dates = append(dates, startDate.AddDate(0, i, 0))
		case FrequencyQuarterly:
			dates = append(dates, startDate.AddDate(0, 3*i, 0))
		case FrequencySemiAnnual:
			dates = append(dates, startDate.AddDate(0, 6*i, 0))
		case FrequencyYearly:
			dates = append(dates, startDate.AddDate(i, 0, 0))
		default:
			return nil, apperrors.NewValidationError("repaymentFrequency", fmt.Sprintf("unrecognized repayment frequency %q", f))
		}
	}
	return dates, nil
}

// MaturityDate returns startDate plus the full tenure using the same
// calendar month/year addition semantics as GenerateDueDates.
func MaturityDate(startDate time.Time, tenureValue int, unit TenureUnit) (time.Time, error) {
	switch unit {
	case TenureUnitMonths:
		return startDate.AddDate(0, tenureValue, 0), nil
	case TenureUnitYears:
		return startDate.AddDate(tenureValue, 0, 0), nil
	default:
		return time.Time{}, apperrors.NewValidationError("tenureUnit", fmt.Sprintf("unrecognized tenure unit %q", unit))
	}
}
