package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-engine/internal/pkg/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateDueDates(t *testing.T) {
	start := date(2025, time.January, 15)

	tests := []struct {
		name      string
		frequency Frequency
		count     int
		expected  []time.Time
	}{
		{
			name:      "monthly",
			frequency: FrequencyMonthly,
			count:     3,
			expected:  []time.Time{date(2025, time.February, 15), date(2025, time.March, 15), date(2025, time.April, 15)},
		},
		{
			name:      "weekly",
			frequency: FrequencyWeekly,
			count:     2,
			expected:  []time.Time{date(2025, time.January, 22), date(2025, time.January, 29)},
		},
		{
			name:      "bi-weekly",
			frequency: FrequencyBiWeekly,
			count:     2,
			expected:  []time.Time{date(2025, time.January, 29), date(2025, time.February, 12)},
		},
		{
			name:      "quarterly",
			frequency: FrequencyQuarterly,
			count:     2,
			expected:  []time.Time{date(2025, time.April, 15), date(2025, time.July, 15)},
		},
		{
			name:      "semi-annual",
			frequency: FrequencySemiAnnual,
			count:     2,
			expected:  []time.Time{date(2025, time.July, 15), date(2026, time.January, 15)},
		},
		{
			name:      "yearly",
			frequency: FrequencyYearly,
			count:     2,
			expected:  []time.Time{date(2026, time.January, 15), date(2027, time.January, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := GenerateDueDates(start, tt.frequency, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dates)
		})
	}
}

func TestGenerateDueDatesMonthEndRollover(t *testing.T) {
	// Jan 31 plus one calendar month normalizes past the end of February.
	dates, err := GenerateDueDates(date(2025, time.January, 31), FrequencyMonthly, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 3), dates[0])
	assert.Equal(t, date(2025, time.March, 31), dates[1])

	// Leap year February absorbs one more day.
	dates, err = GenerateDueDates(date(2024, time.January, 31), FrequencyMonthly, 1)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 2), dates[0])
}

func TestGenerateDueDatesIndependentOffsets(t *testing.T) {
	// Each date is start plus i whole periods, not the previous date plus
	// one period, so rollover never compounds across the schedule.
	dates, err := GenerateDueDates(date(2025, time.January, 31), FrequencyMonthly, 4)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.May, 1), dates[2])
	assert.Equal(t, date(2025, time.May, 31), dates[3])
}

func TestGenerateDueDatesErrors(t *testing.T) {
	_, err := GenerateDueDates(date(2025, time.January, 1), FrequencyMonthly, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = GenerateDueDates(date(2025, time.January, 1), "daily", 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMaturityDate(t *testing.T) {
	maturity, err := MaturityDate(date(2025, time.January, 15), 18, TenureUnitMonths)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.July, 15), maturity)

	maturity, err = MaturityDate(date(2025, time.January, 15), 2, TenureUnitYears)
	require.NoError(t, err)
	assert.Equal(t, date(2027, time.January, 15), maturity)

	_, err = MaturityDate(date(2025, time.January, 15), 1, "weeks")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
