package cohorts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var weekStart = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC) // a Monday

func memberActiveOn(signup time.Time, days ...int) SignupActivity {
	activity := make([]time.Time, 0, len(days))
	for _, d := range days {
		activity = append(activity, signup.AddDate(0, 0, d).Add(10*time.Hour))
	}
	return SignupActivity{SignedUpAt: signup, ActivityAt: activity}
}

func TestBuildCohortEmptyWeek(t *testing.T) {
	cohort := BuildCohort(weekStart, nil)

	assert.Equal(t, weekStart, cohort.WeekStart)
	assert.Zero(t, cohort.Signups)
	assert.Zero(t, cohort.D1)
	assert.Zero(t, cohort.D1Rate)
	assert.Zero(t, cohort.D7Rate)
	assert.Zero(t, cohort.D14Rate)
	assert.Zero(t, cohort.D30Rate)
	assert.Zero(t, cohort.ConversionRate)
}

func TestBuildCohortRetentionScenario(t *testing.T) {
	// 100 signups: 40 active on day 1, 25 on day 7, 10 converted.
	signup := weekStart.Add(9 * time.Hour)
	members := make([]SignupActivity, 0, 100)
	for i := 0; i < 100; i++ {
		var m SignupActivity
		switch {
		case i < 25:
			m = memberActiveOn(signup, 1, 7)
		case i < 40:
			m = memberActiveOn(signup, 1)
		default:
			m = memberActiveOn(signup)
		}
		if i < 10 {
			converted := signup.AddDate(0, 0, 12)
			m.ConvertedAt = &converted
		}
		members = append(members, m)
	}

	cohort := BuildCohort(weekStart, members)

	assert.Equal(t, 100, cohort.Signups)
	assert.Equal(t, 40, cohort.D1)
	assert.Equal(t, 25, cohort.D7)
	assert.Equal(t, 10, cohort.Converted)
	assert.Equal(t, 40, cohort.D1Rate)
	assert.Equal(t, 25, cohort.D7Rate)
	assert.Equal(t, 10, cohort.ConversionRate)
}

func TestRetentionIsExactDayNotWithin(t *testing.T) {
	signup := weekStart.Add(8 * time.Hour)

	// Active on days 2 and 6 only: misses both the d1 and d7 samples.
	cohort := BuildCohort(weekStart, []SignupActivity{memberActiveOn(signup, 2, 6)})

	assert.Equal(t, 1, cohort.Signups)
	assert.Zero(t, cohort.D1)
	assert.Zero(t, cohort.D7)
}

func TestRetentionUsesCalendarDays(t *testing.T) {
	// Signup late in the evening; activity next morning is day 1 even
	// though fewer than 24 hours have passed.
	signup := weekStart.Add(23 * time.Hour)
	member := SignupActivity{
		SignedUpAt: signup,
		ActivityAt: []time.Time{signup.Add(8 * time.Hour)},
	}

	cohort := BuildCohort(weekStart, []SignupActivity{member})
	assert.Equal(t, 1, cohort.D1)
}

func TestConversionOutsideObservationWindowExcluded(t *testing.T) {
	signup := weekStart.Add(time.Hour)
	late := signup.AddDate(0, 0, 31)
	member := SignupActivity{SignedUpAt: signup, ConvertedAt: &late}

	cohort := BuildCohort(weekStart, []SignupActivity{member})
	assert.Zero(t, cohort.Converted)
}

func TestRatesStayWithinBounds(t *testing.T) {
	signup := weekStart.Add(time.Hour)
	members := []SignupActivity{
		memberActiveOn(signup, 1, 7, 14, 30),
		memberActiveOn(signup, 1),
		memberActiveOn(signup),
	}

	cohort := BuildCohort(weekStart, members)
	for _, rate := range []int{cohort.D1Rate, cohort.D7Rate, cohort.D14Rate, cohort.D30Rate, cohort.ConversionRate} {
		assert.GreaterOrEqual(t, rate, 0)
		assert.LessOrEqual(t, rate, 100)
	}
	assert.Equal(t, 67, cohort.D1Rate) // 2/3 rounded
}

func TestWeekStartOf(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2026, 2, 8, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, weekStart, WeekStartOf(sunday))

	monday := time.Date(2026, 2, 2, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, weekStart, WeekStartOf(monday))
}
