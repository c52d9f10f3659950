package cohorts

import (
	"math"
	"time"

	"pulse/internal/shared/constants"
)

// retentionDays are the calendar days after signup the curve samples.
var retentionDays = [...]int{1, 7, 14, 30}

// BuildCohort aggregates one week's signups into a cohort record. A week with
// zero signups still produces a record with all counts and rates at zero so
// the time series stays contiguous for charting.
func BuildCohort(weekStart time.Time, signups []SignupActivity) Cohort {
	cohort := Cohort{WeekStart: weekStart, Signups: len(signups)}

	for _, member := range signups {
		days := activityDaySet(member.SignedUpAt, member.ActivityAt)
		if days[1] {
			cohort.D1++
		}
		if days[7] {
			cohort.D7++
		}
		if days[14] {
			cohort.D14++
		}
		if days[30] {
			cohort.D30++
		}
		if convertedInWindow(member) {
			cohort.Converted++
		}
	}

	cohort.D1Rate = pct(cohort.D1, cohort.Signups)
	cohort.D7Rate = pct(cohort.D7, cohort.Signups)
	cohort.D14Rate = pct(cohort.D14, cohort.Signups)
	cohort.D30Rate = pct(cohort.D30, cohort.Signups)
	cohort.ConversionRate = pct(cohort.Converted, cohort.Signups)
	return cohort
}

// activityDaySet marks which sampled days after signup saw activity.
// Day numbers are calendar-day differences in UTC, not 24h multiples.
func activityDaySet(signedUpAt time.Time, activity []time.Time) map[int]bool {
	signupDay := dateOf(signedUpAt)
	days := make(map[int]bool, len(retentionDays))
	for _, ts := range activity {
		diff := int(dateOf(ts).Sub(signupDay).Hours() / 24)
		for _, n := range retentionDays {
			if diff == n {
				days[n] = true
			}
		}
	}
	return days
}

func convertedInWindow(member SignupActivity) bool {
	if member.ConvertedAt == nil {
		return false
	}
	deadline := member.SignedUpAt.AddDate(0, 0, constants.COHORT_OBSERVATION_DAYS)
	return !member.ConvertedAt.Before(member.SignedUpAt) && member.ConvertedAt.Before(deadline)
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// pct rounds count/total to a whole percent, reporting 0 for an empty cohort.
func pct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}

// WeekStartOf returns the Monday (ISO week start) of t's week, at midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	day := dateOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
