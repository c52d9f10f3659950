package segments

import (
	"time"

	"pulse/internal/shared/constants"
)

// DaysSinceNever marks a user with no recorded activity at all.
const DaysSinceNever = -1

// Classify buckets a user from lifetime feature breadth and activity recency.
// Recency overrides breadth: silence across the trailing window forces
// dormant no matter how many features the user has ever touched. Breadth
// alone never upgrades a dormant user.
func Classify(distinctFeatures, daysSinceActivity int) Segment {
	if distinctFeatures <= 0 {
		return SegmentDormant
	}
	if daysSinceActivity == DaysSinceNever || daysSinceActivity >= constants.SEGMENT_ACTIVITY_WINDOW_DAYS {
		return SegmentDormant
	}

	switch {
	case distinctFeatures >= constants.SEGMENT_POWER_USER_MIN_FEATURES:
		return SegmentPowerUser
	case distinctFeatures >= constants.SEGMENT_GROWING_MIN_FEATURES:
		return SegmentGrowing
	default:
		return SegmentAtRisk
	}
}

// IsEngaged reports whether a feature count clears the growing threshold.
// The cohort and funnel components share this definition of "engaged".
func IsEngaged(distinctFeatures int) bool {
	return distinctFeatures >= constants.SEGMENT_GROWING_MIN_FEATURES
}

// DaysSince converts a last-activity timestamp into whole days before now,
// returning DaysSinceNever for users with no activity on record.
func DaysSince(lastActivity *time.Time, now time.Time) int {
	if lastActivity == nil {
		return DaysSinceNever
	}
	days := int(now.Sub(*lastActivity).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}
