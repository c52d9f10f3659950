package health

import (
	"pulse/internal/shared/constants"
)

// ComputeScore derives the five sub-scores and the composite from raw
// signals. Pure computation; persistence belongs to the caller. A user with
// no signals at all scores zero across the board and lands in the unknown
// bucket rather than erroring.
func ComputeScore(in ScoreInputs) (breadth, depth, recency, streak, social, composite int, bucket RiskBucket) {
	breadth = capSub(in.DistinctFeatures * constants.HEALTH_BREADTH_POINTS_PER_FEATURE)
	depth = capSub(in.AnalysesCount*constants.HEALTH_DEPTH_ANALYSIS_POINTS + in.JournalEntries*constants.HEALTH_DEPTH_JOURNAL_POINTS)
	recency = recencyScore(in.DaysSinceActivity)
	streak = capSub(in.StreakDays * constants.HEALTH_STREAK_POINTS_PER_DAY)
	social = capSub(in.TeamMemberships*constants.HEALTH_SOCIAL_TEAM_POINTS + in.MessagesSent/constants.HEALTH_SOCIAL_MESSAGES_PER_POINT)

	composite = breadth + depth + recency + streak + social
	if composite < 0 {
		composite = 0
	}
	if composite > constants.HEALTH_SCORE_MAX {
		composite = constants.HEALTH_SCORE_MAX
	}

	if !hasSignal(in) {
		bucket = BucketUnknown
		return
	}
	bucket = bucketFor(composite)
	return
}

// recencyScore is a monotonic step function of days since last activity,
// from full marks inside a day down to zero at 30+ days.
func recencyScore(days int) int {
	switch {
	case days < 0:
		return 0
	case days <= constants.HEALTH_RECENCY_FRESH_DAYS:
		return 20
	case days <= 3:
		return 17
	case days <= 7:
		return 14
	case days <= 14:
		return 10
	case days <= 21:
		return 6
	case days < constants.HEALTH_RECENCY_DEAD_DAYS:
		return 3
	default:
		return 0
	}
}

func bucketFor(composite int) RiskBucket {
	switch {
	case composite >= constants.RISK_BUCKET_LOW_MIN:
		return BucketLow
	case composite >= constants.RISK_BUCKET_MEDIUM_MIN:
		return BucketMedium
	case composite >= constants.RISK_BUCKET_ATRISK_MIN:
		return BucketAtRisk
	default:
		return BucketHighRisk
	}
}

// hasSignal reports whether any scoring input carries data. All-zero inputs
// mean we know nothing about the user, which is unknown, not high risk.
func hasSignal(in ScoreInputs) bool {
	return in.DistinctFeatures > 0 ||
		in.AnalysesCount > 0 ||
		in.JournalEntries > 0 ||
		in.DaysSinceActivity >= 0 ||
		in.StreakDays > 0 ||
		in.TeamMemberships > 0 ||
		in.MessagesSent > 0
}

func capSub(points int) int {
	if points < 0 {
		return 0
	}
	if points > constants.HEALTH_SUBSCORE_MAX {
		return constants.HEALTH_SUBSCORE_MAX
	}
	return points
}
