package opportunities

import (
	"fmt"

	"pulse/internal/shared/constants"
)

// Grade maps a free user's usage onto an outreach priority. The reason names
// the thresholds that were met so the dashboard can show why a user
// qualified. Users clearing neither bar are excluded entirely, not graded
// "low".
func Grade(featuresUsed, totalOpens int) (Priority, string, bool) {
	switch {
	case featuresUsed >= constants.OPPORTUNITY_HIGH_MIN_FEATURES && totalOpens >= constants.OPPORTUNITY_HIGH_MIN_OPENS:
		reason := fmt.Sprintf("%d features used (>= %d) and %d opens (>= %d)",
			featuresUsed, constants.OPPORTUNITY_HIGH_MIN_FEATURES,
			totalOpens, constants.OPPORTUNITY_HIGH_MIN_OPENS)
		return PriorityHigh, reason, true

	case featuresUsed >= constants.OPPORTUNITY_MEDIUM_MIN_FEATURES && totalOpens >= constants.OPPORTUNITY_MEDIUM_MIN_OPENS:
		reason := fmt.Sprintf("%d features used (>= %d) and %d opens (>= %d)",
			featuresUsed, constants.OPPORTUNITY_MEDIUM_MIN_FEATURES,
			totalOpens, constants.OPPORTUNITY_MEDIUM_MIN_OPENS)
		return PriorityMedium, reason, true

	default:
		return "", "", false
	}
}
