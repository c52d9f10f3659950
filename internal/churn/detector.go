package churn

import (
	"fmt"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/segments"
	"pulse/internal/shared/constants"
)

// Evaluate runs the risk rules against one user. First matching rule wins, so
// a pass produces at most one flag per user even when several rules would
// apply. The boolean is false for users matching no rule.
func Evaluate(in RiskInputs, now time.Time) (ChurnRiskFlag, bool) {
	ratio, hasRatio := usageRatio(in)
	expiryDays, hasExpiryPressure := promoExpiryPressure(in.Profile, now)
	inactiveDays := segments.DaysSince(in.Profile.LastActivityAt, now)

	var level RiskLevel
	var reason string
	switch {
	case hasExpiryPressure && hasRatio && ratio < constants.CHURN_CRITICAL_USAGE_RATIO:
		level = LevelCritical
		reason = fmt.Sprintf("promo expires in %d days with only %d%% of pro features used", expiryDays, ratioPct(ratio))

	case inactiveDays == segments.DaysSinceNever || inactiveDays >= constants.CHURN_INACTIVITY_DAYS:
		level = LevelHigh
		if inactiveDays == segments.DaysSinceNever {
			reason = fmt.Sprintf("no recorded activity on the %s tier", in.Profile.Tier)
		} else {
			reason = fmt.Sprintf("inactive for %d days on the %s tier", inactiveDays, in.Profile.Tier)
		}

	case hasRatio && ratio < constants.CHURN_UNDERUSE_USAGE_RATIO && !hasExpiryPressure:
		level = LevelMedium
		reason = fmt.Sprintf("using only %d%% of pro features", ratioPct(ratio))

	default:
		return ChurnRiskFlag{}, false
	}

	return ChurnRiskFlag{
		UserID:     in.Profile.ID,
		Email:      in.Profile.Email,
		Tier:       in.Profile.Tier,
		Level:      level,
		Reason:     reason,
		ComputedAt: now,
	}, true
}

// usageRatio is pro features used over the pro catalog size. An empty catalog
// gives no usage signal, so ratio-based rules cannot fire.
func usageRatio(in RiskInputs) (float64, bool) {
	if in.ProCatalogSize <= 0 {
		return 0, false
	}
	return float64(in.ProFeaturesUsed) / float64(in.ProCatalogSize), true
}

// promoExpiryPressure reports whether the promo expires inside the pressure
// window, and in how many whole days.
func promoExpiryPressure(profile eventstore.UserProfile, now time.Time) (int, bool) {
	if profile.PromoExpiresAt == nil {
		return 0, false
	}
	until := profile.PromoExpiresAt.Sub(now)
	if until < 0 || until > time.Duration(constants.CHURN_PROMO_EXPIRY_DAYS)*24*time.Hour {
		return 0, false
	}
	return int(until.Hours() / 24), true
}

func ratioPct(ratio float64) int {
	return int(ratio * 100)
}
