package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes all cache keys and TTL values for the Pulse analytics backend.
// Pattern: pulse:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_SHORT   = 6 * time.Hour
	TTL_SEMI_STATIC    = 1 * time.Hour
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "pulse"
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_DASHBOARD       = CACHE_PREFIX + ":analytics:dashboard:admin"
	CACHE_KEY_HEALTH_SCORE    = CACHE_PREFIX + ":analytics:health:uuid:"         // + user-id
	CACHE_KEY_SEGMENT         = CACHE_PREFIX + ":analytics:segment:uuid:"        // + user-id
	CACHE_KEY_COHORTS         = CACHE_PREFIX + ":analytics:cohorts:weeks:"       // + week-count
	CACHE_KEY_FUNNEL          = CACHE_PREFIX + ":analytics:funnel:window:"       // + window-days
	CACHE_KEY_CHURN_RISKS     = CACHE_PREFIX + ":analytics:churn:tier:"          // + tier filter
	CACHE_KEY_OPPORTUNITIES   = CACHE_PREFIX + ":analytics:opportunities:all"
	CACHE_KEY_CAMPAIGN_CLICKS = CACHE_PREFIX + ":analytics:campaign:clicks:uuid:" // + campaign-id
)

const (
	TTL_DASHBOARD       = TTL_SEMI_STATIC
	TTL_HEALTH_SCORE    = TTL_DYNAMIC_MEDIUM
	TTL_SEGMENT         = TTL_DYNAMIC_MEDIUM
	TTL_COHORTS         = TTL_SEMI_STATIC
	TTL_FUNNEL          = TTL_DYNAMIC_MEDIUM
	TTL_CHURN_RISKS     = TTL_DYNAMIC_MEDIUM
	TTL_OPPORTUNITIES   = TTL_DYNAMIC_MEDIUM
	TTL_CAMPAIGN_CLICKS = TTL_DYNAMIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_ANALYTICS = CACHE_PREFIX + ":analytics:*"
)

// Aggregate caches dropped after a recompute pass so the next read rebuilds
// them from fresh per-user state. Per-user keys are refreshed in place by
// the pass itself and stay put.
var AggregateInvalidationPatterns = []string{
	CACHE_KEY_DASHBOARD,
	CACHE_KEY_COHORTS + "*",
	CACHE_KEY_FUNNEL + "*",
	CACHE_KEY_CHURN_RISKS + "*",
	CACHE_KEY_OPPORTUNITIES,
}

// ================== HELPER FUNCTIONS ==================

func BuildHealthScoreKey(userID string) string {
	return CACHE_KEY_HEALTH_SCORE + userID
}

func BuildSegmentKey(userID string) string {
	return CACHE_KEY_SEGMENT + userID
}

func BuildCohortsKey(weeks int) string {
	return CACHE_KEY_COHORTS + fmt.Sprintf("%d", weeks)
}

func BuildFunnelKey(windowDays int) string {
	return CACHE_KEY_FUNNEL + fmt.Sprintf("%d", windowDays)
}

func BuildChurnRisksKey(tier string) string {
	if tier == "" {
		tier = "all"
	}
	return CACHE_KEY_CHURN_RISKS + tier
}

func BuildCampaignClicksKey(campaignID string) string {
	return CACHE_KEY_CAMPAIGN_CLICKS + campaignID
}
