package constants

import "time"

// Product-policy thresholds for the analytics engine.
// These are tuned constants, not statistically derived values. Keeping them
// here means a policy change never touches scoring logic.

// ================== HEALTH SCORING ==================

// Each of the five sub-scores is normalized to 0-20; the composite is their sum.
const (
	HEALTH_SUBSCORE_MAX = 20
	HEALTH_SCORE_MAX    = 100

	// breadth: points per distinct feature ever used
	HEALTH_BREADTH_POINTS_PER_FEATURE = 2

	// depth: analyses weigh double journal entries
	HEALTH_DEPTH_ANALYSIS_POINTS = 2
	HEALTH_DEPTH_JOURNAL_POINTS  = 1

	// streak: points per consecutive active day
	HEALTH_STREAK_POINTS_PER_DAY = 2

	// social: team memberships weigh heavier than raw message volume
	HEALTH_SOCIAL_TEAM_POINTS        = 5
	HEALTH_SOCIAL_MESSAGES_PER_POINT = 5
)

// Recency decay steps: inactive up to N days -> score. Evaluated in order,
// must stay monotonically non-increasing.
const (
	HEALTH_RECENCY_FRESH_DAYS = 1
	HEALTH_RECENCY_DEAD_DAYS  = 30
)

// Composite risk buckets.
const (
	RISK_BUCKET_LOW_MIN    = 80
	RISK_BUCKET_MEDIUM_MIN = 60
	RISK_BUCKET_ATRISK_MIN = 40
)

// ================== SEGMENTATION ==================

const (
	SEGMENT_POWER_USER_MIN_FEATURES = 10
	SEGMENT_GROWING_MIN_FEATURES    = 3
	SEGMENT_AT_RISK_MIN_FEATURES    = 1

	// No activity inside this trailing window forces the dormant segment,
	// regardless of lifetime feature breadth.
	SEGMENT_ACTIVITY_WINDOW_DAYS = 30
)

// ================== COHORTS & FUNNEL ==================

const (
	COHORT_OBSERVATION_DAYS    = 30
	COHORT_DEFAULT_WEEKS       = 12
	FUNNEL_DEFAULT_WINDOW_DAYS = 30
	FUNNEL_ONBOARDING_WINDOW   = 24 * time.Hour

	// "engaged" shares the Segmenter's growing threshold; see segments package.
	FUNNEL_ENGAGED_MIN_FEATURES = SEGMENT_GROWING_MIN_FEATURES
)

// ================== CHURN RISK ==================

const (
	CHURN_PROMO_EXPIRY_DAYS    = 3
	CHURN_CRITICAL_USAGE_RATIO = 0.20
	CHURN_INACTIVITY_DAYS      = 14
	CHURN_UNDERUSE_USAGE_RATIO = 0.30
)

// ================== CONVERSION OPPORTUNITIES ==================

const (
	OPPORTUNITY_HIGH_MIN_FEATURES   = 5
	OPPORTUNITY_HIGH_MIN_OPENS      = 20
	OPPORTUNITY_MEDIUM_MIN_FEATURES = 3
	OPPORTUNITY_MEDIUM_MIN_OPENS    = 10
)

// ================== CLICK CLASSIFICATION ==================

const (
	// A click this soon after the send is assumed to be a link scanner.
	CLICK_BOT_FAST_CLICK_WINDOW = 5 * time.Second

	// Repeat clicks from one contact inside this window count as rapid fire.
	CLICK_BOT_DUPLICATE_WINDOW   = 10 * time.Second
	CLICK_BOT_DUPLICATE_MIN_HITS = 3
)

// Known scanner / crawler user-agent substrings (matched case-insensitively).
var BotUserAgentMarkers = []string{
	"bot",
	"crawler",
	"spider",
	"curl",
	"python-requests",
	"go-http-client",
	"headlesschrome",
	"phantomjs",
	"slackbot",
	"linkedinbot",
	"facebookexternalhit",
	"googleimageproxy",
	"barracuda",
	"proofpoint",
	"mimecast",
}

// ================== RECOMPUTE ==================

const (
	RECOMPUTE_DEFAULT_INTERVAL = 6 * time.Hour
	RECOMPUTE_DEFAULT_WORKERS  = 8
	RECOMPUTE_DEFAULT_DEADLINE = 5 * time.Minute
)
