package health

import (
	"time"

	"github.com/google/uuid"
)

// RiskBucket is derived directly from the composite score.
type RiskBucket string

const (
	BucketLow      RiskBucket = "low"
	BucketMedium   RiskBucket = "medium"
	BucketAtRisk   RiskBucket = "at_risk"
	BucketHighRisk RiskBucket = "high_risk"
	BucketUnknown  RiskBucket = "unknown"
)

// HealthScore is the composite engagement score for one user. The composite
// is always the exact sum of the five sub-scores, each normalized to 0-20.
type HealthScore struct {
	UserID     uuid.UUID  `json:"user_id"`
	Composite  int        `json:"composite"`
	Breadth    int        `json:"breadth"`
	Depth      int        `json:"depth"`
	Recency    int        `json:"recency"`
	Streak     int        `json:"streak"`
	Social     int        `json:"social"`
	RiskBucket RiskBucket `json:"risk_bucket"`
	ComputedAt time.Time  `json:"computed_at"`
}

// ScoreInputs are the raw signals the scorer consumes. Breadth and depth look
// at all-time data; recency and streak reflect the trailing window.
type ScoreInputs struct {
	DistinctFeatures  int
	AnalysesCount     int
	JournalEntries    int
	DaysSinceActivity int // negative means never active
	StreakDays        int
	TeamMemberships   int
	MessagesSent      int
}
