package segments

import (
	"time"

	"github.com/google/uuid"
)

// Segment is a coarse behavioral bucket used for targeting. It is derived,
// never stored: always recomputed from current feature breadth and recency.
type Segment string

const (
	SegmentPowerUser Segment = "power_user"
	SegmentGrowing   Segment = "growing"
	SegmentAtRisk    Segment = "at_risk"
	SegmentDormant   Segment = "dormant"
)

// SegmentResult is the API-facing record for a single user's segment,
// carrying the inputs the label was derived from.
type SegmentResult struct {
	UserID            uuid.UUID `json:"user_id"`
	Segment           Segment   `json:"segment"`
	DistinctFeatures  int       `json:"distinct_features"`
	DaysSinceActivity int       `json:"days_since_activity"` // -1 when never active
	WindowDays        int       `json:"window_days"`
	ComputedAt        time.Time `json:"computed_at"`
}
