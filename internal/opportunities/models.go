package opportunities

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the upgrade-outreach priority. Users below the medium
// thresholds are not opportunities and never appear in results.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// ConversionOpportunity is a free-tier user whose usage suggests latent
// demand for a paid plan.
type ConversionOpportunity struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	FeaturesUsed int       `json:"features_used"`
	TotalOpens   int       `json:"total_opens"`
	Priority     Priority  `json:"priority"`
	Reason       string    `json:"reason"`
	ComputedAt   time.Time `json:"computed_at"`
}
