package churn

import (
	"time"

	"github.com/google/uuid"

	"pulse/internal/eventstore"
)

// RiskLevel orders churn-risk severity. A user matching no rule is simply
// absent from the results; there is no "none" level.
type RiskLevel string

const (
	LevelCritical RiskLevel = "critical"
	LevelHigh     RiskLevel = "high"
	LevelMedium   RiskLevel = "medium"
)

// ChurnRiskFlag marks one paying or trialing user as at risk, with exactly
// one level and one human-readable reason per detection pass.
type ChurnRiskFlag struct {
	UserID     uuid.UUID       `json:"user_id"`
	Email      string          `json:"email"`
	Tier       eventstore.Tier `json:"tier"`
	Level      RiskLevel       `json:"level"`
	Reason     string          `json:"reason"`
	ComputedAt time.Time       `json:"computed_at"`
}

// RiskInputs are the signals one user is evaluated against.
type RiskInputs struct {
	Profile         eventstore.UserProfile
	ProFeaturesUsed int
	ProCatalogSize  int
}
