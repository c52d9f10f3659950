package alerts

import (
	"encoding/json"
	"time"
)

// ChurnAlert is the message published when the detector flags a user as
// critical. Downstream consumers (retention outreach, CRM sync) act on it.
type ChurnAlert struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Tier       string    `json:"tier"`
	Level      string    `json:"level"`
	Reason     string    `json:"reason"`
	ComputedAt time.Time `json:"computed_at"`
}

// ToJSON serializes the alert for the wire
func (a *ChurnAlert) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// GetPartitionKey keys alerts by user so one user's alerts stay ordered
func (a *ChurnAlert) GetPartitionKey() string {
	return a.UserID
}

// RecomputeEvent announces a finished batch recompute pass.
type RecomputeEvent struct {
	UsersProcessed int       `json:"users_processed"`
	Failures       int       `json:"failures"`
	DurationMs     int64     `json:"duration_ms"`
	FinishedAt     time.Time `json:"finished_at"`
	Trigger        string    `json:"trigger"` // "scheduled" or "manual"
}

// ToJSON serializes the event for the wire
func (e *RecomputeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
