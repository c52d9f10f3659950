package recompute

import (
	"time"
)

// Pass triggers.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// PassSummary describes one finished recompute pass.
type PassSummary struct {
	Trigger        string        `json:"trigger"`
	UsersProcessed int           `json:"users_processed"`
	Failures       int           `json:"failures"`
	Duration       time.Duration `json:"duration"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     time.Time     `json:"finished_at"`
}
