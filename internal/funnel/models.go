package funnel

import (
	"time"
)

// Funnel step names, in order.
const (
	StepSignup       = "signup"
	StepOnboarded    = "onboarded"
	StepTrialStarted = "trial_started"
	StepEngaged      = "engaged"
	StepConverted    = "converted"
)

// StepDropOff is the previous-step-relative loss between two adjacent
// milestones. Negative rates are legal: a later step can outgrow an earlier
// one (a user may convert without ever matching the engaged rule) and the
// snapshot reports that honestly instead of clamping.
type StepDropOff struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rate int    `json:"rate"`
}

// FunnelSnapshot is the milestone funnel over one rolling signup window.
// The named rates are signup-relative; DropOffs carry the step-relative view
// so callers never have to recompute either.
type FunnelSnapshot struct {
	WindowDays int       `json:"window_days"`
	ComputedAt time.Time `json:"computed_at"`

	Signups      int `json:"signups"`
	Onboarded    int `json:"onboarded"`
	TrialStarted int `json:"trial_started"`
	Engaged      int `json:"engaged"`
	Converted    int `json:"converted"`

	OnboardingRate int `json:"onboarding_rate"`
	TrialRate      int `json:"trial_rate"`
	EngagementRate int `json:"engagement_rate"`
	ConversionRate int `json:"conversion_rate"`

	DropOffs []StepDropOff `json:"drop_offs"`
}

// SignupJourney is one user's milestone progress inside the window.
type SignupJourney struct {
	SignedUpAt       time.Time
	FirstFeatureAt   *time.Time
	TrialStartedAt   *time.Time
	DistinctFeatures int
	ConvertedAt      *time.Time
}
