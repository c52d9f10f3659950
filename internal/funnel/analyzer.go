package funnel

import (
	"math"
	"time"

	"pulse/internal/segments"
	"pulse/internal/shared/constants"
)

// Analyze aggregates signup journeys into a funnel snapshot. Every rate with
// a zero denominator reports 0, never NaN.
func Analyze(windowDays int, journeys []SignupJourney, now time.Time) FunnelSnapshot {
	snapshot := FunnelSnapshot{
		WindowDays: windowDays,
		ComputedAt: now,
		Signups:    len(journeys),
	}

	windowStart := now.AddDate(0, 0, -windowDays)
	for _, j := range journeys {
		if onboarded(j) {
			snapshot.Onboarded++
		}
		if j.TrialStartedAt != nil {
			snapshot.TrialStarted++
		}
		if segments.IsEngaged(j.DistinctFeatures) {
			snapshot.Engaged++
		}
		if convertedInWindow(j, windowStart, now) {
			snapshot.Converted++
		}
	}

	snapshot.OnboardingRate = pct(snapshot.Onboarded, snapshot.Signups)
	snapshot.TrialRate = pct(snapshot.TrialStarted, snapshot.Signups)
	snapshot.EngagementRate = pct(snapshot.Engaged, snapshot.Signups)
	snapshot.ConversionRate = pct(snapshot.Converted, snapshot.Signups)

	snapshot.DropOffs = []StepDropOff{
		{From: StepSignup, To: StepOnboarded, Rate: dropOff(snapshot.Signups, snapshot.Onboarded)},
		{From: StepOnboarded, To: StepTrialStarted, Rate: dropOff(snapshot.Onboarded, snapshot.TrialStarted)},
		{From: StepTrialStarted, To: StepEngaged, Rate: dropOff(snapshot.TrialStarted, snapshot.Engaged)},
		{From: StepEngaged, To: StepConverted, Rate: dropOff(snapshot.Engaged, snapshot.Converted)},
	}
	return snapshot
}

// onboarded means first feature engagement within 24h of signup.
func onboarded(j SignupJourney) bool {
	if j.FirstFeatureAt == nil {
		return false
	}
	delta := j.FirstFeatureAt.Sub(j.SignedUpAt)
	return delta >= 0 && delta <= constants.FUNNEL_ONBOARDING_WINDOW
}

func convertedInWindow(j SignupJourney, windowStart, now time.Time) bool {
	if j.ConvertedAt == nil {
		return false
	}
	return !j.ConvertedAt.Before(windowStart) && !j.ConvertedAt.After(now)
}

func pct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}

// dropOff is the step-relative loss from prev to cur. Negative when cur
// exceeds prev.
func dropOff(prev, cur int) int {
	if prev == 0 {
		return 0
	}
	return int(math.Round(float64(prev-cur) * 100 / float64(prev)))
}
