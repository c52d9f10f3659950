package funnel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

func journey(daysAgo int, mutate ...func(*SignupJourney)) SignupJourney {
	j := SignupJourney{SignedUpAt: now.AddDate(0, 0, -daysAgo)}
	for _, m := range mutate {
		m(&j)
	}
	return j
}

func withOnboarding(after time.Duration) func(*SignupJourney) {
	return func(j *SignupJourney) {
		ts := j.SignedUpAt.Add(after)
		j.FirstFeatureAt = &ts
	}
}

func withTrial() func(*SignupJourney) {
	return func(j *SignupJourney) {
		ts := j.SignedUpAt.Add(48 * time.Hour)
		j.TrialStartedAt = &ts
	}
}

func withFeatures(n int) func(*SignupJourney) {
	return func(j *SignupJourney) { j.DistinctFeatures = n }
}

func withConversion() func(*SignupJourney) {
	return func(j *SignupJourney) {
		ts := j.SignedUpAt.AddDate(0, 0, 5)
		j.ConvertedAt = &ts
	}
}

func TestAnalyzeEmptyWindow(t *testing.T) {
	snapshot := Analyze(30, nil, now)

	assert.Zero(t, snapshot.Signups)
	assert.Zero(t, snapshot.OnboardingRate)
	assert.Zero(t, snapshot.TrialRate)
	assert.Zero(t, snapshot.EngagementRate)
	assert.Zero(t, snapshot.ConversionRate)
	for _, d := range snapshot.DropOffs {
		assert.Zero(t, d.Rate)
	}
}

func TestAnalyzeFunnelScenario(t *testing.T) {
	// 500 signups: 300 onboarded, 200 trial, 150 engaged, 20 converted.
	journeys := make([]SignupJourney, 0, 500)
	for i := 0; i < 500; i++ {
		mutations := []func(*SignupJourney){}
		if i < 300 {
			mutations = append(mutations, withOnboarding(2*time.Hour))
		}
		if i < 200 {
			mutations = append(mutations, withTrial())
		}
		if i < 150 {
			mutations = append(mutations, withFeatures(4))
		}
		if i < 20 {
			mutations = append(mutations, withConversion())
		}
		journeys = append(journeys, journey(10, mutations...))
	}

	snapshot := Analyze(30, journeys, now)

	assert.Equal(t, 500, snapshot.Signups)
	assert.Equal(t, 300, snapshot.Onboarded)
	assert.Equal(t, 200, snapshot.TrialStarted)
	assert.Equal(t, 150, snapshot.Engaged)
	assert.Equal(t, 20, snapshot.Converted)

	assert.Equal(t, 60, snapshot.OnboardingRate)
	assert.Equal(t, 40, snapshot.TrialRate)
	assert.Equal(t, 30, snapshot.EngagementRate)
	assert.Equal(t, 4, snapshot.ConversionRate)

	// Trial -> Engaged drop-off is previous-step-relative: (200-150)/200.
	assert.Equal(t, StepTrialStarted, snapshot.DropOffs[2].From)
	assert.Equal(t, StepEngaged, snapshot.DropOffs[2].To)
	assert.Equal(t, 25, snapshot.DropOffs[2].Rate)
}

func TestLaterStepMayExceedEarlierStep(t *testing.T) {
	// Converted without ever matching the engaged rule: the funnel reports
	// the inversion as a negative drop-off instead of clamping.
	journeys := []SignupJourney{
		journey(5, withConversion()),
		journey(5, withConversion()),
		journey(5, withFeatures(3)),
	}

	snapshot := Analyze(30, journeys, now)

	assert.Equal(t, 1, snapshot.Engaged)
	assert.Equal(t, 2, snapshot.Converted)
	assert.Equal(t, -100, snapshot.DropOffs[3].Rate)
}

func TestOnboardingRequiresFirstDayEngagement(t *testing.T) {
	journeys := []SignupJourney{
		journey(5, withOnboarding(23*time.Hour)),
		journey(5, withOnboarding(25*time.Hour)),
		journey(5),
	}

	snapshot := Analyze(30, journeys, now)
	assert.Equal(t, 1, snapshot.Onboarded)
}

func TestConversionOutsideWindowExcluded(t *testing.T) {
	j := journey(5)
	stale := now.AddDate(0, 0, -40)
	j.ConvertedAt = &stale

	snapshot := Analyze(30, []SignupJourney{j}, now)
	assert.Zero(t, snapshot.Converted)
}
