package health

import (
	"testing"

	"pulse/internal/segments"

	"github.com/stretchr/testify/assert"
)

func TestComputeScoreZeroEvents(t *testing.T) {
	in := ScoreInputs{DaysSinceActivity: segments.DaysSinceNever}

	breadth, depth, recency, streak, social, composite, bucket := ComputeScore(in)

	assert.Zero(t, breadth)
	assert.Zero(t, depth)
	assert.Zero(t, recency)
	assert.Zero(t, streak)
	assert.Zero(t, social)
	assert.Zero(t, composite)
	assert.Equal(t, BucketUnknown, bucket)
}

func TestCompositeIsExactSumOfSubScores(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInputs
	}{
		{"light user", ScoreInputs{DistinctFeatures: 2, AnalysesCount: 1, DaysSinceActivity: 5, StreakDays: 1}},
		{"heavy user", ScoreInputs{DistinctFeatures: 30, AnalysesCount: 50, JournalEntries: 40, DaysSinceActivity: 0, StreakDays: 60, TeamMemberships: 3, MessagesSent: 200}},
		{"social only", ScoreInputs{DaysSinceActivity: segments.DaysSinceNever, TeamMemberships: 2, MessagesSent: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breadth, depth, recency, streak, social, composite, _ := ComputeScore(tt.in)

			assert.Equal(t, breadth+depth+recency+streak+social, composite)
			assert.GreaterOrEqual(t, composite, 0)
			assert.LessOrEqual(t, composite, 100)
			for _, sub := range []int{breadth, depth, recency, streak, social} {
				assert.GreaterOrEqual(t, sub, 0)
				assert.LessOrEqual(t, sub, 20)
			}
		})
	}
}

func TestSubScoreSaturation(t *testing.T) {
	in := ScoreInputs{
		DistinctFeatures:  100,
		AnalysesCount:     500,
		JournalEntries:    500,
		DaysSinceActivity: 0,
		StreakDays:        365,
		TeamMemberships:   20,
		MessagesSent:      10000,
	}

	breadth, depth, recency, streak, social, composite, bucket := ComputeScore(in)

	assert.Equal(t, 20, breadth)
	assert.Equal(t, 20, depth)
	assert.Equal(t, 20, recency)
	assert.Equal(t, 20, streak)
	assert.Equal(t, 20, social)
	assert.Equal(t, 100, composite)
	assert.Equal(t, BucketLow, bucket)
}

func TestRecencyScoreIsMonotonicStep(t *testing.T) {
	assert.Equal(t, 20, recencyScore(0))
	assert.Equal(t, 20, recencyScore(1))
	assert.Equal(t, 17, recencyScore(2))
	assert.Equal(t, 14, recencyScore(7))
	assert.Equal(t, 10, recencyScore(14))
	assert.Equal(t, 6, recencyScore(21))
	assert.Equal(t, 3, recencyScore(29))
	assert.Equal(t, 0, recencyScore(30))
	assert.Equal(t, 0, recencyScore(400))
	assert.Equal(t, 0, recencyScore(segments.DaysSinceNever))

	prev := 20
	for days := 0; days <= 60; days++ {
		cur := recencyScore(days)
		assert.LessOrEqual(t, cur, prev, "recency must never increase with inactivity (day %d)", days)
		prev = cur
	}
}

func TestBucketBoundaries(t *testing.T) {
	assert.Equal(t, BucketLow, bucketFor(100))
	assert.Equal(t, BucketLow, bucketFor(80))
	assert.Equal(t, BucketMedium, bucketFor(79))
	assert.Equal(t, BucketMedium, bucketFor(60))
	assert.Equal(t, BucketAtRisk, bucketFor(59))
	assert.Equal(t, BucketAtRisk, bucketFor(40))
	assert.Equal(t, BucketHighRisk, bucketFor(39))
	assert.Equal(t, BucketHighRisk, bucketFor(0))
}

func TestDepthWeighting(t *testing.T) {
	// Analyses weigh double journal entries.
	_, depthAnalyses, _, _, _, _, _ := scoreWithDepth(5, 0)
	_, depthJournal, _, _, _, _, _ := scoreWithDepth(0, 5)

	assert.Equal(t, 10, depthAnalyses)
	assert.Equal(t, 5, depthJournal)
}

func scoreWithDepth(analyses, journal int) (int, int, int, int, int, int, RiskBucket) {
	return ComputeScore(ScoreInputs{
		AnalysesCount:     analyses,
		JournalEntries:    journal,
		DaysSinceActivity: segments.DaysSinceNever,
	})
}
