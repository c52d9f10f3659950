package segments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		features int
		days     int
		want     Segment
	}{
		{"power user with recent activity", 12, 2, SegmentPowerUser},
		{"power user at threshold", 10, 0, SegmentPowerUser},
		{"growing at lower bound", 3, 5, SegmentGrowing},
		{"growing at upper bound", 9, 5, SegmentGrowing},
		{"at risk with one feature", 1, 1, SegmentAtRisk},
		{"at risk with two features", 2, 29, SegmentAtRisk},
		{"zero features is dormant", 0, 0, SegmentDormant},
		{"never active is dormant", 5, DaysSinceNever, SegmentDormant},
		{"inactive past window is dormant", 4, 30, SegmentDormant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.features, tt.days))
		})
	}
}

func TestClassifyRecencyOverridesBreadth(t *testing.T) {
	// 12 distinct features would be power_user, but a silent trailing
	// window forces dormant.
	got := Classify(12, 45)
	assert.Equal(t, SegmentDormant, got)
}

func TestIsEngaged(t *testing.T) {
	assert.False(t, IsEngaged(0))
	assert.False(t, IsEngaged(2))
	assert.True(t, IsEngaged(3))
	assert.True(t, IsEngaged(11))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, DaysSinceNever, DaysSince(nil, now))

	twoDaysAgo := now.Add(-49 * time.Hour)
	assert.Equal(t, 2, DaysSince(&twoDaysAgo, now))

	// Clock skew never yields negative days.
	future := now.Add(time.Hour)
	assert.Equal(t, 0, DaysSince(&future, now))
}
