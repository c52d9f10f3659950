package opportunities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeHighPriority(t *testing.T) {
	priority, reason, qualifies := Grade(6, 22)

	require.True(t, qualifies)
	assert.Equal(t, PriorityHigh, priority)
	assert.Contains(t, reason, "6 features used (>= 5)")
	assert.Contains(t, reason, "22 opens (>= 20)")
}

func TestGradeMediumPriority(t *testing.T) {
	priority, reason, qualifies := Grade(3, 12)

	require.True(t, qualifies)
	assert.Equal(t, PriorityMedium, priority)
	assert.Contains(t, reason, "3 features used (>= 3)")
}

func TestGradeBelowThresholdsExcluded(t *testing.T) {
	_, _, qualifies := Grade(2, 5)
	assert.False(t, qualifies)
}

func TestGradeBothThresholdsRequired(t *testing.T) {
	// Heavy opens without breadth, or breadth without opens, is not a
	// high-priority signal.
	priority, _, qualifies := Grade(6, 12)
	require.True(t, qualifies)
	assert.Equal(t, PriorityMedium, priority)

	_, _, qualifies = Grade(2, 100)
	assert.False(t, qualifies)
}

func TestGradeBoundaryValues(t *testing.T) {
	priority, _, qualifies := Grade(5, 20)
	require.True(t, qualifies)
	assert.Equal(t, PriorityHigh, priority)

	priority, _, qualifies = Grade(3, 10)
	require.True(t, qualifies)
	assert.Equal(t, PriorityMedium, priority)

	_, _, qualifies = Grade(2, 10)
	assert.False(t, qualifies)
}
