package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseForStreak_Boundaries(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, "Spark"},
		{1, "Spark"},
		{2, "Spark"},
		{3, "Flame"},
		{6, "Flame"},
		{7, "Blaze"},
		{13, "Blaze"},
		{14, "Inferno"},
		{29, "Inferno"},
		{30, "Blue Nova"},
		{365, "Blue Nova"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PhaseForStreak(tc.days).Name, "days=%d", tc.days)
	}
}

func TestPhaseForStreak_NegativeDays(t *testing.T) {
	assert.Equal(t, "Spark", PhaseForStreak(-5).Name)
}

func TestPhaseIndexForStreak(t *testing.T) {
	assert.Equal(t, 0, PhaseIndexForStreak(0))
	assert.Equal(t, 1, PhaseIndexForStreak(3))
	assert.Equal(t, 4, PhaseIndexForStreak(100))
}

func TestAllStreakPhases_Shape(t *testing.T) {
	// The bands must ascend in MinDays and intensity, and chain via
	// NextPhaseDays.
	for i := 1; i < len(AllStreakPhases); i++ {
		prev, cur := AllStreakPhases[i-1], AllStreakPhases[i]
		assert.Greater(t, cur.MinDays, prev.MinDays)
		assert.Greater(t, cur.Intensity, prev.Intensity)
		assert.Equal(t, cur.MinDays, prev.NextPhaseDays)
	}
	assert.Equal(t, 0, AllStreakPhases[len(AllStreakPhases)-1].NextPhaseDays)
}
