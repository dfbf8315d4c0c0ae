package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intermediateProfile is the neutral baseline: multiplier 1.0, BMI ~22.9
func intermediateProfile() UserProfile {
	return UserProfile{
		Name:   "Test User",
		Age:    30,
		Weight: 70,
		Height: 175,
		Gender: GenderMale,
		Level:  LevelIntermediate,
	}
}

func beginnerProfile() UserProfile {
	p := intermediateProfile()
	p.Level = LevelBeginner
	return p
}

func advancedProfile() UserProfile {
	p := intermediateProfile()
	p.Level = LevelAdvanced
	return p
}

func TestAdjustExerciseForUser_IntermediateUnchanged(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Squats", Sets: 3, Reps: "12"}
	adjusted := AdjustExerciseForUser(ex, intermediateProfile())
	assert.Equal(t, "12", adjusted.Reps)
	assert.Equal(t, 0, adjusted.Duration)
}

func TestAdjustExerciseForUser_BeginnerScalesDown(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Squats", Sets: 3, Reps: "12"}
	adjusted := AdjustExerciseForUser(ex, beginnerProfile())
	// 12 * 0.7 = 8.4, rounds to 8
	assert.Equal(t, "8", adjusted.Reps)
}

func TestAdjustExerciseForUser_AdvancedScalesUp(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Squats", Sets: 3, Reps: "12"}
	adjusted := AdjustExerciseForUser(ex, advancedProfile())
	// 12 * 1.3 = 15.6, rounds to 16
	assert.Equal(t, "16", adjusted.Reps)
}

func TestAdjustExerciseForUser_PreservesRepsSuffix(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Lunges", Sets: 3, Reps: "12 per leg"}
	adjusted := AdjustExerciseForUser(ex, beginnerProfile())
	assert.Equal(t, "8 per leg", adjusted.Reps)
}

func TestAdjustExerciseForUser_ScalesDuration(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Plank", Sets: 3, Reps: "30 sec", Duration: 30}
	adjusted := AdjustExerciseForUser(ex, beginnerProfile())
	// Both the duration and the leading integer of the reps string scale
	assert.Equal(t, 21, adjusted.Duration)
	assert.Equal(t, "21 sec", adjusted.Reps)

	adjusted = AdjustExerciseForUser(ex, advancedProfile())
	assert.Equal(t, 39, adjusted.Duration)
}

func TestAdjustExerciseForUser_RepsFloor(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Pull-ups", Sets: 3, Reps: "6"}
	adjusted := AdjustExerciseForUser(ex, beginnerProfile())
	// 6 * 0.7 = 4.2, clamped up to the floor of 5
	assert.Equal(t, "5", adjusted.Reps)
}

func TestAdjustExerciseForUser_DurationFloor(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Hold", Sets: 3, Reps: "12 sec", Duration: 12}
	adjusted := AdjustExerciseForUser(ex, beginnerProfile())
	// 12 * 0.7 = 8.4, clamped up to the floor of 10
	assert.Equal(t, 10, adjusted.Duration)
}

func TestAdjustExerciseForUser_NonNumericRepsUntouched(t *testing.T) {
	ex := Exercise{ID: "e", Name: "Stretch", Sets: 1, Reps: "to failure"}
	adjusted := AdjustExerciseForUser(ex, beginnerProfile())
	assert.Equal(t, "to failure", adjusted.Reps)
}

func TestAdjustExerciseForUser_UnderweightDampens(t *testing.T) {
	p := beginnerProfile()
	p.Weight = 50 // BMI ~16.3
	ex := Exercise{ID: "e", Name: "Squats", Sets: 3, Reps: "12"}
	adjusted := AdjustExerciseForUser(ex, p)
	// 12 * 0.7 * 0.8 = 6.72, rounds to 7
	assert.Equal(t, "7", adjusted.Reps)
}

func TestAdjustExerciseForUser_OverweightDampens(t *testing.T) {
	p := intermediateProfile()
	p.Weight = 95
	p.Height = 170 // BMI ~32.9
	ex := Exercise{ID: "e", Name: "Squats", Sets: 3, Reps: "12"}
	adjusted := AdjustExerciseForUser(ex, p)
	// 12 * 1.0 * 0.85 = 10.2, rounds to 10
	assert.Equal(t, "10", adjusted.Reps)
}

func TestAdjustExerciseForUser_ZeroHeightProfile(t *testing.T) {
	p := intermediateProfile()
	p.Height = 0
	ex := Exercise{ID: "e", Name: "Squats", Sets: 3, Reps: "12"}
	// Zero height must not blow up or zero out the exercise
	adjusted := AdjustExerciseForUser(ex, p)
	assert.Equal(t, "12", adjusted.Reps)
}

func TestPersonalizeRoutine(t *testing.T) {
	routine, ok := RoutineByID("beg-1")
	require.True(t, ok)

	personalized := PersonalizeRoutine(routine, beginnerProfile())
	require.Len(t, personalized.Exercises, len(routine.Exercises))
	assert.Equal(t, routine.ID, personalized.ID)
	assert.Equal(t, routine.XPReward, personalized.XPReward)

	// Jumping Jacks: 30 sec scaled to 21
	assert.Equal(t, 21, personalized.Exercises[0].Duration)
	// Squats: 12 reps scaled to 8
	assert.Equal(t, "8", personalized.Exercises[1].Reps)
	// The catalog routine itself must stay untouched
	assert.Equal(t, "12", routine.Exercises[1].Reps)
}

func TestRecommendedRoutines(t *testing.T) {
	ids := func(routines []Routine) []string {
		var result []string
		for _, r := range routines {
			result = append(result, r.ID)
		}
		return result
	}

	assert.Equal(t, []string{"beg-1", "int-1"}, ids(RecommendedRoutines(AllRoutines, beginnerProfile())))
	assert.Equal(t, []string{"int-1", "adv-1"}, ids(RecommendedRoutines(AllRoutines, intermediateProfile())))
	assert.Equal(t, []string{"adv-1"}, ids(RecommendedRoutines(AllRoutines, advancedProfile())))
}

func TestCalculateIntensity(t *testing.T) {
	// Workloads: 36, 60 and 135 respectively
	lowRep := Exercise{ID: "e", Sets: 3, Reps: "12"}
	midRep := Exercise{ID: "e", Sets: 3, Reps: "20"}
	longHold := Exercise{ID: "e", Sets: 3, Reps: "45 sec", Duration: 45}

	assert.Equal(t, IntensityLow, CalculateIntensity(lowRep, intermediateProfile()))
	assert.Equal(t, IntensityLow, CalculateIntensity(midRep, intermediateProfile()))
	assert.Equal(t, IntensityMedium, CalculateIntensity(longHold, intermediateProfile()))

	// Beginners get lower cutoffs
	assert.Equal(t, IntensityMedium, CalculateIntensity(midRep, beginnerProfile()))
	assert.Equal(t, IntensityHigh, CalculateIntensity(longHold, beginnerProfile()))
}
