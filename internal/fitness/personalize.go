package fitness

import (
	"math"
	"regexp"
	"strconv"
)

// Personalization multipliers and clamps
const (
	beginnerMultiplier     = 0.7
	intermediateMultiplier = 1.0
	advancedMultiplier     = 1.3

	underweightBMI        = 18.5
	overweightBMI         = 30.0
	underweightMultiplier = 0.8
	overweightMultiplier  = 0.85

	minAdjustedReps            = 5
	minAdjustedDurationSeconds = 10
)

var leadingIntPattern = regexp.MustCompile(`^(\d+)`)

// PersonalizedExercise is a per-session derived copy of a catalog Exercise
// with scaled reps/duration. It is never persisted.
type PersonalizedExercise struct {
	Exercise
}

// PersonalizedRoutine is a routine whose exercises have been adjusted for a
// specific user. Like its exercises it lives only for the session.
type PersonalizedRoutine struct {
	Routine
	Exercises []PersonalizedExercise
}

// intensityMultiplier derives the scaling factor from the user's level and
// BMI. Low BMI and high BMI both scale intensity down.
func intensityMultiplier(profile UserProfile) float64 {
	multiplier := intermediateMultiplier
	switch profile.Level {
	case LevelBeginner:
		multiplier = beginnerMultiplier
	case LevelAdvanced:
		multiplier = advancedMultiplier
	}

	bmi := profile.BMI()
	if bmi > 0 && bmi < underweightBMI {
		multiplier *= underweightMultiplier
	} else if bmi > overweightBMI {
		multiplier *= overweightMultiplier
	}
	return multiplier
}

// AdjustExerciseForUser scales an exercise's reps and duration to the
// user's level and BMI. Pure and total: it never fails, and the clamps keep
// the output sane even for extreme profiles.
func AdjustExerciseForUser(ex Exercise, profile UserProfile) PersonalizedExercise {
	multiplier := intensityMultiplier(profile)
	adjusted := PersonalizedExercise{Exercise: ex}

	// A reps string with a leading integer ("12", "12 per leg") gets that
	// integer scaled; the trailing text is preserved untouched.
	if match := leadingIntPattern.FindString(ex.Reps); match != "" {
		baseReps, err := strconv.Atoi(match)
		if err == nil {
			scaled := int(math.Round(float64(baseReps) * multiplier))
			if scaled < minAdjustedReps {
				scaled = minAdjustedReps
			}
			adjusted.Reps = leadingIntPattern.ReplaceAllString(ex.Reps, strconv.Itoa(scaled))
		}
	}

	if ex.Duration > 0 {
		scaled := int(math.Round(float64(ex.Duration) * multiplier))
		if scaled < minAdjustedDurationSeconds {
			scaled = minAdjustedDurationSeconds
		}
		adjusted.Duration = scaled
	}

	return adjusted
}

// PersonalizeRoutine maps AdjustExerciseForUser over every exercise in the
// routine.
func PersonalizeRoutine(routine Routine, profile UserProfile) PersonalizedRoutine {
	personalized := PersonalizedRoutine{Routine: routine}
	personalized.Exercises = make([]PersonalizedExercise, 0, len(routine.Exercises))
	for _, ex := range routine.Exercises {
		personalized.Exercises = append(personalized.Exercises, AdjustExerciseForUser(ex, profile))
	}
	return personalized
}

// RecommendedRoutines filters the catalog to routines at the user's level
// or one level above, so there is always a progression target.
func RecommendedRoutines(routines []Routine, profile UserProfile) []Routine {
	var result []Routine
	for _, r := range routines {
		switch profile.Level {
		case LevelBeginner:
			if r.Level == LevelBeginner || r.Level == LevelIntermediate {
				result = append(result, r)
			}
		case LevelIntermediate:
			if r.Level == LevelIntermediate || r.Level == LevelAdvanced {
				result = append(result, r)
			}
		case LevelAdvanced:
			if r.Level == LevelAdvanced {
				result = append(result, r)
			}
		default:
			result = append(result, r)
		}
	}
	return result
}

// Intensity is a coarse effort classification used by the routine browser
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// CalculateIntensity classifies an exercise's workload for a user. Duration
// exercises are scored on duration×sets, rep exercises on reps×sets, with
// lower cutoffs for beginners and high-BMI users.
func CalculateIntensity(ex Exercise, profile UserProfile) Intensity {
	reps := 10
	if match := leadingIntPattern.FindString(ex.Reps); match != "" {
		if parsed, err := strconv.Atoi(match); err == nil {
			reps = parsed
		}
	}

	workload := ex.Sets * reps
	if ex.Duration > 0 {
		workload = ex.Duration * ex.Sets
	}

	if profile.BMI() > overweightBMI || profile.Level == LevelBeginner {
		switch {
		case workload > 100:
			return IntensityHigh
		case workload > 50:
			return IntensityMedium
		default:
			return IntensityLow
		}
	}

	switch {
	case workload > 150:
		return IntensityHigh
	case workload > 75:
		return IntensityMedium
	default:
		return IntensityLow
	}
}
