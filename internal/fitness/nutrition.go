package fitness

import "math"

// WeightRange is a healthy-weight band in kilograms
type WeightRange struct {
	Min int
	Max int
}

// IdealWeightRange estimates the healthy weight band for a height from the
// BMI 18.5-24.9 window.
func IdealWeightRange(heightCm float64) WeightRange {
	heightM := heightCm / 100
	return WeightRange{
		Min: int(math.Round(18.5 * heightM * heightM)),
		Max: int(math.Round(24.9 * heightM * heightM)),
	}
}

// DailyCalories estimates a daily calorie target with the Harris-Benedict
// equation at a moderate activity factor, adjusted toward the healthy BMI
// band: a deficit above it, a surplus below it.
func DailyCalories(profile UserProfile) int {
	var bmr float64
	if profile.Gender == GenderMale {
		bmr = 88.362 + 13.397*profile.Weight + 4.799*profile.Height - 5.677*float64(profile.Age)
	} else {
		bmr = 447.593 + 9.247*profile.Weight + 3.098*profile.Height - 4.330*float64(profile.Age)
	}

	tdee := bmr * 1.55

	bmi := profile.BMI()
	switch {
	case bmi > 25:
		return int(math.Round(tdee - 500))
	case bmi < 18.5:
		return int(math.Round(tdee + 300))
	default:
		return int(math.Round(tdee))
	}
}

// snackCalorieThreshold: plans above this target get a snack slot
const snackCalorieThreshold = 2200

// DailyPlan picks breakfast, lunch and dinner (plus a snack for larger
// targets) from the meal catalog, seeded by the calendar day so the same
// day always yields the same plan. Stateless and deterministic.
func DailyPlan(targetCalories int, day string) []Meal {
	seed := 0
	for _, r := range day {
		seed += int(r)
	}
	rng := newSeededRand(seed)

	pick := func(category MealCategory) (Meal, bool) {
		options := MealsByCategory(category)
		if len(options) == 0 {
			return Meal{}, false
		}
		return options[int(rng.next()*float64(len(options)))], true
	}

	var plan []Meal
	for _, category := range []MealCategory{MealCategoryBreakfast, MealCategoryLunch, MealCategoryDinner} {
		if meal, ok := pick(category); ok {
			plan = append(plan, meal)
		}
	}
	if targetCalories > snackCalorieThreshold {
		if meal, ok := pick(MealCategorySnack); ok {
			plan = append(plan, meal)
		}
	}
	return plan
}

// seededRand is a tiny deterministic generator; the plan only needs stable
// picks per day, not statistical quality.
type seededRand struct {
	state int
}

func newSeededRand(seed int) *seededRand {
	return &seededRand{state: seed}
}

// next returns a value in [0, 1)
func (r *seededRand) next() float64 {
	x := math.Sin(float64(r.state)) * 10000
	r.state++
	return x - math.Floor(x)
}
