package fitness

// Level is the user's self-reported training level
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Gender is used by the nutrition calculations
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Exercise is an immutable catalog record. Reps is a display string whose
// leading integer (if any) is scaled by personalization; Duration is in
// seconds and 0 means the exercise is rep-based with no countdown of its own.
type Exercise struct {
	ID          string
	Name        string
	Sets        int
	Reps        string
	Duration    int
	Description string
}

// Routine is an immutable catalog record
type Routine struct {
	ID              string
	Title           string
	Level           Level
	DurationMinutes int
	XPReward        int
	Exercises       []Exercise
}

// Session constants: every routine is run as a fixed number of circuits,
// and exercises without their own duration get a rest countdown instead.
const (
	TotalCircuits       = 3
	RestDurationSeconds = 30
)

// TimerPhase says whether the active countdown is work or recovery
type TimerPhase int

const (
	TimerPhaseExercise TimerPhase = iota
	TimerPhaseRest
)

func (p TimerPhase) String() string {
	if p == TimerPhaseRest {
		return "REST"
	}
	return "EXERCISE"
}

// AllRoutines is the static routine catalog
var AllRoutines = []Routine{
	{
		ID:              "beg-1",
		Title:           "Full Body Starter",
		Level:           LevelBeginner,
		DurationMinutes: 15,
		XPReward:        100,
		Exercises: []Exercise{
			{
				ID:          "ex-1",
				Name:        "Jumping Jacks",
				Sets:        3,
				Reps:        "30 sec",
				Duration:    30,
				Description: "Start with feet together, jump out wide while raising your arms overhead.",
			},
			{
				ID:          "ex-2",
				Name:        "Squats",
				Sets:        3,
				Reps:        "12",
				Description: "Keep your back straight and lower your hips until your knees reach 90 degrees.",
			},
			{
				ID:          "ex-3",
				Name:        "Knee Push-ups",
				Sets:        3,
				Reps:        "10",
				Description: "Brace your core and lower your chest to the floor. Drop to your knees if needed.",
			},
			{
				ID:          "ex-4",
				Name:        "Plank",
				Sets:        3,
				Reps:        "20 sec",
				Duration:    20,
				Description: "Hold a straight line from head to heels (or knees).",
			},
		},
	},
	{
		ID:              "int-1",
		Title:           "Core and Cardio",
		Level:           LevelIntermediate,
		DurationMinutes: 25,
		XPReward:        200,
		Exercises: []Exercise{
			{
				ID:          "ex-5",
				Name:        "Burpees",
				Sets:        3,
				Reps:        "10",
				Description: "Squat, kick back to a plank, push-up, jump forward, jump up.",
			},
			{
				ID:          "ex-6",
				Name:        "Mountain Climbers",
				Sets:        3,
				Reps:        "40 sec",
				Duration:    40,
				Description: "From a plank, alternate driving your knees to your chest.",
			},
			{
				ID:          "ex-7",
				Name:        "Lunges",
				Sets:        3,
				Reps:        "12 per leg",
				Description: "Step forward and lower until both knees are bent at 90 degrees.",
			},
			{
				ID:          "ex-8",
				Name:        "Bicycle Crunches",
				Sets:        3,
				Reps:        "20",
				Description: "Alternate elbow to opposite knee while extending the other leg.",
			},
		},
	},
	{
		ID:              "adv-1",
		Title:           "HIIT Inferno",
		Level:           LevelAdvanced,
		DurationMinutes: 30,
		XPReward:        300,
		Exercises: []Exercise{
			{
				ID:          "ex-9",
				Name:        "Jump Squats",
				Sets:        3,
				Reps:        "15",
				Description: "Explode upward out of the squat, land softly and go straight into the next rep.",
			},
			{
				ID:          "ex-10",
				Name:        "Push-ups",
				Sets:        3,
				Reps:        "15",
				Description: "Full push-ups with a tight core and elbows at roughly 45 degrees.",
			},
			{
				ID:          "ex-11",
				Name:        "High Knees",
				Sets:        3,
				Reps:        "45 sec",
				Duration:    45,
				Description: "Sprint in place, driving your knees to hip height.",
			},
			{
				ID:          "ex-12",
				Name:        "Plank to Push-up",
				Sets:        3,
				Reps:        "10",
				Description: "From a forearm plank, press up one arm at a time into a high plank and back.",
			},
			{
				ID:          "ex-13",
				Name:        "Side Plank",
				Sets:        3,
				Reps:        "30 sec",
				Duration:    30,
				Description: "Stack your feet, lift your hips and hold. Switch sides halfway.",
			},
		},
	},
}

// RoutineByID returns a catalog routine by its ID
func RoutineByID(id string) (Routine, bool) {
	for _, r := range AllRoutines {
		if r.ID == id {
			return r, true
		}
	}
	return Routine{}, false
}

// MealCategory buckets the meal catalog for the daily plan selector
type MealCategory string

const (
	MealCategoryBreakfast MealCategory = "breakfast"
	MealCategoryLunch     MealCategory = "lunch"
	MealCategoryDinner    MealCategory = "dinner"
	MealCategorySnack     MealCategory = "snack"
)

// Meal is an immutable catalog record for the nutrition planner
type Meal struct {
	ID       string
	Name     string
	Category MealCategory
	Calories int
	Protein  int
}

// AllMeals is the static meal catalog
var AllMeals = []Meal{
	{ID: "bf-1", Name: "Oatmeal with Banana", Category: MealCategoryBreakfast, Calories: 350, Protein: 12},
	{ID: "bf-2", Name: "Scrambled Eggs on Toast", Category: MealCategoryBreakfast, Calories: 420, Protein: 24},
	{ID: "bf-3", Name: "Greek Yogurt with Berries", Category: MealCategoryBreakfast, Calories: 280, Protein: 20},
	{ID: "ln-1", Name: "Grilled Chicken Salad", Category: MealCategoryLunch, Calories: 480, Protein: 38},
	{ID: "ln-2", Name: "Tuna Rice Bowl", Category: MealCategoryLunch, Calories: 550, Protein: 35},
	{ID: "ln-3", Name: "Lentil Soup with Bread", Category: MealCategoryLunch, Calories: 430, Protein: 22},
	{ID: "dn-1", Name: "Baked Salmon with Vegetables", Category: MealCategoryDinner, Calories: 520, Protein: 40},
	{ID: "dn-2", Name: "Turkey Stir-fry", Category: MealCategoryDinner, Calories: 490, Protein: 36},
	{ID: "dn-3", Name: "Vegetable Pasta", Category: MealCategoryDinner, Calories: 540, Protein: 18},
	{ID: "sn-1", Name: "Mixed Nuts", Category: MealCategorySnack, Calories: 200, Protein: 6},
	{ID: "sn-2", Name: "Protein Shake", Category: MealCategorySnack, Calories: 180, Protein: 25},
	{ID: "sn-3", Name: "Apple with Peanut Butter", Category: MealCategorySnack, Calories: 220, Protein: 7},
}

// MealsByCategory returns the catalog meals in a category, in catalog order
func MealsByCategory(category MealCategory) []Meal {
	var result []Meal
	for _, m := range AllMeals {
		if m.Category == category {
			result = append(result, m)
		}
	}
	return result
}

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeDashboard        UIMode = iota // Profile stats, streak, water, weight
	UIModeRoutineSelection               // Routine catalog and details
	UIModeWorkoutSession                 // Active session player
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeDashboard, DisplayName: "Dashboard", KeyBinding: '1'},
	{Mode: UIModeRoutineSelection, DisplayName: "Routine Selection", KeyBinding: '2'},
	{Mode: UIModeWorkoutSession, DisplayName: "Workout Session", KeyBinding: '3'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}
