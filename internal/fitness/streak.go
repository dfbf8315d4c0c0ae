package fitness

// StreakPhase is a cosmetic tier derived from streak length. Display only;
// it never feeds back into ledger logic.
type StreakPhase struct {
	Name          string
	Color         string // tview color tag for terminal display
	Description   string
	MinDays       int
	NextPhaseDays int // 0 on the final phase
	Intensity     int // 1-5 animation intensity
}

// AllStreakPhases is the ascending band table. Bands must stay sorted by
// MinDays.
var AllStreakPhases = []StreakPhase{
	{
		Name:          "Spark",
		Color:         "yellow",
		Description:   "You're getting started! Keep the rhythm to light the flame.",
		MinDays:       0,
		NextPhaseDays: 3,
		Intensity:     1,
	},
	{
		Name:          "Flame",
		Color:         "orange",
		Description:   "The fire has caught! Your consistency is paying off.",
		MinDays:       3,
		NextPhaseDays: 7,
		Intensity:     2,
	},
	{
		Name:          "Blaze",
		Color:         "red",
		Description:   "You're on fire! Nothing can stop you now.",
		MinDays:       7,
		NextPhaseDays: 14,
		Intensity:     3,
	},
	{
		Name:          "Inferno",
		Color:         "purple",
		Description:   "Absolute power! Your discipline is legendary.",
		MinDays:       14,
		NextPhaseDays: 30,
		Intensity:     4,
	},
	{
		Name:          "Blue Nova",
		Color:         "blue",
		Description:   "You've reached perfection! You're an inspiration.",
		MinDays:       30,
		NextPhaseDays: 0,
		Intensity:     5,
	},
}

// PhaseForStreak returns the highest band whose MinDays <= days. Negative
// input maps to the first band.
func PhaseForStreak(days int) StreakPhase {
	phase := AllStreakPhases[0]
	for _, p := range AllStreakPhases {
		if days >= p.MinDays {
			phase = p
		}
	}
	return phase
}

// PhaseIndexForStreak returns the band index instead of the band itself
func PhaseIndexForStreak(days int) int {
	index := 0
	for i, p := range AllStreakPhases {
		if days >= p.MinDays {
			index = i
		}
	}
	return index
}
