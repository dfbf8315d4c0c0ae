package fitness

import "time"

// ISODate is the date-only format used for every calendar comparison.
// Same-day and consecutive-day logic works on these strings, never on
// timestamps.
const ISODate = "2006-01-02"

// HistoryEntry is one per-day data point. Date is a calendar day, not a
// timestamp.
type HistoryEntry struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// UserProfile holds the user's identity, biometrics and accumulated
// progress. It is owned exclusively by the Ledger: created on profile
// creation, mutated only through Ledger operations, destroyed on logout.
type UserProfile struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Gender Gender  `json:"gender"`
	Level  Level   `json:"level"`

	XP                int            `json:"xp"`
	Streak            int            `json:"streak"`
	CompletedWorkouts []string       `json:"completed_workouts"`
	LastWorkoutDate   string         `json:"last_workout_date,omitempty"`
	WaterIntake       float64        `json:"water_intake"`
	LastWaterDate     string         `json:"last_water_date,omitempty"`
	LastWeightUpdate  string         `json:"last_weight_update,omitempty"`
	GoalAchieved      bool           `json:"goal_achieved"`
	WorkoutHistory    []HistoryEntry `json:"workout_history"`
	WaterHistory      []HistoryEntry `json:"water_history"`
	WeightHistory     []HistoryEntry `json:"weight_history"`
}

// clone returns a deep copy so snapshots handed to views and the store
// cannot alias the ledger's live state.
func (p *UserProfile) clone() UserProfile {
	c := *p
	c.CompletedWorkouts = copySlice(p.CompletedWorkouts)
	c.WorkoutHistory = copySlice(p.WorkoutHistory)
	c.WaterHistory = copySlice(p.WaterHistory)
	c.WeightHistory = copySlice(p.WeightHistory)
	return c
}

// copySlice deep-copies a slice while preserving nil-ness: an empty
// initialized collection must stay non-nil so it serializes as [] and
// snapshot assertions see the same shape the ledger holds.
func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}

// BMI returns weight / height_m². Zero height yields 0 rather than Inf so
// personalization stays total on junk profiles.
func (p *UserProfile) BMI() float64 {
	if p.Height <= 0 {
		return 0
	}
	heightM := p.Height / 100
	return p.Weight / (heightM * heightM)
}

// Clock is the calendar date source. Only date granularity is ever exposed.
type Clock interface {
	Today() string
}

// SystemClock reads the local calendar
type SystemClock struct{}

func (SystemClock) Today() string {
	return time.Now().Format(ISODate)
}

// FixedClock pins the calendar for tests
type FixedClock struct {
	Day string
}

func (c FixedClock) Today() string {
	return c.Day
}

// Yesterday returns the calendar day before the given ISO date. Unparseable
// input returns "" which never matches a stored date.
func Yesterday(day string) string {
	t, err := time.Parse(ISODate, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(ISODate)
}
