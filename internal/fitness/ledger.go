package fitness

import (
	"log"
	"sync"

	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/events"
	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/go_func_utils"
)

// Ledger owns the persistent user profile and applies every progress
// mutation: workout completion, water, weight and XP, with the day-boundary
// and streak-continuity rules. It assumes a single writer; the in-memory
// profile is authoritative and saves are fired asynchronously without being
// awaited (last write wins against the store).
//
// Every operation is a silent no-op when no profile is loaded.
type Ledger struct {
	mu      sync.RWMutex
	profile *UserProfile

	store  ProfileStore
	logger *log.Logger

	profileEvent *events.ChannelEvent[UserProfile]
	goalEvent    *events.CallbackEvent[UserProfile]
}

func NewLedger(store ProfileStore, logger *log.Logger) *Ledger {
	if store == nil {
		panic("Ledger: store cannot be nil")
	}
	if logger == nil {
		panic("Ledger: logger cannot be nil")
	}
	return &Ledger{
		store:        store,
		logger:       logger,
		profileEvent: events.NewChannelEvent[UserProfile](true),
		goalEvent:    events.NewCallbackEvent[UserProfile](false),
	}
}

// Load reads the stored profile once at startup. A store failure is logged
// and the ledger continues without a profile.
func (l *Ledger) Load() {
	profile, err := l.store.Load()
	if err != nil {
		l.logger.Printf("Ledger: load failed, continuing without profile: %v", err)
		return
	}
	if profile == nil {
		l.logger.Printf("Ledger: no stored profile")
		return
	}

	l.mu.Lock()
	l.profile = profile
	snapshot := profile.clone()
	l.mu.Unlock()

	l.logger.Printf("Ledger: loaded profile for %q (streak %d, xp %d)", snapshot.Name, snapshot.Streak, snapshot.XP)
	l.profileEvent.Notify(snapshot)
}

// ListenToProfile registers a channel to receive profile snapshots after
// every mutation. Returns a deregistration function.
func (l *Ledger) ListenToProfile(ch chan<- UserProfile) func() {
	return l.profileEvent.Listen(ch)
}

// ListenToGoal registers a callback invoked when a weight update first
// brings the profile into its healthy weight band. Returns a deregistration
// function.
func (l *Ledger) ListenToGoal(callback func(UserProfile)) func() {
	return l.goalEvent.Listen(callback)
}

// Profile returns a snapshot of the current profile, or false when none is
// loaded.
func (l *Ledger) Profile() (UserProfile, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.profile == nil {
		return UserProfile{}, false
	}
	return l.profile.clone(), true
}

// HasProfile reports whether a profile is loaded
func (l *Ledger) HasProfile() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.profile != nil
}

// CreateProfile initializes a fresh profile with zeroed progress and saves
// it. Any previously loaded profile is replaced.
func (l *Ledger) CreateProfile(name string, age int, weight, height float64, gender Gender, level Level) {
	l.mu.Lock()
	l.profile = &UserProfile{
		Name:              name,
		Age:               age,
		Weight:            weight,
		Height:            height,
		Gender:            gender,
		Level:             level,
		CompletedWorkouts: []string{},
		WorkoutHistory:    []HistoryEntry{},
		WaterHistory:      []HistoryEntry{},
		WeightHistory:     []HistoryEntry{},
	}
	snapshot := l.profile.clone()
	l.mu.Unlock()

	l.logger.Printf("Ledger: created profile for %q (%s)", name, level)
	l.persistAndNotify(snapshot)
}

// CompleteWorkout records a finished routine for the given calendar day.
// The routine id is appended unconditionally (repeats are not deduplicated).
// Streak rule: same day leaves the streak unchanged, yesterday extends it
// by one, any gap resets it to 1 (never 0). The day's workout history entry
// is incremented, or created at 1.
func (l *Ledger) CompleteWorkout(routineID, today string) {
	l.mutate("CompleteWorkout", func(p *UserProfile) {
		recordWorkout(p, routineID, today)
	})
}

// recordWorkout applies the completion bookkeeping shared by
// CompleteWorkout and ApplyCompletion.
func recordWorkout(p *UserProfile, routineID, today string) {
	p.CompletedWorkouts = append(p.CompletedWorkouts, routineID)

	incremented := false
	for i := range p.WorkoutHistory {
		if p.WorkoutHistory[i].Date == today {
			p.WorkoutHistory[i].Value++
			incremented = true
			break
		}
	}
	if !incremented {
		p.WorkoutHistory = append(p.WorkoutHistory, HistoryEntry{Date: today, Value: 1})
	}

	switch p.LastWorkoutDate {
	case today:
		// Already trained today; streak untouched
	case Yesterday(today):
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastWorkoutDate = today
}

// AddWater adds to the day's running intake. Crossing a day boundary resets
// the running total first, and the history entry for the day always holds
// the cumulative total for that day, not a delta.
func (l *Ledger) AddWater(amountMl float64, today string) {
	l.mutate("AddWater", func(p *UserProfile) {
		if p.LastWaterDate != today {
			p.WaterIntake = 0
		}
		p.WaterIntake += amountMl
		p.LastWaterDate = today

		updated := false
		for i := range p.WaterHistory {
			if p.WaterHistory[i].Date == today {
				p.WaterHistory[i].Value = p.WaterIntake
				updated = true
				break
			}
		}
		if !updated {
			p.WaterHistory = append(p.WaterHistory, HistoryEntry{Date: today, Value: p.WaterIntake})
		}
	})
}

// UpdateWeight sets the current weight and appends to the weight history
// unconditionally; same-day duplicates are permitted and preserved. Entering
// the healthy weight band flips GoalAchieved and fires the goal callbacks
// once per crossing.
func (l *Ledger) UpdateWeight(newWeight float64, today string) {
	goalReached := false
	l.mutate("UpdateWeight", func(p *UserProfile) {
		p.Weight = newWeight
		p.LastWeightUpdate = today
		p.WeightHistory = append(p.WeightHistory, HistoryEntry{Date: today, Value: newWeight})

		ideal := IdealWeightRange(p.Height)
		inRange := newWeight >= float64(ideal.Min) && newWeight <= float64(ideal.Max)
		goalReached = inRange && !p.GoalAchieved
		p.GoalAchieved = inRange
	})

	if goalReached {
		if snapshot, ok := l.Profile(); ok {
			l.logger.Printf("Ledger: weight goal reached at %.1f kg", newWeight)
			l.goalEvent.Notify(snapshot)
		}
	}
}

// AddXP grants experience, unconditional and uncapped
func (l *Ledger) AddXP(amount int) {
	l.mutate("AddXP", func(p *UserProfile) {
		p.XP += amount
	})
}

// ApplyCompletion is the single entry point for a session's
// CompletionEvent: one mutation recording the workout and granting its XP.
func (l *Ledger) ApplyCompletion(ev CompletionEvent, today string) {
	l.mutate("ApplyCompletion", func(p *UserProfile) {
		recordWorkout(p, ev.RoutineID, today)
		p.XP += ev.XPAwarded
	})
}

// Logout drops the in-memory profile and clears the store
func (l *Ledger) Logout() {
	l.mu.Lock()
	had := l.profile != nil
	l.profile = nil
	l.mu.Unlock()

	if !had {
		return
	}
	if err := l.store.Clear(); err != nil {
		l.logger.Printf("Ledger: clear failed: %v", err)
	}
	l.logger.Printf("Ledger: logged out")
}

// mutate applies fn under the write lock, then kicks off the async save and
// notifies listeners with the new snapshot. No profile loaded means no-op.
func (l *Ledger) mutate(op string, fn func(p *UserProfile)) {
	l.mu.Lock()
	if l.profile == nil {
		l.mu.Unlock()
		l.logger.Printf("Ledger: %s ignored, no profile loaded", op)
		return
	}
	fn(l.profile)
	snapshot := l.profile.clone()
	l.mu.Unlock()

	l.persistAndNotify(snapshot)
}

// persistAndNotify fires the save without awaiting it; the in-memory state
// stays authoritative whether or not the write lands.
func (l *Ledger) persistAndNotify(snapshot UserProfile) {
	go_func_utils.SafeGo(l.logger, func() {
		if err := l.store.Save(snapshot); err != nil {
			l.logger.Printf("Ledger: save failed (state kept in memory): %v", err)
		}
	})
	l.profileEvent.Notify(snapshot)
}
