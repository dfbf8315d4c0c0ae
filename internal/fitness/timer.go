package fitness

import (
	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/audio"
)

// Timer is the one-second-tick countdown primitive for a workout session.
// It is not safe for concurrent use on its own: the SessionController owns
// a single Timer and drives it from its run loop under the session lock,
// which also guarantees at most one live tick source per session.
type Timer struct {
	timeRemaining int
	phase         TimerPhase
	running       bool

	// Edge-trigger guards: each armed period fires the start cue at most
	// once and the end cue at most once. Cleared on every re-arm.
	startCueFired bool
	endCueFired   bool

	cues audio.CuePlayer
}

func NewTimer(cues audio.CuePlayer) *Timer {
	if cues == nil {
		panic("Timer: cue player cannot be nil")
	}
	return &Timer{cues: cues}
}

// Arm loads a fresh countdown. The timer starts paused and the cue guards
// are cleared, so the next Toggle fires a start cue again.
func (t *Timer) Arm(seconds int, phase TimerPhase) {
	if seconds < 0 {
		seconds = 0
	}
	t.timeRemaining = seconds
	t.phase = phase
	t.running = false
	t.startCueFired = false
	t.endCueFired = false
}

// ArmForExercise arms the countdown for an exercise: its own duration when
// it has one, otherwise the fixed rest period.
func (t *Timer) ArmForExercise(ex PersonalizedExercise) {
	if ex.Duration > 0 {
		t.Arm(ex.Duration, TimerPhaseExercise)
	} else {
		t.Arm(RestDurationSeconds, TimerPhaseRest)
	}
}

// Toggle flips running. The transition from stopped to running fires the
// start cue exactly once per armed period; pausing and resuming does not
// re-fire it.
func (t *Timer) Toggle() {
	if !t.running && t.timeRemaining == 0 {
		// Nothing left to count down; stay stopped
		return
	}
	t.running = !t.running
	if t.running && !t.startCueFired {
		t.startCueFired = true
		t.cues.Play(audio.CueStart)
	}
}

// Tick advances the countdown by one second. On reaching exactly zero it
// fires the end cue once and stops. The remaining time never goes negative.
func (t *Timer) Tick() {
	if !t.running || t.timeRemaining <= 0 {
		return
	}
	t.timeRemaining--
	if t.timeRemaining == 0 {
		t.running = false
		if !t.endCueFired {
			t.endCueFired = true
			t.cues.Play(audio.CueEnd)
		}
	}
}

// Remaining returns the seconds left on the countdown
func (t *Timer) Remaining() int {
	return t.timeRemaining
}

// Phase returns whether the countdown is work or recovery
func (t *Timer) Phase() TimerPhase {
	return t.phase
}

// Running reports whether the countdown is live
func (t *Timer) Running() bool {
	return t.running
}

// Exhausted reports whether the countdown has run out. Next() on the
// session is gated on this.
func (t *Timer) Exhausted() bool {
	return t.timeRemaining == 0
}
