package fitness

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/audio"
	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/events"
	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/go_func_utils"
)

// sessionCommand represents commands sent to the session goroutine
type sessionCommand int

const (
	cmdToggle sessionCommand = iota
	cmdNext
	cmdPrev
	cmdReset
	cmdEnd
)

// SessionStatus represents the lifecycle of a workout session
type SessionStatus int

const (
	SessionStatusIdle      SessionStatus = iota // No session loaded
	SessionStatusActive                         // Session in progress
	SessionStatusCompleted                      // Terminal; no further transitions
)

// CompletionEvent is the sole channel from a session into the ledger and
// the UI. Exactly one is emitted per session.
type CompletionEvent struct {
	RoutineID string
	XPAwarded int
}

// SessionState is the transient snapshot views render from. It is never
// persisted and never resumed.
type SessionState struct {
	Status        SessionStatus
	Routine       *PersonalizedRoutine // nil when idle
	SetIndex      int                  // 1-based circuit number
	ExerciseIndex int                  // 0-based within the routine
	Phase         TimerPhase
	TimeRemaining int
	Running       bool
}

// CurrentExercise returns the exercise the session is on, or false when
// idle.
func (s SessionState) CurrentExercise() (PersonalizedExercise, bool) {
	if s.Routine == nil || s.ExerciseIndex >= len(s.Routine.Exercises) {
		return PersonalizedExercise{}, false
	}
	return s.Routine.Exercises[s.ExerciseIndex], true
}

// SessionController drives a personalized routine through its fixed
// circuits: a state machine over (set, exercise, timer) with a terminal
// Completed state. It owns the session's Timer and the single goroutine
// whose ticker advances it; every state change re-arms the timer under the
// same lock, so a stale tick can never fire into a superseded exercise.
type SessionController struct {
	model  *UIModel
	logger *log.Logger

	// Session state (protected by mu)
	mu             sync.RWMutex
	status         SessionStatus
	routine        *PersonalizedRoutine
	setIndex       int
	exerciseIndex  int
	timer          *Timer
	completionSent bool

	completionEvent *events.CallbackEvent[CompletionEvent]

	// Goroutine management
	cmdChan      chan sessionCommand
	doneChan     chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewSessionController creates a SessionController and starts its run loop
func NewSessionController(model *UIModel, cues audio.CuePlayer, logger *log.Logger) *SessionController {
	if model == nil {
		panic("SessionController: model cannot be nil")
	}
	if cues == nil {
		panic("SessionController: cue player cannot be nil")
	}
	if logger == nil {
		panic("SessionController: logger cannot be nil")
	}

	c := &SessionController{
		model:           model,
		logger:          logger,
		status:          SessionStatusIdle,
		timer:           NewTimer(cues),
		completionEvent: events.NewCallbackEvent[CompletionEvent](false),
		cmdChan:         make(chan sessionCommand, 1),
		doneChan:        make(chan struct{}),
	}

	c.wg.Add(1)
	go_func_utils.SafeGo(logger, func() { c.runSessionLoop() })

	return c
}

// ListenToCompletion registers a callback for the session's CompletionEvent.
// Delivery is synchronous on the session goroutine, so the one completion per
// session can never be dropped. Returns a deregistration function.
func (c *SessionController) ListenToCompletion(callback func(CompletionEvent)) func() {
	return c.completionEvent.Listen(callback)
}

// BeginSession personalizes the routine for the profile and starts a fresh
// session at circuit 1, exercise 0, timer armed and paused. Any previous
// session state is discarded.
func (c *SessionController) BeginSession(routine Routine, profile UserProfile) {
	personalized := PersonalizeRoutine(routine, profile)

	c.mu.Lock()
	if len(personalized.Exercises) == 0 {
		c.mu.Unlock()
		c.logger.Printf("SessionController: routine %q has no exercises", routine.ID)
		return
	}
	c.status = SessionStatusActive
	c.routine = &personalized
	c.setIndex = 1
	c.exerciseIndex = 0
	c.completionSent = false
	c.timer.ArmForExercise(personalized.Exercises[0])
	state := c.buildState()
	c.mu.Unlock()

	c.logger.Printf("SessionController: session started for %q (%d exercises x %d circuits)",
		routine.Title, len(personalized.Exercises), TotalCircuits)
	c.model.SetSessionState(state)
}

// EndSession discards the session without completing it. Dropping a
// session has no effect on the ledger.
func (c *SessionController) EndSession() {
	c.mu.RLock()
	status := c.status
	c.mu.RUnlock()

	if status == SessionStatusIdle {
		return
	}
	c.logger.Printf("SessionController: ending session")
	c.cmdChan <- cmdEnd
}

// Toggle starts or pauses the current countdown
func (c *SessionController) Toggle() {
	if !c.requireActive("Toggle") {
		return
	}
	c.cmdChan <- cmdToggle
}

// Next advances to the next exercise, circuit or completion. The command is
// rejected in the run loop while the timer still has time remaining.
func (c *SessionController) Next() {
	if !c.requireActive("Next") {
		return
	}
	c.cmdChan <- cmdNext
}

// Prev steps back one exercise, crossing circuit boundaries
func (c *SessionController) Prev() {
	if !c.requireActive("Prev") {
		return
	}
	c.cmdChan <- cmdPrev
}

// ResetTimer re-arms the countdown for the current exercise without moving
func (c *SessionController) ResetTimer() {
	if !c.requireActive("Reset") {
		return
	}
	c.cmdChan <- cmdReset
}

// State returns a snapshot of the current session
func (c *SessionController) State() SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildState()
}

// Shutdown stops the run loop. Safe to call multiple times.
func (c *SessionController) Shutdown() {
	c.shutdownOnce.Do(func() {
		c.logger.Printf("SessionController: shutting down")
		close(c.doneChan)
		c.wg.Wait()
		c.logger.Printf("SessionController: shutdown complete")
	})
}

func (c *SessionController) requireActive(op string) bool {
	c.mu.RLock()
	status := c.status
	c.mu.RUnlock()

	switch status {
	case SessionStatusActive:
		return true
	case SessionStatusCompleted:
		c.logger.Printf("SessionController: %s rejected, session already completed", op)
	default:
		c.logger.Printf("SessionController: %s ignored, no session", op)
	}
	return false
}

// --- Command handlers (each takes the lock and returns what the run loop
// should do afterwards) ---

// commandResult carries the state snapshot plus ticker and event actions
// out of a handler.
type commandResult struct {
	state       SessionState
	completion  *CompletionEvent
	startTicker bool
	stopTicker  bool
	skip        bool // nothing changed
}

func (c *SessionController) handleToggle() commandResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != SessionStatusActive {
		return commandResult{skip: true}
	}

	wasRunning := c.timer.Running()
	c.timer.Toggle()
	return commandResult{
		state:       c.buildState(),
		startTicker: !wasRunning && c.timer.Running(),
		stopTicker:  wasRunning,
	}
}

// handleNext is the core transition. Hard gate: the current timer must be
// exhausted before the session may advance.
func (c *SessionController) handleNext() commandResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != SessionStatusActive {
		return commandResult{skip: true}
	}
	if !c.timer.Exhausted() {
		c.logger.Printf("SessionController: Next rejected, %ds remaining", c.timer.Remaining())
		return commandResult{skip: true}
	}

	lastExercise := len(c.routine.Exercises) - 1
	switch {
	case c.exerciseIndex < lastExercise:
		c.exerciseIndex++
		c.timer.ArmForExercise(c.routine.Exercises[c.exerciseIndex])
	case c.setIndex < TotalCircuits:
		c.setIndex++
		c.exerciseIndex = 0
		c.timer.ArmForExercise(c.routine.Exercises[0])
	default:
		return c.completeLocked()
	}

	return commandResult{state: c.buildState(), stopTicker: true}
}

// completeLocked enters the terminal state and emits the session's one
// CompletionEvent. MUST be called with mu held.
func (c *SessionController) completeLocked() commandResult {
	c.status = SessionStatusCompleted
	result := commandResult{state: c.buildState(), stopTicker: true}
	if !c.completionSent {
		c.completionSent = true
		result.completion = &CompletionEvent{
			RoutineID: c.routine.ID,
			XPAwarded: c.routine.XPReward,
		}
	}
	return result
}

func (c *SessionController) handlePrev() commandResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != SessionStatusActive {
		return commandResult{skip: true}
	}

	switch {
	case c.exerciseIndex > 0:
		c.exerciseIndex--
	case c.setIndex > 1:
		c.setIndex--
		c.exerciseIndex = len(c.routine.Exercises) - 1
	default:
		// Already at the first exercise of the first circuit
		return commandResult{skip: true}
	}

	c.timer.ArmForExercise(c.routine.Exercises[c.exerciseIndex])
	return commandResult{state: c.buildState(), stopTicker: true}
}

func (c *SessionController) handleReset() commandResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != SessionStatusActive {
		return commandResult{skip: true}
	}

	c.timer.ArmForExercise(c.routine.Exercises[c.exerciseIndex])
	return commandResult{state: c.buildState(), stopTicker: true}
}

func (c *SessionController) handleEnd() commandResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == SessionStatusIdle {
		return commandResult{skip: true}
	}

	c.status = SessionStatusIdle
	c.routine = nil
	c.setIndex = 0
	c.exerciseIndex = 0
	c.timer.Arm(0, TimerPhaseRest)
	return commandResult{state: c.buildState(), stopTicker: true}
}

// handleTick advances the countdown by one second
func (c *SessionController) handleTick() commandResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != SessionStatusActive || !c.timer.Running() {
		return commandResult{skip: true}
	}

	c.timer.Tick()
	result := commandResult{state: c.buildState()}
	if !c.timer.Running() {
		result.stopTicker = true
	}
	return result
}

// buildState computes the snapshot. MUST be called with mu held.
func (c *SessionController) buildState() SessionState {
	return SessionState{
		Status:        c.status,
		Routine:       c.routine,
		SetIndex:      c.setIndex,
		ExerciseIndex: c.exerciseIndex,
		Phase:         c.timer.Phase(),
		TimeRemaining: c.timer.Remaining(),
		Running:       c.timer.Running(),
	}
}

// runSessionLoop is the single goroutine that owns the session ticker
func (c *SessionController) runSessionLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	ticker.Stop() // Started only while the countdown is running

	apply := func(result commandResult) {
		if result.skip {
			return
		}
		if result.stopTicker {
			ticker.Stop()
		}
		if result.startTicker {
			ticker.Reset(1 * time.Second)
		}
		c.model.SetSessionState(result.state)
		if result.completion != nil {
			c.logger.Printf("SessionController: session complete, %d XP for %s",
				result.completion.XPAwarded, result.completion.RoutineID)
			c.completionEvent.Notify(*result.completion)
		}
	}

	for {
		select {
		case <-c.doneChan:
			ticker.Stop()
			c.logger.Printf("SessionController: goroutine exiting")
			return

		case cmd := <-c.cmdChan:
			switch cmd {
			case cmdToggle:
				apply(c.handleToggle())
			case cmdNext:
				apply(c.handleNext())
			case cmdPrev:
				apply(c.handlePrev())
			case cmdReset:
				apply(c.handleReset())
			case cmdEnd:
				apply(c.handleEnd())
			}

		case <-ticker.C:
			apply(c.handleTick())
		}
	}
}
