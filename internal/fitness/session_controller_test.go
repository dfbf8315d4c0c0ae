package fitness

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/audio"
)

// stubProfileSource satisfies ProfileSource without a real ledger
type stubProfileSource struct{}

func (stubProfileSource) ListenToProfile(ch chan<- UserProfile) func() {
	return func() {}
}

func newSessionFixture(t *testing.T) (*SessionController, *UIModel) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	model := NewUIModel(stubProfileSource{}, logger, make(chan string))
	t.Cleanup(model.Shutdown)

	controller := NewSessionController(model, audio.NewMockCuePlayer(), logger)
	t.Cleanup(controller.Shutdown)
	return controller, model
}

// twoExerciseRoutine keeps traversal tests small: one timed exercise, one
// rep-based exercise.
func twoExerciseRoutine() Routine {
	return Routine{
		ID:       "r-test",
		Title:    "Test Pair",
		Level:    LevelIntermediate,
		XPReward: 50,
		Exercises: []Exercise{
			{ID: "e1", Name: "Hold", Sets: 3, Reps: "20 sec", Duration: 20},
			{ID: "e2", Name: "Reps", Sets: 3, Reps: "10"},
		},
	}
}

// drainCountdown starts the timer and ticks it to exhaustion through the
// synchronous handlers.
func drainCountdown(t *testing.T, c *SessionController) {
	t.Helper()
	if !c.timer.Running() {
		result := c.handleToggle()
		require.False(t, result.skip)
	}
	for i := 0; i < 1000 && !c.timer.Exhausted(); i++ {
		c.handleTick()
	}
	require.True(t, c.timer.Exhausted())
}

func TestNewSessionController_NilArgs(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	model := NewUIModel(stubProfileSource{}, logger, make(chan string))
	t.Cleanup(model.Shutdown)

	assert.Panics(t, func() { NewSessionController(nil, audio.NewMockCuePlayer(), logger) })
	assert.Panics(t, func() { NewSessionController(model, nil, logger) })
	assert.Panics(t, func() { NewSessionController(model, audio.NewMockCuePlayer(), nil) })
}

func TestSessionController_BeginSession(t *testing.T) {
	c, model := newSessionFixture(t)

	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	state := c.State()
	assert.Equal(t, SessionStatusActive, state.Status)
	assert.Equal(t, 1, state.SetIndex)
	assert.Equal(t, 0, state.ExerciseIndex)
	assert.Equal(t, TimerPhaseExercise, state.Phase)
	assert.Equal(t, 20, state.TimeRemaining)
	assert.False(t, state.Running)

	exercise, ok := state.CurrentExercise()
	require.True(t, ok)
	assert.Equal(t, "Hold", exercise.Name)

	// The model receives the starting snapshot
	assert.Equal(t, SessionStatusActive, model.GetSessionState().Status)
}

func TestSessionController_BeginSessionPersonalizes(t *testing.T) {
	c, _ := newSessionFixture(t)

	c.BeginSession(twoExerciseRoutine(), beginnerProfile())

	state := c.State()
	// 20s hold scaled by the beginner multiplier to 14s
	assert.Equal(t, 14, state.TimeRemaining)
}

func TestSessionController_BeginSessionEmptyRoutine(t *testing.T) {
	c, _ := newSessionFixture(t)

	c.BeginSession(Routine{ID: "empty"}, intermediateProfile())
	assert.Equal(t, SessionStatusIdle, c.State().Status)
}

func TestSessionController_NextGatedOnTimer(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	// Countdown untouched: advancing is rejected
	result := c.handleNext()
	assert.True(t, result.skip)
	assert.Equal(t, 0, c.State().ExerciseIndex)

	// Partially drained still counts as not exhausted
	c.handleToggle()
	c.handleTick()
	result = c.handleNext()
	assert.True(t, result.skip)

	drainCountdown(t, c)
	result = c.handleNext()
	assert.False(t, result.skip)
	assert.Equal(t, 1, c.State().ExerciseIndex)
}

func TestSessionController_FullTraversal(t *testing.T) {
	c, _ := newSessionFixture(t)
	routine := twoExerciseRoutine()
	c.BeginSession(routine, intermediateProfile())

	expected := []struct {
		set      int
		exercise int
	}{
		{1, 0}, {1, 1},
		{2, 0}, {2, 1},
		{3, 0}, {3, 1},
	}

	for i, pos := range expected {
		state := c.State()
		assert.Equal(t, pos.set, state.SetIndex, "step %d", i)
		assert.Equal(t, pos.exercise, state.ExerciseIndex, "step %d", i)
		assert.Equal(t, SessionStatusActive, state.Status, "step %d", i)

		drainCountdown(t, c)
		result := c.handleNext()
		require.False(t, result.skip, "step %d", i)

		if i == len(expected)-1 {
			// Advancing past the last exercise of the last circuit completes
			require.NotNil(t, result.completion)
			assert.Equal(t, routine.ID, result.completion.RoutineID)
			assert.Equal(t, routine.XPReward, result.completion.XPAwarded)
			assert.Equal(t, SessionStatusCompleted, result.state.Status)
		} else {
			assert.Nil(t, result.completion)
		}
	}

	assert.Equal(t, SessionStatusCompleted, c.State().Status)
}

func TestSessionController_CompletedIsTerminal(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	// Drive to completion
	for i := 0; i < 6; i++ {
		drainCountdown(t, c)
		c.handleNext()
	}
	require.Equal(t, SessionStatusCompleted, c.State().Status)

	// Every handler refuses to move a completed session
	assert.True(t, c.handleNext().skip)
	assert.True(t, c.handlePrev().skip)
	assert.True(t, c.handleToggle().skip)
	assert.True(t, c.handleReset().skip)
	assert.True(t, c.handleTick().skip)

	// And the public API rejects commands without sending them
	assert.False(t, c.requireActive("Next"))
}

func TestSessionController_CompletionEmittedOnce(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	completions := 0
	for i := 0; i < 6; i++ {
		drainCountdown(t, c)
		if result := c.handleNext(); result.completion != nil {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
}

func TestSessionController_PrevWalksBack(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	// Advance into circuit 2
	drainCountdown(t, c)
	require.False(t, c.handleNext().skip)
	drainCountdown(t, c)
	require.False(t, c.handleNext().skip)
	require.Equal(t, 2, c.State().SetIndex)
	require.Equal(t, 0, c.State().ExerciseIndex)

	// Prev crosses the circuit boundary backwards
	result := c.handlePrev()
	require.False(t, result.skip)
	assert.Equal(t, 1, c.State().SetIndex)
	assert.Equal(t, 1, c.State().ExerciseIndex)

	result = c.handlePrev()
	require.False(t, result.skip)
	assert.Equal(t, 1, c.State().SetIndex)
	assert.Equal(t, 0, c.State().ExerciseIndex)

	// At the very start Prev is a no-op
	assert.True(t, c.handlePrev().skip)
}

func TestSessionController_PrevRearmsTimer(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	drainCountdown(t, c)
	require.False(t, c.handleNext().skip)
	// Rep-based exercise gets the rest countdown
	require.Equal(t, RestDurationSeconds, c.State().TimeRemaining)

	result := c.handlePrev()
	require.False(t, result.skip)
	// Back on the timed hold with a fresh, paused countdown
	assert.Equal(t, 20, c.State().TimeRemaining)
	assert.False(t, c.State().Running)
}

func TestSessionController_Reset(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	c.handleToggle()
	c.handleTick()
	c.handleTick()
	require.Equal(t, 18, c.State().TimeRemaining)

	result := c.handleReset()
	require.False(t, result.skip)
	assert.Equal(t, 20, c.State().TimeRemaining)
	assert.False(t, c.State().Running)
	assert.Equal(t, 0, c.State().ExerciseIndex)
}

func TestSessionController_End(t *testing.T) {
	c, _ := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	result := c.handleEnd()
	require.False(t, result.skip)
	state := c.State()
	assert.Equal(t, SessionStatusIdle, state.Status)
	assert.Nil(t, state.Routine)

	// Ending a session never completes it
	assert.Nil(t, result.completion)
}

func TestSessionController_CommandLoop(t *testing.T) {
	c, model := newSessionFixture(t)
	c.BeginSession(twoExerciseRoutine(), intermediateProfile())

	c.Toggle()
	require.Eventually(t, func() bool {
		return model.GetSessionState().Running
	}, time.Second, 5*time.Millisecond)

	c.Toggle()
	require.Eventually(t, func() bool {
		return !model.GetSessionState().Running
	}, time.Second, 5*time.Millisecond)

	c.EndSession()
	require.Eventually(t, func() bool {
		return model.GetSessionState().Status == SessionStatusIdle
	}, time.Second, 5*time.Millisecond)
}
