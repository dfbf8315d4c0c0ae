package fitness

import "log"

// WaterGlassMl is the amount logged per water key press
const WaterGlassMl = 250

// UIController handles UI events and coordinates the session controller
// and the ledger
type UIController struct {
	model   *UIModel
	ledger  *Ledger
	session *SessionController
	clock   Clock
	logger  *log.Logger

	unregisterCompletion func()
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, ledger *Ledger, session *SessionController, clock Clock, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if ledger == nil {
		panic("UIController: ledger cannot be nil")
	}
	if session == nil {
		panic("UIController: session cannot be nil")
	}
	if clock == nil {
		panic("UIController: clock cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	c := &UIController{
		model:   model,
		ledger:  ledger,
		session: session,
		clock:   clock,
		logger:  logger,
	}

	// The session's CompletionEvent is the only path into persistent
	// progress, so it is applied synchronously rather than over a channel
	// that could ever drop it.
	c.unregisterCompletion = session.ListenToCompletion(func(ev CompletionEvent) {
		c.logger.Printf("Workout %s completed, awarding %d XP", ev.RoutineID, ev.XPAwarded)
		c.ledger.ApplyCompletion(ev, c.clock.Today())
	})

	return c
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change. Navigating
// away from the session screen discards any session in progress.
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	if mode != UIModeWorkoutSession {
		c.session.EndSession()
	}
	c.model.SetMode(mode)
}

// OnRoutineSelected handles when a routine is picked from the catalog list.
// The routine is personalized for the current profile and a session starts.
func (c *UIController) OnRoutineSelected(index int) {
	if index < 0 || index >= len(AllRoutines) {
		c.logger.Printf("Invalid routine index: %d", index)
		return
	}

	profile, ok := c.ledger.Profile()
	if !ok {
		c.logger.Printf("No profile loaded - cannot start a session")
		return
	}

	routine := AllRoutines[index]
	c.logger.Printf("Routine selected: %s", routine.Title)
	c.session.BeginSession(routine, profile)
	c.model.SetMode(UIModeWorkoutSession)
}

// ToggleTimer starts or pauses the session countdown
func (c *UIController) ToggleTimer() {
	c.session.Toggle()
}

// NextExercise advances the session
func (c *UIController) NextExercise() {
	c.session.Next()
}

// PrevExercise steps the session back
func (c *UIController) PrevExercise() {
	c.session.Prev()
}

// ResetTimer re-arms the countdown for the current exercise
func (c *UIController) ResetTimer() {
	c.session.ResetTimer()
}

// AddWaterGlass logs one glass of water for today
func (c *UIController) AddWaterGlass() {
	c.ledger.AddWater(WaterGlassMl, c.clock.Today())
}

// UpdateWeight records a new weight measurement for today
func (c *UIController) UpdateWeight(kg float64) {
	if kg <= 0 {
		c.logger.Printf("Ignoring non-positive weight %v", kg)
		return
	}
	c.ledger.UpdateWeight(kg, c.clock.Today())
}

// Shutdown stops the controller and the session run loop
func (c *UIController) Shutdown() {
	c.unregisterCompletion()
	c.session.Shutdown()
}
