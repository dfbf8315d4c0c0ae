package fitness

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Page names for tview.Pages
const (
	pageDashboard        = "dashboard"
	pageRoutineSelection = "routine_selection"
	pageWorkoutSession   = "workout_session"
)

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	clock       Clock
	currentMode UIMode

	// Latest profile snapshot, used by every panel that renders
	// profile-derived data
	profile *UserProfile

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: mode content on left, logs on right

	// Dashboard mode components
	dashboardFlex       *tview.Flex
	dashboardTabWidgets []*tview.Box
	statsPanel          *tview.TextView
	streakPanel         *tview.TextView
	nutritionPanel      *tview.TextView

	// Routine Selection mode components
	routineSelectionFlex       *tview.Flex
	routineSelectionTabWidgets []*tview.Box
	routineList                *tview.List
	routineDetailsPanel        *tview.TextView
	routines                   []Routine // Catalog shown in the list

	// Workout Session mode components
	workoutSessionFlex       *tview.Flex
	workoutSessionTabWidgets []*tview.Box
	sessionPanel             *tview.TextView
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel, clock Clock) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		model:       model,
		clock:       clock,
		currentMode: UIModeDashboard,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Create shared log view
	// Note: Don't use SetChangedFunc with app.Draw() - it can cause hangs during shutdown
	// when the app has been stopped but log messages are still being written.
	// The BaseUIView's event listeners already call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	// Create pages container for mode switching
	ui.pages = tview.NewPages()

	// Initialize each mode
	ui.initDashboardMode(controller)
	ui.initRoutineSelectionMode(controller)
	ui.initWorkoutSessionMode(controller)

	// Add pages
	ui.pages.AddPage(pageDashboard, ui.dashboardFlex, true, true)
	ui.pages.AddPage(pageRoutineSelection, ui.routineSelectionFlex, true, false)
	ui.pages.AddPage(pageWorkoutSession, ui.workoutSessionFlex, true, false)

	// Create main layout: pages on left, logs on right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	// Set initial focus
	ui.setFocusForCurrentMode()
}

// initDashboardMode sets up the Dashboard mode UI
func (ui *CursesUIViewImpl) initDashboardMode(controller *UIController) {
	// Create instructions box at the top
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]W[white] Log Water Glass  |  [yellow]Tab[white] Cycle Panels\n[yellow]1[white] Dashboard  |  [yellow]2[white] Routines  |  [yellow]3[white] Session")

	// Create stats panel for identity and progress
	ui.statsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.statsPanel.SetBorder(true).SetTitle(" Profile ")

	// Create streak panel for the streak phase display
	ui.streakPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.streakPanel.SetBorder(true).SetTitle(" Streak ")

	// Create nutrition panel for calories and the daily meal plan
	ui.nutritionPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.nutritionPanel.SetBorder(true).SetTitle(" Nutrition ")

	ui.updateDashboardDisplay()

	ui.dashboardTabWidgets = append(ui.dashboardTabWidgets, ui.statsPanel.Box)
	ui.dashboardTabWidgets = append(ui.dashboardTabWidgets, ui.streakPanel.Box)
	ui.dashboardTabWidgets = append(ui.dashboardTabWidgets, ui.nutritionPanel.Box)

	// Create left column: stats + streak stacked vertically
	leftColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.statsPanel, 0, 2, true).
		AddItem(ui.streakPanel, 0, 1, false)

	panelsFlex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftColumn, 0, 1, true).
		AddItem(ui.nutritionPanel, 0, 1, false)

	// Create dashboard layout: instructions at top, panels below
	ui.dashboardFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(panelsFlex, 0, 1, true)
}

// initRoutineSelectionMode sets up the Routine Selection mode UI
func (ui *CursesUIViewImpl) initRoutineSelectionMode(controller *UIController) {
	// Create routine list for selecting routines
	ui.routineList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Routine selected: index=%d, name=%s", index, mainText)
			controller.OnRoutineSelected(index)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			// Update details panel when selection changes
			ui.updateRoutineDetailsDisplay(index)
		})
	ui.routineList.SetBorder(true).SetTitle(" Routines ")

	// Create routine details panel
	ui.routineDetailsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.routineDetailsPanel.SetBorder(true).SetTitle(" Routine Details ")
	ui.updateRoutineDetailsDisplay(-1) // Initialize with no selection

	ui.routineSelectionTabWidgets = append(ui.routineSelectionTabWidgets, ui.routineList.Box)
	ui.routineSelectionTabWidgets = append(ui.routineSelectionTabWidgets, ui.routineDetailsPanel.Box)

	// Create routine selection layout
	ui.routineSelectionFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.routineList, 0, 1, true).
		AddItem(ui.routineDetailsPanel, 0, 1, false)
}

// initWorkoutSessionMode sets up the Workout Session mode UI
func (ui *CursesUIViewImpl) initWorkoutSessionMode(controller *UIController) {
	ui.sessionPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.sessionPanel.SetBorder(true).SetTitle(" Workout Session ")
	ui.updateSessionDisplay(SessionState{Status: SessionStatusIdle})

	ui.workoutSessionTabWidgets = append(ui.workoutSessionTabWidgets, ui.sessionPanel.Box)

	ui.workoutSessionFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.sessionPanel, 0, 1, true)
}

// SetRoutineList populates the routine selection list
func (ui *CursesUIViewImpl) SetRoutineList(routines []Routine) {
	ui.routines = routines
	ui.routineList.Clear()

	for _, routine := range routines {
		secondary := fmt.Sprintf("%s | %d min | %d XP", routine.Level, routine.DurationMinutes, routine.XPReward)
		ui.routineList.AddItem(routine.Title, secondary, 0, nil)
	}

	// Update details for first item if list is not empty
	if len(routines) > 0 {
		ui.updateRoutineDetailsDisplay(0)
	}
}

// updateRoutineDetailsDisplay formats and displays the routine details
func (ui *CursesUIViewImpl) updateRoutineDetailsDisplay(index int) {
	if ui.routineDetailsPanel == nil {
		return
	}

	var text string

	if index < 0 || index >= len(ui.routines) {
		text = "\n\n  [yellow]Routine Selection[white]\n\n"
		text += "  Select a routine from the list to view details.\n\n"
		text += "  [gray]Press Enter to start the selected routine.[white]\n"
	} else {
		routine := ui.routines[index]
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", routine.Title)
		text += fmt.Sprintf("  [gray]Level:[white] %s\n", routine.Level)
		text += fmt.Sprintf("  [gray]Duration:[white] %d min\n", routine.DurationMinutes)
		text += fmt.Sprintf("  [gray]Reward:[white] %d XP\n", routine.XPReward)
		text += fmt.Sprintf("  [gray]Circuits:[white] %d\n\n", TotalCircuits)

		// Show exercise breakdown, with per-exercise intensity when a
		// profile is loaded
		text += "  [gray]Exercises:[white]\n"
		for i, ex := range routine.Exercises {
			line := fmt.Sprintf("    %d. %s - %s", i+1, ex.Name, ex.Reps)
			if ui.profile != nil {
				line += fmt.Sprintf(" [gray](%s intensity)[white]", CalculateIntensity(ex, *ui.profile))
			}
			text += line + "\n"
		}

		if ui.profile != nil && !ui.isRecommended(routine) {
			text += fmt.Sprintf("\n  [orange]Above your %s level - routines at your level are marked first.[white]\n", ui.profile.Level)
		}
		text += "\n  [green]Press Enter to start this routine[white]\n"
	}

	ui.routineDetailsPanel.SetText(text)
}

// isRecommended reports whether the routine is in the recommended set for
// the loaded profile
func (ui *CursesUIViewImpl) isRecommended(routine Routine) bool {
	if ui.profile == nil {
		return true
	}
	for _, r := range RecommendedRoutines(ui.routines, *ui.profile) {
		if r.ID == routine.ID {
			return true
		}
	}
	return false
}

// UpdateProfile updates every profile-derived panel
func (ui *CursesUIViewImpl) UpdateProfile(profile UserProfile) {
	ui.profile = &profile
	ui.updateDashboardDisplay()
}

// updateDashboardDisplay formats and displays the dashboard panels
func (ui *CursesUIViewImpl) updateDashboardDisplay() {
	if ui.statsPanel == nil {
		return
	}

	if ui.profile == nil {
		ui.statsPanel.SetText("\n\n  [gray]No profile loaded[white]\n\n  A profile is created from the configuration on first start.\n")
		ui.streakPanel.SetText("\n  [gray]No streak yet[white]\n")
		ui.nutritionPanel.SetText("\n  [gray]No nutrition data[white]\n")
		return
	}

	p := *ui.profile

	// Profile panel
	text := "\n"
	text += fmt.Sprintf("  [yellow]%s[white]  [gray](%s, %d)[white]\n\n", p.Name, p.Level, p.Age)
	text += fmt.Sprintf("  [blue]XP:[white]        [yellow]%d[white]\n", p.XP)
	text += fmt.Sprintf("  [blue]Workouts:[white]  [yellow]%d[white]\n\n", len(p.CompletedWorkouts))
	text += fmt.Sprintf("  [cyan]Water today:[white]  [yellow]%.0f[white] ml\n\n", p.WaterIntake)

	ideal := IdealWeightRange(p.Height)
	text += fmt.Sprintf("  [green]Weight:[white]  [yellow]%.1f[white] kg  [gray](BMI %.1f)[white]\n", p.Weight, p.BMI())
	text += fmt.Sprintf("  [gray]Healthy range: %d-%d kg[white]\n", ideal.Min, ideal.Max)
	if p.GoalAchieved {
		text += "\n  [green]Weight goal achieved![white]\n"
	}
	ui.statsPanel.SetText(text)

	// Streak panel
	phase := PhaseForStreak(p.Streak)
	text = "\n"
	text += fmt.Sprintf("  [%s]%s[white]  [yellow]%d[white] day streak\n\n", phase.Color, phase.Name, p.Streak)
	text += fmt.Sprintf("  %s\n", phase.Description)
	if phase.NextPhaseDays > 0 {
		text += fmt.Sprintf("\n  [gray]%d days to the next phase[white]\n", phase.NextPhaseDays-p.Streak)
	}
	ui.streakPanel.SetText(text)

	// Nutrition panel
	calories := DailyCalories(p)
	text = "\n"
	text += fmt.Sprintf("  [blue]Daily target:[white]  [yellow]%d[white] kcal\n\n", calories)
	text += "  [gray]Today's plan:[white]\n"
	for _, meal := range DailyPlan(calories, ui.clock.Today()) {
		text += fmt.Sprintf("    %-10s %s  [gray](%d kcal, %dg protein)[white]\n",
			titleCase(string(meal.Category))+":", meal.Name, meal.Calories, meal.Protein)
	}
	ui.nutritionPanel.SetText(text)
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeDashboard:
		ui.pages.SwitchToPage(pageDashboard)
	case UIModeRoutineSelection:
		ui.pages.SwitchToPage(pageRoutineSelection)
	case UIModeWorkoutSession:
		ui.pages.SwitchToPage(pageWorkoutSession)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	widgets := ui.getTabWidgetsForCurrentMode()
	if len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// getTabWidgetsForCurrentMode returns the tab widgets for the current mode
func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeDashboard:
		return ui.dashboardTabWidgets
	case UIModeRoutineSelection:
		return ui.routineSelectionTabWidgets
	case UIModeWorkoutSession:
		return ui.workoutSessionTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Number keys for mode switching (1-9)
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// Delegate to controller - it will update the model, which will notify us
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						nextIdx := (idx + 1) % widgetCount
						ui.app.SetFocus(widgets[nextIdx])
						break
					}
				}
			}
			return nil
		}

		// Escape to quit
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// Mode-specific key handlers
		switch ui.currentMode {
		case UIModeDashboard:
			// 'w' key to log a glass of water
			if event.Key() == tcell.KeyRune && event.Rune() == 'w' {
				controller.AddWaterGlass()
				return nil
			}
		case UIModeWorkoutSession:
			// Space to start/pause the countdown
			if event.Key() == tcell.KeyRune && event.Rune() == ' ' {
				controller.ToggleTimer()
				return nil
			}
			// 'n' or Right arrow to advance
			if event.Key() == tcell.KeyRune && event.Rune() == 'n' {
				controller.NextExercise()
				return nil
			}
			if event.Key() == tcell.KeyRight {
				controller.NextExercise()
				return nil
			}
			// 'p' or Left arrow to step back
			if event.Key() == tcell.KeyRune && event.Rune() == 'p' {
				controller.PrevExercise()
				return nil
			}
			if event.Key() == tcell.KeyLeft {
				controller.PrevExercise()
				return nil
			}
			// 'r' to re-arm the countdown
			if event.Key() == tcell.KeyRune && event.Rune() == 'r' {
				controller.ResetTimer()
				return nil
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, line)
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}

// UpdateSessionState updates the session player display
func (ui *CursesUIViewImpl) UpdateSessionState(state SessionState) {
	ui.updateSessionDisplay(state)
}

// updateSessionDisplay formats and displays the session state
func (ui *CursesUIViewImpl) updateSessionDisplay(state SessionState) {
	if ui.sessionPanel == nil {
		return
	}

	var text string

	switch state.Status {
	case SessionStatusIdle:
		text = "\n  [gray]No session in progress[white]\n\n"
		text += "  Go to Routine Selection (press 2) and pick a routine to start.\n"

	case SessionStatusCompleted:
		text = "\n  [green]Workout complete![white]\n\n"
		if state.Routine != nil {
			text += fmt.Sprintf("  [yellow]%s[white] finished - [yellow]%d[white] XP earned\n\n", state.Routine.Title, state.Routine.XPReward)
		}
		text += "  [gray]Press 1 for the dashboard or 2 to pick another routine.[white]\n"

	case SessionStatusActive:
		text = ui.formatActiveSessionDisplay(state)
	}

	ui.sessionPanel.SetText(text)
}

// formatActiveSessionDisplay formats the display for a session in progress
func (ui *CursesUIViewImpl) formatActiveSessionDisplay(state SessionState) string {
	if state.Routine == nil {
		return "\n  [gray]No session data[white]\n"
	}

	exercise, ok := state.CurrentExercise()
	if !ok {
		return "\n  [gray]No session data[white]\n"
	}

	var text string
	text = "\n"
	text += fmt.Sprintf("  [yellow]%s[white]\n\n", state.Routine.Title)
	text += fmt.Sprintf("  [cyan]Circuit[white] %d/%d    [cyan]Exercise[white] %d/%d\n\n",
		state.SetIndex, TotalCircuits, state.ExerciseIndex+1, len(state.Routine.Exercises))

	text += fmt.Sprintf("  [yellow]%s[white]  [gray](%s)[white]\n", exercise.Name, exercise.Reps)
	if exercise.Description != "" {
		text += fmt.Sprintf("  [gray]%s[white]\n", exercise.Description)
	}
	text += "\n"

	// Countdown
	phaseColor := "green"
	if state.Phase == TimerPhaseRest {
		phaseColor = "blue"
	}
	runState := "[gray](paused)[white]"
	if state.Running {
		runState = "[green](running)[white]"
	}
	text += fmt.Sprintf("  [%s]%s[white]  [yellow]%s[white]  %s\n",
		phaseColor, state.Phase, formatSecondsMMSS(state.TimeRemaining), runState)

	// Next exercise preview
	nextIdx := state.ExerciseIndex + 1
	if nextIdx < len(state.Routine.Exercises) {
		text += fmt.Sprintf("\n  [gray]Next:[white] %s\n", state.Routine.Exercises[nextIdx].Name)
	} else if state.SetIndex < TotalCircuits {
		text += fmt.Sprintf("\n  [gray]Next:[white] circuit %d, %s\n", state.SetIndex+1, state.Routine.Exercises[0].Name)
	} else {
		text += "\n  [gray]Next:[white] [green]Finish![white]\n"
	}

	// Controls hint
	if state.Running {
		text += "\n  [yellow]Space[white] Pause  |  [yellow]R[white] Reset\n"
	} else if state.TimeRemaining == 0 {
		text += "\n  [yellow]N[white] Next  |  [yellow]P[white] Back  |  [yellow]R[white] Reset\n"
	} else {
		text += "\n  [yellow]Space[white] Start  |  [yellow]P[white] Back  |  [yellow]R[white] Reset\n"
	}

	return text
}

// formatSecondsMMSS formats a second count as MM:SS
func formatSecondsMMSS(totalSeconds int) string {
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// titleCase capitalizes the first letter for display
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
