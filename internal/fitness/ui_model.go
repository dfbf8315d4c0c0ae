package fitness

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/events"
	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/go_func_utils"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// ProfileSource is the ledger surface the model consumes: a stream of
// profile snapshots.
type ProfileSource interface {
	ListenToProfile(ch chan<- UserProfile) func()
}

// UIModel is the snapshot-and-event hub between the domain components and
// the views. Components push state in; views listen for changes and pull
// current snapshots when they need them.
type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	sessionStateEvent     *events.ChannelEvent[SessionState]
	sessionState          SessionState
	profileEvent          *events.ChannelEvent[UserProfile]
	profile               *UserProfile
	closeApplicationEvent *events.ChannelEvent[struct{}]

	logLines []string
	logMu    sync.RWMutex
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *log.Logger
}

const maxLogLines = 1000

func NewUIModel(profiles ProfileSource, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if profiles == nil {
		panic("UIModel: profile source cannot be nil")
	}
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeDashboard},
		sessionStateEvent:     events.NewChannelEvent[SessionState](true),
		sessionState:          SessionState{Status: SessionStatusIdle},
		profileEvent:          events.NewChannelEvent[UserProfile](true),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	// Mirror ledger profile snapshots into the model
	model.wg.Add(1)
	go_func_utils.SafeGo(logger, func() { model.listenToProfiles(ctx, profiles) })

	// Read from the UI log channel and populate logLines
	model.wg.Add(1)
	go_func_utils.SafeGo(logger, func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: shutdown complete")
}

// ListenToLog registers a channel to receive log messages.
// Returns a deregistration function.
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close signals.
// Returns a deregistration function.
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes.
// Returns a deregistration function.
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToSessionState registers a channel to receive session snapshots.
// Returns a deregistration function.
func (m *UIModel) ListenToSessionState(ch chan<- SessionState) func() {
	return m.sessionStateEvent.Listen(ch)
}

// GetSessionState returns the current session snapshot
func (m *UIModel) GetSessionState() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionState
}

// SetSessionState updates the session snapshot and notifies listeners
func (m *UIModel) SetSessionState(state SessionState) {
	m.mu.Lock()
	m.sessionState = state
	m.mu.Unlock()

	m.sessionStateEvent.Notify(state)
}

// ListenToProfile registers a channel to receive profile snapshots.
// Returns a deregistration function.
func (m *UIModel) ListenToProfile(ch chan<- UserProfile) func() {
	return m.profileEvent.Listen(ch)
}

// GetProfile returns the latest profile snapshot, or false when none has
// been published yet.
func (m *UIModel) GetProfile() (UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return UserProfile{}, false
	}
	return *m.profile, true
}

// listenToProfiles mirrors ledger snapshots into the model and re-notifies
// view listeners
func (m *UIModel) listenToProfiles(ctx context.Context, profiles ProfileSource) {
	defer m.wg.Done()

	profileChan := make(chan UserProfile, 1)
	unregister := profiles.ListenToProfile(profileChan)
	defer unregister()

	for {
		select {
		case <-ctx.Done():
			return
		case profile, ok := <-profileChan:
			if !ok {
				return
			}
			m.mu.Lock()
			m.profile = &profile
			m.mu.Unlock()

			m.profileEvent.Notify(profile)
		}
	}
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}

	if n >= len(m.logLines) {
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}

	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
