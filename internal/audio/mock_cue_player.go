package audio

import "sync"

// MockCuePlayer records cues for tests and silent runs (--mock-audio)
type MockCuePlayer struct {
	mu    sync.Mutex
	cues  []CueID
	fail  bool
	plays map[CueID]int
}

func NewMockCuePlayer() *MockCuePlayer {
	return &MockCuePlayer{plays: make(map[CueID]int)}
}

func (m *MockCuePlayer) Play(cue CueID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		// A failing player still swallows the cue; fire-and-forget means
		// the caller never sees the failure.
		return
	}
	m.cues = append(m.cues, cue)
	m.plays[cue]++
}

// SetFailing makes subsequent plays drop silently
func (m *MockCuePlayer) SetFailing(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// Cues returns the cues played so far, in order
func (m *MockCuePlayer) Cues() []CueID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CueID(nil), m.cues...)
}

// PlayCount returns how many times the given cue has played
func (m *MockCuePlayer) PlayCount(cue CueID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays[cue]
}
