// Package audio provides the fire-and-forget cue player used by the
// workout timer. Playback failures never block or fail the session.
package audio

import (
	"io"
	"log"
	"sync"
	"time"
)

// CueID identifies a cue sound
type CueID string

const (
	CueStart CueID = "start"
	CueEnd   CueID = "end"
)

// CuePlayer plays short audio cues. Play is fire-and-forget: it must return
// immediately and never report an error to the caller. Implementations are
// expected to cancel any unfinished previous cue before starting a new one.
type CuePlayer interface {
	Play(cue CueID)
}

// cueDuration approximates how long a cue rings before its resources can be
// released.
const cueDuration = 2 * time.Second

// BellPlayer plays cues as terminal bells. A new cue supersedes any cue
// still ringing; the completion timer exists only to release the slot, it
// never gates anything.
type BellPlayer struct {
	out    io.Writer
	logger *log.Logger

	mu      sync.Mutex
	current *time.Timer
}

func NewBellPlayer(out io.Writer, logger *log.Logger) *BellPlayer {
	if logger == nil {
		panic("BellPlayer: logger cannot be nil")
	}
	return &BellPlayer{out: out, logger: logger}
}

func (p *BellPlayer) Play(cue CueID) {
	p.mu.Lock()
	if p.current != nil {
		// Unload the unfinished previous cue
		p.current.Stop()
		p.current = nil
	}

	if _, err := p.out.Write([]byte("\a")); err != nil {
		p.mu.Unlock()
		p.logger.Printf("BellPlayer: failed to play %s cue: %v", cue, err)
		return
	}

	p.current = time.AfterFunc(cueDuration, func() { p.release(cue) })
	p.mu.Unlock()

	p.logger.Printf("BellPlayer: playing %s cue", cue)
}

func (p *BellPlayer) release(cue CueID) {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.logger.Printf("BellPlayer: %s cue finished", cue)
}
