package audio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestNewBellPlayer_NilLogger(t *testing.T) {
	assert.Panics(t, func() {
		NewBellPlayer(&bytes.Buffer{}, nil)
	})
}

func TestBellPlayer_PlayWritesBell(t *testing.T) {
	var out bytes.Buffer
	player := NewBellPlayer(&out, testLogger())

	player.Play(CueStart)
	assert.Equal(t, "\a", out.String())
}

func TestBellPlayer_NewCueSupersedesRingingCue(t *testing.T) {
	var out bytes.Buffer
	player := NewBellPlayer(&out, testLogger())

	// The second cue arrives while the first is still ringing; both bells
	// are written and no timer leaks.
	player.Play(CueStart)
	player.Play(CueEnd)
	assert.Equal(t, "\a\a", out.String())
}

func TestBellPlayer_WriteFailureIsSwallowed(t *testing.T) {
	player := NewBellPlayer(failingWriter{}, testLogger())

	// Fire-and-forget: a failing output must not panic or block
	player.Play(CueStart)
	player.Play(CueEnd)
}

func TestMockCuePlayer_RecordsCues(t *testing.T) {
	mock := NewMockCuePlayer()

	mock.Play(CueStart)
	mock.Play(CueEnd)
	mock.Play(CueEnd)

	assert.Equal(t, []CueID{CueStart, CueEnd, CueEnd}, mock.Cues())
	assert.Equal(t, 1, mock.PlayCount(CueStart))
	assert.Equal(t, 2, mock.PlayCount(CueEnd))
}

func TestMockCuePlayer_Failing(t *testing.T) {
	mock := NewMockCuePlayer()
	mock.SetFailing(true)

	mock.Play(CueStart)
	assert.Empty(t, mock.Cues())
	assert.Equal(t, 0, mock.PlayCount(CueStart))

	mock.SetFailing(false)
	mock.Play(CueStart)
	assert.Equal(t, 1, mock.PlayCount(CueStart))
}
