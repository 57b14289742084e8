package game

//go:generate go tool stringer -type=Cue -linecomment

// Cue is a fire-and-forget feedback event for the audio layer.
type Cue uint8

const (
	CueMove     Cue = iota // move
	CueRotate              // rotate
	CueDrop                // drop
	CueLock                // lock
	CueLine                // line
	CueBoom                // boom
	CueStart               // start
	CueGameOver            // gameover
)

// Cues lists every cue in declaration order.
var Cues = []Cue{CueMove, CueRotate, CueDrop, CueLock, CueLine, CueBoom, CueStart, CueGameOver}

// CueSink consumes cues after each tick. Play must not block.
type CueSink interface {
	Play(Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(Cue)

func (f CueFunc) Play(c Cue) { f(c) }
