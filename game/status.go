package game

//go:generate go tool stringer -type=Status -linecomment

// Status is the run lifecycle: Ready, then Running and Paused in turn,
// until GameOver. Restart returns to Running.
type Status uint8

const (
	StatusReady    Status = iota // ready
	StatusRunning                // running
	StatusPaused                 // paused
	StatusGameOver               // game over
)

// GameOverReason says which rule ended the run.
type GameOverReason uint8

const (
	ReasonNone GameOverReason = iota
	// ReasonSpawnBlocked: a new piece collided where it appeared.
	ReasonSpawnBlocked
	// ReasonNoRoomAfterShift: a shared zone moved and left no legal column
	// for a falling piece.
	ReasonNoRoomAfterShift
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonSpawnBlocked:
		return "spawn blocked"
	case ReasonNoRoomAfterShift:
		return "no room after shift"
	}
	return "none"
}
