package game

import (
	"time"

	"github.com/plus3/zonefall/zone"
)

// Event is a logical input submitted to the Engine. Events are queued and
// applied at the start of the next Tick.
type Event interface {
	isEvent()
}

// Action is a per-player piece command.
type Action uint8

const (
	MoveLeft Action = iota + 1
	MoveRight
	SoftDrop
	Rotate
	HardDrop
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case SoftDrop:
		return "soft drop"
	case Rotate:
		return "rotate"
	case HardDrop:
		return "hard drop"
	}
	return "none"
}

// PlayerInput asks player (zero based) to perform Action. It is dropped
// unless the run is Running.
type PlayerInput struct {
	Player int
	Action Action
}

// Act is shorthand for PlayerInput{player, a}.
func Act(player int, a Action) PlayerInput {
	return PlayerInput{Player: player, Action: a}
}

// Start begins a Ready run.
type Start struct{}

// Restart throws the current run away and starts a fresh one immediately.
type Restart struct{}

// TogglePause flips between Running and Paused.
type TogglePause struct{}

// ToggleSound turns cue delivery on or off.
type ToggleSound struct {
	On bool
}

// SetShiftInterval changes the time between shared zone moves. Seconds is
// clamped to [10, 180] and the countdown restarts.
type SetShiftInterval struct {
	Seconds int
}

func (e SetShiftInterval) Duration() time.Duration {
	lo, hi := int(MinShiftInterval/time.Second), int(MaxShiftInterval/time.Second)
	return time.Duration(max(lo, min(hi, e.Seconds))) * time.Second
}

// SetGameMode rebuilds the board in the given mode and returns to Ready.
type SetGameMode struct {
	Mode zone.Mode
}

// SetPlayerCount rebuilds the board for Count players, clamped to [2, 16],
// and returns to Ready.
type SetPlayerCount struct {
	Count int
}

func (PlayerInput) isEvent()      {}
func (Start) isEvent()            {}
func (Restart) isEvent()          {}
func (TogglePause) isEvent()      {}
func (ToggleSound) isEvent()      {}
func (SetShiftInterval) isEvent() {}
func (SetGameMode) isEvent()      {}
func (SetPlayerCount) isEvent()   {}
