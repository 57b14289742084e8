// Package input turns physical key activity into game events.
//
// Nothing here reads a clock. Hold detection advances on the same tick
// delta as the simulation, so it is deterministic under test.
package input

import "time"

// DefaultHoldThreshold is how long a key must stay down to count as a hold.
const DefaultHoldThreshold = 300 * time.Millisecond

type Phase uint8

const (
	Idle Phase = iota
	Holding
	// Fired: the hold threshold passed while the key was down.
	Fired
	// Cancelled: the key came up before the threshold.
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Holding:
		return "holding"
	case Fired:
		return "fired"
	case Cancelled:
		return "cancelled"
	}
	return "idle"
}

type Gesture uint8

const (
	NoGesture Gesture = iota
	Tap
	Hold
)

// HoldTap tells a short tap from a long hold on one key:
// Idle -> Holding -> (Fired | Cancelled) -> Idle.
// A hold is reported once, as soon as the threshold passes; the release
// that follows reports nothing. A release before the threshold reports a
// tap.
type HoldTap struct {
	Threshold time.Duration
	phase     Phase
	held      time.Duration
}

func NewHoldTap(threshold time.Duration) *HoldTap {
	return &HoldTap{Threshold: threshold}
}

func (h *HoldTap) Phase() Phase {
	return h.phase
}

// Press starts timing. Presses while already down are ignored, so key
// auto-repeat is harmless.
func (h *HoldTap) Press() {
	if h.phase == Holding || h.phase == Fired {
		return
	}
	h.phase = Holding
	h.held = 0
}

func (h *HoldTap) Release() Gesture {
	switch h.phase {
	case Holding:
		h.phase = Cancelled
		return Tap
	case Fired:
		h.phase = Idle
	}
	return NoGesture
}

// Advance moves the timer forward by dt and reports Hold on the tick the
// threshold is reached.
func (h *HoldTap) Advance(dt time.Duration) Gesture {
	switch h.phase {
	case Cancelled:
		h.phase = Idle
	case Holding:
		h.held += dt
		if h.held >= h.Threshold {
			h.phase = Fired
			return Hold
		}
	}
	return NoGesture
}

// Reset drops any pending hold.
func (h *HoldTap) Reset() {
	h.phase = Idle
	h.held = 0
}
