package input

import (
	"cmp"
	"slices"
	"time"

	"github.com/plus3/zonefall/game"
)

// Submitter receives the events a Controller produces. *game.Engine is one.
type Submitter interface {
	Submit(game.Event)
}

// Binding is what a key does. A key with both Tap and Hold set goes through
// a HoldTap channel; otherwise Tap fires on press.
type Binding struct {
	Player int
	Tap    game.Action
	Hold   game.Action
}

// Press binds a key to an action that fires as soon as it goes down.
func Press(player int, a game.Action) Binding {
	return Binding{Player: player, Tap: a}
}

// TapOrHold binds a key that performs tap when released quickly and hold
// once held past the threshold.
func TapOrHold(player int, tap, hold game.Action) Binding {
	return Binding{Player: player, Tap: tap, Hold: hold}
}

// Keymap assigns bindings to keys of any comparable type: ebiten.Key,
// tcell.Key, runes.
type Keymap[K comparable] map[K]Binding

// Players is the number of players the keymap can drive: one past the
// highest bound player.
func (k Keymap[K]) Players() int {
	n := 0
	for _, b := range k {
		n = max(n, b.Player+1)
	}
	return n
}

// Controller feeds a Keymap's key activity to a Submitter.
type Controller[K comparable] struct {
	keys      Keymap[K]
	channels  map[K]*HoldTap
	holds     []K // channel keys ordered by player, hold, then tap
	out       Submitter
	threshold time.Duration
}

func NewController[K comparable](keys Keymap[K], out Submitter, threshold time.Duration) *Controller[K] {
	c := &Controller[K]{
		keys:      keys,
		channels:  make(map[K]*HoldTap),
		out:       out,
		threshold: threshold,
	}
	for k, b := range keys {
		if b.Hold != 0 {
			c.channels[k] = NewHoldTap(threshold)
			c.holds = append(c.holds, k)
		}
	}
	slices.SortFunc(c.holds, func(a, b K) int {
		x, y := keys[a], keys[b]
		return cmp.Or(
			cmp.Compare(x.Player, y.Player),
			cmp.Compare(x.Hold, y.Hold),
			cmp.Compare(x.Tap, y.Tap),
		)
	})
	return c
}

// Press reports a key going down, or an auto-repeat of it.
func (c *Controller[K]) Press(k K) {
	b, ok := c.keys[k]
	if !ok {
		return
	}
	if ch := c.channels[k]; ch != nil {
		ch.Press()
		return
	}
	c.out.Submit(game.Act(b.Player, b.Tap))
}

func (c *Controller[K]) Release(k K) {
	ch := c.channels[k]
	if ch == nil {
		return
	}
	if ch.Release() == Tap {
		b := c.keys[k]
		c.out.Submit(game.Act(b.Player, b.Tap))
	}
}

// Tap is a press immediately followed by a release, for sources such as
// terminals that never report releases.
func (c *Controller[K]) Tap(k K) {
	c.Press(k)
	c.Release(k)
}

// Advance moves every hold timer forward and submits the hold actions that
// fire, lowest player first.
func (c *Controller[K]) Advance(dt time.Duration) {
	for _, k := range c.holds {
		if c.channels[k].Advance(dt) == Hold {
			b := c.keys[k]
			c.out.Submit(game.Act(b.Player, b.Hold))
		}
	}
}

// Reset cancels every pending hold, e.g. when the window loses focus.
func (c *Controller[K]) Reset() {
	for _, k := range c.holds {
		c.channels[k].Reset()
	}
}

// Channel exposes the hold state of k for display; nil for press keys.
func (c *Controller[K]) Channel(k K) *HoldTap {
	return c.channels[k]
}
