package game

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/placement"
	"github.com/plus3/zonefall/randomizer"
	"github.com/plus3/zonefall/shape"
	"github.com/plus3/zonefall/zone"
)

// Player components. Every player entity carries all of them.

type PlayerID struct {
	Index int
}

// Lane is where the player's pieces may go and where new ones appear.
type Lane struct {
	Zone  zone.Zone
	Spawn zone.Zone
}

type Tally struct {
	Score int
	Lines int
}

type Feed struct {
	Source randomizer.Randomizer
	Next   shape.Kind
}

// Fall is the auto-drop timer.
type Fall struct {
	Interval time.Duration
	Counter  time.Duration
}

// Tint is the player's colour; Explicit blocks are painted with it instead
// of the shape colour.
type Tint struct {
	Color    color.RGBA
	Explicit bool
}

type Active struct {
	Piece placement.Piece
	Live  bool
}

// BombEffect is a pending delayed clear. Cells holds board indices
// (row*cols+col) captured when the bomb locked.
type BombEffect struct {
	Owner     int
	Cells     *intmap.Set[int]
	Remaining time.Duration
	Fuse      time.Duration
}

// Fraction is the share of the fuse still left, from 1 down to 0.
func (b *BombEffect) Fraction() float64 {
	if b.Fuse <= 0 {
		return 0
	}
	return max(0, float64(b.Remaining)/float64(b.Fuse))
}

// Pilot is the view systems use to drive one player.
type Pilot struct {
	*PlayerID
	*Lane
	*Tally
	*Feed
	*Fall
	*Tint
	*Active
}

// Singletons.

// Session is run-wide state.
type Session struct {
	RunID  uuid.UUID
	Status Status
	Reason GameOverReason
	// Loser is the player whose spawn or fit failed, or -1.
	Loser int

	Level      int
	TotalScore int
	TotalLines int

	ShiftInterval time.Duration
	ShiftCounter  time.Duration
	Sound         bool
}

func (s *Session) Running() bool {
	return s.Status == StatusRunning
}

// ShiftAnimation is the one in-flight shared zone move. The layout keeps the
// old boundary until it completes.
type ShiftAnimation struct {
	Active   bool
	Zone     int
	From, To int
	Elapsed  time.Duration
	Duration time.Duration
}

// Progress runs from 0 to 1 over the animation.
func (a *ShiftAnimation) Progress() float64 {
	if !a.Active {
		return 0
	}
	if a.Duration <= 0 {
		return 1
	}
	return min(1, float64(a.Elapsed)/float64(a.Duration))
}

// Position is the interpolated start column for rendering.
func (a *ShiftAnimation) Position() float64 {
	return float64(a.From) + float64(a.To-a.From)*a.Progress()
}

// CueBuffer collects cues raised during a tick.
type CueBuffer struct {
	Cues []Cue
}

func (b *CueBuffer) Push(c Cue) {
	b.Cues = append(b.Cues, c)
}

type Dice struct {
	*rand.Rand
}

type Logger struct {
	*zap.Logger
}

func registerComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[PlayerID](r)
	ecs.RegisterComponent[Lane](r)
	ecs.RegisterComponent[Tally](r)
	ecs.RegisterComponent[Feed](r)
	ecs.RegisterComponent[Fall](r)
	ecs.RegisterComponent[Tint](r)
	ecs.RegisterComponent[Active](r)
	ecs.RegisterComponent[BombEffect](r)
}
