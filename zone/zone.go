// Package zone computes per-player lanes and the shared zones between them.
package zone

import (
	"fmt"
	"strings"
)

// Mode selects how the board is divided between players.
type Mode uint8

const (
	// Lanes gives each player an exclusive band plus the shared zones on
	// either side of it.
	Lanes Mode = iota
	// Chaos lets every player use the full board width.
	Chaos
)

func (m Mode) String() string {
	switch m {
	case Lanes:
		return "zoned"
	case Chaos:
		return "chaos"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts "zoned", "lanes" and "chaos", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zoned", "lanes", "lane":
		return Lanes, nil
	case "chaos":
		return Chaos, nil
	}
	return Lanes, fmt.Errorf("unknown game mode %q", s)
}

// Zone is an inclusive column range.
type Zone struct {
	Min, Max int
}

// Contains reports whether col lies inside the zone.
func (z Zone) Contains(col int) bool {
	return col >= z.Min && col <= z.Max
}

// Width is the number of columns in the zone.
func (z Zone) Width() int {
	return z.Max - z.Min + 1
}

// Center is the column a piece of the given width is centred on at spawn.
func (z Zone) Center(width int) int {
	return (z.Min+z.Max)/2 - width/2
}

// SharedZone is a column range claimable by the two players on either side.
type SharedZone struct {
	Start, End int
}

// Geometry holds the fixed widths a layout is built from.
type Geometry struct {
	ExclusiveWidth    int
	SharedWidth       int
	MinExclusiveWidth int
}

// DefaultGeometry matches the classic two-player board: 6 + 4 + 6 columns.
var DefaultGeometry = Geometry{
	ExclusiveWidth:    6,
	SharedWidth:       4,
	MinExclusiveWidth: 2,
}

// Cols returns the board width for the given player count.
func (g Geometry) Cols(players int) int {
	return players*g.ExclusiveWidth + (players-1)*g.SharedWidth
}

// Layout owns every player's zone for one board.
type Layout struct {
	Mode     Mode
	Players  int
	Cols     int
	Geometry Geometry
	// Shared has Players-1 entries in lane mode and none in chaos mode.
	Shared []SharedZone
}

// Build lays out the board for players participants.
func Build(players int, mode Mode, g Geometry) Layout {
	l := Layout{
		Mode:     mode,
		Players:  players,
		Cols:     g.Cols(players),
		Geometry: g,
	}
	if mode == Chaos {
		return l
	}

	l.Shared = make([]SharedZone, players-1)
	for i := range l.Shared {
		start := (i+1)*g.ExclusiveWidth + i*g.SharedWidth
		l.Shared[i] = SharedZone{Start: start, End: start + g.SharedWidth - 1}
	}
	return l
}

// Clone returns a copy that does not share the Shared slice.
func (l Layout) Clone() Layout {
	l.Shared = append([]SharedZone(nil), l.Shared...)
	return l
}

// Full is the whole board width.
func (l Layout) Full() Zone {
	return Zone{Min: 0, Max: l.Cols - 1}
}

// Zone returns the columns player may occupy. In lane mode that is its own
// band plus the shared zone on each side.
func (l Layout) Zone(player int) Zone {
	if l.Mode == Chaos {
		return l.Full()
	}
	z := l.Full()
	if player > 0 {
		z.Min = l.Shared[player-1].Start
	}
	if player < len(l.Shared) {
		z.Max = l.Shared[player].End
	}
	return z
}

// SpawnZone is the segment used to centre new pieces. In chaos mode the
// board is cut into Players disjoint segments of Cols/Players columns.
func (l Layout) SpawnZone(player int) Zone {
	if l.Mode == Lanes {
		return l.Zone(player)
	}
	width := l.Cols / l.Players
	return Zone{Min: player * width, Max: player*width + width - 1}
}

// StartRange is the legal interval for shared zone i's start column, keeping
// MinExclusiveWidth free columns between it and whatever lies on each side.
// lo > hi means the zone cannot move.
func (l Layout) StartRange(i int) (lo, hi int) {
	g := l.Geometry
	left := 0
	if i > 0 {
		left = l.Shared[i-1].End + 1
	}
	right := l.Cols
	if i < len(l.Shared)-1 {
		right = l.Shared[i+1].Start
	}
	return left + g.MinExclusiveWidth, right - g.SharedWidth - g.MinExclusiveWidth
}

// Commit moves shared zone i to start, clamped to its legal range.
func (l *Layout) Commit(i, start int) {
	lo, hi := l.StartRange(i)
	start = max(lo, min(hi, start))
	l.Shared[i] = SharedZone{Start: start, End: start + l.Geometry.SharedWidth - 1}
}

// Dice is the slice of *rand.Rand the shift picker needs.
type Dice interface {
	IntN(n int) int
}

// ShiftTarget picks a new start for shared zone i: a random step of 1..3
// columns in a random direction, reflected when it leaves the legal range
// and nudged by one column when it lands back on the current start. It
// reports false when the zone has no room to move.
func (l Layout) ShiftTarget(i int, dice Dice) (int, bool) {
	lo, hi := l.StartRange(i)
	if lo > hi {
		return 0, false
	}

	current := l.Shared[i].Start
	direction := 1
	if dice.IntN(2) == 0 {
		direction = -1
	}
	step := 1 + dice.IntN(3)

	next := current + direction*step
	if next < lo || next > hi {
		next = current - direction*step
	}
	next = max(lo, min(hi, next))
	if next == current {
		next = max(lo, min(hi, next+direction))
	}
	if next == current {
		return 0, false
	}
	return next, true
}

// PickShared chooses which shared zone to move next, uniformly.
func (l Layout) PickShared(dice Dice) (int, bool) {
	if l.Mode != Lanes || len(l.Shared) == 0 {
		return 0, false
	}
	if len(l.Shared) == 1 {
		return 0, true
	}
	return dice.IntN(len(l.Shared)), true
}

// IsShared reports whether col lies in any shared zone.
func (l Layout) IsShared(col int) bool {
	for _, s := range l.Shared {
		if col >= s.Start && col <= s.End {
			return true
		}
	}
	return false
}
