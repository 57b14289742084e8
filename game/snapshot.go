package game

import (
	"image/color"
	"time"

	"github.com/google/uuid"

	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/placement"
	"github.com/plus3/zonefall/shape"
	"github.com/plus3/zonefall/zone"
)

// Snapshot is a detached copy of the observable state after a tick.
// Renderers may keep it as long as they like.
type Snapshot struct {
	RunID  uuid.UUID
	Tick   uint64
	Status Status
	Reason GameOverReason
	Loser  int
	Mode   zone.Mode
	Sound  bool

	Board   board.Board
	Shared  []zone.SharedZone
	Players []PlayerSnapshot
	Shift   ShiftSnapshot
	Bombs   []BombSnapshot

	Level             int
	TotalScore        int
	TotalLines        int
	PointsToNextLevel int
	ShiftInterval     time.Duration
	// ShiftCountdown is the time until the next shift starts; zero while one
	// is animating or in chaos mode.
	ShiftCountdown time.Duration
}

type PlayerSnapshot struct {
	ID        int
	Zone      zone.Zone
	SpawnZone zone.Zone
	Score     int
	Lines     int
	Next      shape.Kind
	Color     color.RGBA
	Explicit  bool
	// Piece is nil between lock and spawn.
	Piece        *placement.Piece
	GhostY       int
	DropInterval time.Duration
}

type ShiftSnapshot struct {
	Active   bool
	Zone     int
	From, To int
	Progress float64
	// Position is the interpolated start column.
	Position float64
}

type BombSnapshot struct {
	Owner     int
	Cells     []board.Pos
	Remaining float64
}

// Cell is shorthand for s.Board.Get.
func (s *Snapshot) Cell(row, col int) board.Cell {
	return s.Board.Get(row, col)
}

// Player returns the snapshot of player id, if it exists.
func (s *Snapshot) Player(id int) (PlayerSnapshot, bool) {
	if id < 0 || id >= len(s.Players) {
		return PlayerSnapshot{}, false
	}
	return s.Players[id], true
}
