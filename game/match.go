package game

import (
	"go.uber.org/zap"

	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/placement"
	"github.com/plus3/zonefall/shape"
	"github.com/plus3/zonefall/zone"
)

// Match is the shared state every system embeds. The Scheduler wires its
// fields, and its methods hold the piece rules the systems share.
type Match struct {
	Board   ecs.Singleton[board.Board]
	Layout  ecs.Singleton[zone.Layout]
	Session ecs.Singleton[Session]
	Shift   ecs.Singleton[ShiftAnimation]
	Cues    ecs.Singleton[CueBuffer]
	Dice    ecs.Singleton[Dice]
	Config  ecs.Singleton[Config]
	Logger  ecs.Singleton[Logger]

	Players ecs.Query[Pilot]
}

func (m *Match) running() bool {
	return m.Session.Get().Running()
}

func (m *Match) cue(c Cue) {
	m.Cues.Get().Push(c)
}

func (m *Match) log() *zap.Logger {
	return m.Logger.Get().Logger
}

func (m *Match) pilot(index int) (Pilot, bool) {
	for p := range m.Players.Values() {
		if p.Index == index {
			return p, true
		}
	}
	return Pilot{}, false
}

func (m *Match) move(p Pilot, dx int) {
	if !p.Live {
		return
	}
	if next, ok := placement.Shift(p.Zone, m.Board.Get(), p.Piece, dx, 0); ok {
		p.Piece = next
		m.cue(CueMove)
	}
}

func (m *Match) rotate(p Pilot) {
	if !p.Live {
		return
	}
	if next, ok := placement.Rotate(p.Zone, m.Board.Get(), p.Piece); ok {
		p.Piece = next
		m.cue(CueRotate)
	}
}

// softDrop moves the piece down one row, locking it when it cannot move.
func (m *Match) softDrop(p Pilot, cmd *ecs.Commands) {
	if !p.Live {
		return
	}
	if next, ok := placement.Shift(p.Zone, m.Board.Get(), p.Piece, 0, 1); ok {
		p.Piece = next
		return
	}
	m.lock(p, cmd)
}

func (m *Match) hardDrop(p Pilot, cmd *ecs.Commands) {
	if !p.Live {
		return
	}
	p.Piece.Y += placement.DropDistance(p.Zone, m.Board.Get(), p.Piece)
	m.lock(p, cmd)
	m.cue(CueDrop)
}

// lock writes the piece into the board, resolves it as a bomb or a line
// sweep and brings in the next piece.
func (m *Match) lock(p Pilot, cmd *ecs.Commands) {
	b := m.Board.Get()
	block := board.Block{Kind: p.Piece.Kind, Owner: p.Index, Color: p.Color, Explicit: p.Explicit}
	for _, c := range p.Piece.Cells() {
		if c.Row >= 0 {
			b.Set(c.Row, c.Col, board.Fill(block))
		}
	}
	p.Live = false

	if p.Piece.Kind == shape.Bomb {
		m.arm(p, cmd)
	} else {
		m.sweep(p)
	}
	m.spawn(p)
	m.cue(CueLock)
}

func (m *Match) sweep(p Pilot) {
	n := m.Board.Get().Sweep()
	if n == 0 {
		return
	}
	s := m.Session.Get()
	p.Lines += n
	p.Score += 100 * n * n
	s.TotalLines += n
	m.relevel()
	m.cue(CueLine)
}

// arm queues a delayed clear of the occupied cells around the bomb.
func (m *Match) arm(p Pilot, cmd *ecs.Commands) {
	b := m.Board.Get()
	cfg := m.Config.Get()
	area := placement.BombArea(b, p.Piece, cfg.Blast)
	if len(area) == 0 {
		return
	}
	cells := newCellSet(len(area))
	for _, pos := range area {
		cells.Add(b.Index(pos))
	}
	cmd.Spawn(BombEffect{
		Owner:     p.Index,
		Cells:     cells,
		Remaining: cfg.BombFuse,
		Fuse:      cfg.BombFuse,
	})
	m.cue(CueLine)
}

// relevel recomputes the combined score and, on a level change, every
// player's drop interval.
func (m *Match) relevel() {
	s := m.Session.Get()
	cfg := m.Config.Get()

	total := 0
	for p := range m.Players.Values() {
		total += p.Score
	}
	s.TotalScore = total

	level := total/cfg.LevelStep + 1
	if level == s.Level {
		return
	}
	s.Level = level
	interval := cfg.DropInterval(level)
	for p := range m.Players.Values() {
		p.Interval = interval
	}
	m.log().Info("level changed",
		zap.Stringer("run", s.RunID),
		zap.Int("level", level),
		zap.Duration("drop_interval", interval))
}

// spawn deals the next shape into play. A collision on arrival ends the run.
func (m *Match) spawn(p Pilot) {
	kind := p.Next
	if kind == shape.None {
		kind = p.Source.Next()
	}
	p.Next = p.Source.Next()
	p.Piece = placement.Spawn(kind, p.Spawn)
	p.Live = true

	if !placement.Fits(p.Zone, m.Board.Get(), p.Piece) {
		m.endRun(p.Index, ReasonSpawnBlocked)
	}
}

// fit moves a piece back inside its zone after a boundary change.
func (m *Match) fit(p Pilot) bool {
	if !p.Live {
		return true
	}
	x, ok := placement.FitInZone(p.Zone, m.Board.Get(), p.Piece)
	if !ok {
		m.endRun(p.Index, ReasonNoRoomAfterShift)
		return false
	}
	p.Piece.X = x
	return true
}

func (m *Match) endRun(player int, reason GameOverReason) {
	s := m.Session.Get()
	if s.Status == StatusGameOver {
		return
	}
	s.Status = StatusGameOver
	s.Reason = reason
	s.Loser = player
	m.cue(CueGameOver)
	m.log().Info("game over",
		zap.Stringer("run", s.RunID),
		zap.Int("player", player),
		zap.Stringer("reason", reason),
		zap.Int("score", s.TotalScore),
		zap.Int("lines", s.TotalLines))
}
