package game

import (
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/ecs"
)

// InputSystem applies the player actions queued for this tick, in arrival
// order.
type InputSystem struct {
	Match
	Pending []PlayerInput
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	pending := s.Pending
	s.Pending = s.Pending[:0]
	for _, in := range pending {
		if !s.running() {
			return
		}
		p, ok := s.pilot(in.Player)
		if !ok {
			continue
		}
		switch in.Action {
		case MoveLeft:
			s.move(p, -1)
		case MoveRight:
			s.move(p, 1)
		case SoftDrop:
			s.softDrop(p, frame.Commands)
		case Rotate:
			s.rotate(p)
		case HardDrop:
			s.hardDrop(p, frame.Commands)
		}
	}
}

func newCellSet(n int) *intmap.Set[int] {
	return intmap.NewSet[int](n)
}

// BombSystem counts down pending bomb effects and detonates expired ones.
type BombSystem struct {
	Match
	Bombs ecs.Query[struct{ *BombEffect }]
}

func (s *BombSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.running() {
		return
	}
	b := s.Board.Get()
	for id, item := range s.Bombs.Iter() {
		item.Remaining -= frame.DeltaTime
		if item.Remaining > 0 {
			continue
		}
		cleared := 0
		item.Cells.ForEach(func(index int) bool {
			pos := b.PosOf(index)
			if b.Occupied(pos.Row, pos.Col) {
				b.ClearCell(pos.Row, pos.Col)
				cleared++
			}
			return true
		})
		s.cue(CueBoom)
		frame.Commands.Delete(id)
		s.log().Debug("bomb detonated",
			zap.Int("player", item.Owner),
			zap.Int("marked", item.Cells.Len()),
			zap.Int("cleared", cleared))
	}
}

// GravitySystem advances each player's auto-drop timer.
type GravitySystem struct {
	Match
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.Players.Values() {
		if !s.running() {
			return
		}
		p.Counter += frame.DeltaTime
		if p.Counter >= p.Interval {
			s.softDrop(p, frame.Commands)
			p.Counter = 0
		}
	}
}

// ZoneShiftSystem moves shared zones in lane mode. A move starts as an
// animation; only when it completes is the layout committed and every
// falling piece fitted back into its player's zone.
type ZoneShiftSystem struct {
	Match
}

func (s *ZoneShiftSystem) Execute(frame *ecs.UpdateFrame) {
	layout := s.Layout.Get()
	if !s.running() || len(layout.Shared) == 0 {
		return
	}
	session := s.Session.Get()
	anim := s.Shift.Get()

	if anim.Active {
		anim.Elapsed += frame.DeltaTime
		if anim.Elapsed >= anim.Duration {
			s.commit(anim)
		}
		return
	}

	session.ShiftCounter += frame.DeltaTime
	if session.ShiftCounter < session.ShiftInterval {
		return
	}
	session.ShiftCounter = 0

	dice := s.Dice.Get()
	i, ok := layout.PickShared(dice)
	if !ok {
		return
	}
	to, ok := layout.ShiftTarget(i, dice)
	if !ok {
		return
	}
	*anim = ShiftAnimation{
		Active:   true,
		Zone:     i,
		From:     layout.Shared[i].Start,
		To:       to,
		Duration: s.Config.Get().ShiftAnimation,
	}
	s.cue(CueRotate)
}

func (s *ZoneShiftSystem) commit(anim *ShiftAnimation) {
	layout := s.Layout.Get()
	anim.Active = false
	layout.Commit(anim.Zone, anim.To)

	for p := range s.Players.Values() {
		p.Zone = layout.Zone(p.Index)
		p.Spawn = layout.SpawnZone(p.Index)
	}
	s.log().Info("shared zone moved",
		zap.Stringer("run", s.Session.Get().RunID),
		zap.Int("zone", anim.Zone),
		zap.Int("from", anim.From),
		zap.Int("to", layout.Shared[anim.Zone].Start))

	for p := range s.Players.Values() {
		if !s.fit(p) {
			return
		}
	}
}

// CueSystem hands the tick's cues to the sink once the frame is flushed.
// Cues raised while sound is off are dropped.
type CueSystem struct {
	Match
	Sink CueSink
}

func (s *CueSystem) Execute(frame *ecs.UpdateFrame) {
	buf := s.Cues.Get()
	if len(buf.Cues) == 0 {
		return
	}
	if s.Sink != nil && s.Session.Get().Sound {
		cues := append([]Cue(nil), buf.Cues...)
		sink := s.Sink
		frame.Commands.Defer(func() {
			for _, c := range cues {
				sink.Play(c)
			}
		})
	}
	buf.Cues = buf.Cues[:0]
}
