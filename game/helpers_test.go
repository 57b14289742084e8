package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/placement"
	"github.com/plus3/zonefall/shape"
)

type recorder struct {
	cues []Cue
}

func (r *recorder) Play(c Cue) {
	r.cues = append(r.cues, c)
}

func (r *recorder) reset() {
	r.cues = nil
}

func newEngine(t *testing.T, tweaks ...func(*Config)) (*Engine, *recorder) {
	t.Helper()
	cfg := DefaultConfig()
	for _, tweak := range tweaks {
		tweak(&cfg)
	}
	rec := &recorder{}
	e, err := New(cfg, WithSeed(7), WithCueSink(rec))
	require.NoError(t, err)
	return e, rec
}

// running returns an engine that has processed Start, with gravity
// effectively disabled so tests control every move.
func running(t *testing.T, tweaks ...func(*Config)) (*Engine, *recorder) {
	t.Helper()
	e, rec := newEngine(t, tweaks...)
	e.Submit(Start{})
	e.Tick(0)
	require.Equal(t, StatusRunning, e.Status())
	hold(e)
	rec.reset()
	return e, rec
}

func hold(e *Engine) {
	for i := range e.roster {
		p, _ := e.Pilot(i)
		p.Interval = time.Hour
	}
}

func place(t *testing.T, e *Engine, player int, kind shape.Kind, x, y int) Pilot {
	t.Helper()
	p, ok := e.Pilot(player)
	require.True(t, ok)
	p.Piece = placement.Piece{Kind: kind, Matrix: kind.Matrix(), X: x, Y: y}
	p.Live = true
	return p
}

func worldBoard(e *Engine) *board.Board {
	var b *board.Board
	e.storage.ReadSingleton(&b)
	return b
}

func fill(b *board.Board, row int, owner int, cols ...int) {
	for _, col := range cols {
		b.Set(row, col, board.Fill(board.Block{Kind: shape.O, Owner: owner}))
	}
}

func span(from, to int) []int {
	cols := make([]int, 0, to-from+1)
	for c := from; c <= to; c++ {
		cols = append(cols, c)
	}
	return cols
}
