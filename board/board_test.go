package board_test

import (
	"fmt"
	"testing"

	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *board.Board, row int, kind shape.Kind) {
	for col := range b.Cols() {
		b.Set(row, col, board.Fill(board.Block{Kind: kind}))
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := board.New(20, 16)
	assert.Equal(t, 20, b.Rows())
	assert.Equal(t, 16, b.Cols())
	assert.Zero(t, b.FilledCount())
	assert.True(t, b.Get(0, 0).IsEmpty())
}

func TestSetGetAndBounds(t *testing.T) {
	b := board.New(4, 4)
	b.Set(1, 2, board.Fill(board.Block{Kind: shape.T, Owner: 3}))

	blk, ok := b.Get(1, 2).Block()
	require.True(t, ok)
	assert.Equal(t, shape.T, blk.Kind)
	assert.Equal(t, 3, blk.Owner)

	b.Set(-1, 0, board.Fill(board.Block{Kind: shape.I}))
	b.Set(0, 4, board.Fill(board.Block{Kind: shape.I}))
	assert.Equal(t, 1, b.FilledCount())
	assert.True(t, b.Get(9, 9).IsEmpty())

	b.ClearCell(1, 2)
	assert.False(t, b.Occupied(1, 2))
}

func TestClearRowOnFullBoardEmptiesIt(t *testing.T) {
	const rows = 6
	b := board.New(rows, 5)
	for row := range rows {
		fillRow(&b, row, shape.O)
	}

	for range rows {
		require.True(t, b.IsRowFull(rows-1))
		b.ClearRow(rows - 1)
	}

	assert.Equal(t, rows, b.Rows())
	assert.Zero(t, b.FilledCount())
}

func TestClearRowShiftsRowsAbove(t *testing.T) {
	b := board.New(4, 3)
	b.Set(0, 1, board.Fill(board.Block{Kind: shape.S}))
	b.Set(1, 0, board.Fill(board.Block{Kind: shape.Z}))
	fillRow(&b, 2, shape.I)
	b.Set(3, 2, board.Fill(board.Block{Kind: shape.J}))

	b.ClearRow(2)

	assert.Equal(t, 0, rowCount(&b, 0))
	assert.True(t, b.Occupied(1, 1))
	assert.True(t, b.Occupied(2, 0))
	assert.True(t, b.Occupied(3, 2), "rows below the cleared one stay put")
	assert.Equal(t, 3, b.FilledCount())
}

func TestSweepClearsExactlyFullRows(t *testing.T) {
	for k := 1; k <= 4; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			b := board.New(10, 6)
			for i := range k {
				fillRow(&b, 9-i, shape.L)
			}
			b.Set(9-k, 0, board.Fill(board.Block{Kind: shape.T}))

			assert.Equal(t, k, b.Sweep())
			assert.Equal(t, 1, b.FilledCount())
			assert.True(t, b.Occupied(9, 0), "leftover block falls by k rows")
		})
	}
}

func TestSweepNonAdjacentRows(t *testing.T) {
	b := board.New(8, 4)
	fillRow(&b, 7, shape.I)
	b.Set(6, 1, board.Fill(board.Block{Kind: shape.T}))
	fillRow(&b, 5, shape.I)
	b.Set(4, 3, board.Fill(board.Block{Kind: shape.Z}))

	assert.Equal(t, 2, b.Sweep())
	assert.True(t, b.Occupied(7, 1))
	assert.True(t, b.Occupied(6, 3))
	assert.Equal(t, 2, b.FilledCount())
}

func TestCloneIsIndependent(t *testing.T) {
	b := board.New(3, 3)
	c := b.Clone()
	c.Set(0, 0, board.Fill(board.Block{Kind: shape.O}))
	assert.False(t, b.Occupied(0, 0))
}

func TestIndexRoundTrip(t *testing.T) {
	b := board.New(20, 16)
	p := board.Pos{Row: 7, Col: 11}
	assert.Equal(t, p, b.PosOf(b.Index(p)))
}

func TestPaintPrefersExplicitColour(t *testing.T) {
	blk := board.Block{Kind: shape.I}
	assert.Equal(t, shape.I.Color(), blk.Paint())

	blk.Explicit = true
	blk.Color.R = 1
	assert.Equal(t, blk.Color, blk.Paint())
}

func rowCount(b *board.Board, row int) int {
	n := 0
	for col := range b.Cols() {
		if b.Occupied(row, col) {
			n++
		}
	}
	return n
}
