// Package board implements the fixed-size grid of locked blocks.
//
// The board knows nothing about pieces, zones or players beyond the tags
// stored on each block; legality is decided by the placement package.
package board

import (
	"image/color"

	"github.com/plus3/zonefall/shape"
)

// Block is what a locked piece leaves behind in a cell.
type Block struct {
	Kind  shape.Kind
	Owner int
	// Color overrides the kind's canonical colour when Explicit is set.
	Color    color.RGBA
	Explicit bool
}

// Paint returns the colour a renderer should use for the block.
func (b Block) Paint() color.RGBA {
	if b.Explicit {
		return b.Color
	}
	return b.Kind.Color()
}

// Cell is either empty or holds exactly one Block.
type Cell struct {
	block Block
	full  bool
}

// Empty is the vacant cell.
var Empty = Cell{}

// Fill returns a cell occupied by b.
func Fill(b Block) Cell {
	return Cell{block: b, full: true}
}

func (c Cell) IsEmpty() bool {
	return !c.full
}

// Block returns the occupying block, if any.
func (c Cell) Block() (Block, bool) {
	return c.block, c.full
}

// Pos addresses a cell by row and column.
type Pos struct {
	Row, Col int
}

// Board is a rows x cols grid stored row-major. The zero value is an
// unusable 0x0 board; use New.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

// New returns an all-empty board.
func New(rows, cols int) Board {
	return Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Get returns the cell at (row, col); out-of-bounds reads are Empty.
func (b *Board) Get(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.cols+col]
}

// Set overwrites the cell at (row, col). Out-of-bounds writes are ignored.
func (b *Board) Set(row, col int, c Cell) {
	if !b.InBounds(row, col) {
		return
	}
	b.cells[row*b.cols+col] = c
}

// Occupied reports whether (row, col) holds a block.
func (b *Board) Occupied(row, col int) bool {
	return !b.Get(row, col).IsEmpty()
}

// ClearCell empties a single cell without moving anything else.
func (b *Board) ClearCell(row, col int) {
	b.Set(row, col, Empty)
}

// IsRowFull reports whether every cell of row is occupied.
func (b *Board) IsRowFull(row int) bool {
	if row < 0 || row >= b.rows {
		return false
	}
	for _, c := range b.cells[row*b.cols : (row+1)*b.cols] {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// ClearRow removes row, shifts every row above it down by one and inserts
// an empty row at the top. The row count is unchanged.
func (b *Board) ClearRow(row int) {
	if row < 0 || row >= b.rows {
		return
	}
	copy(b.cells[b.cols:(row+1)*b.cols], b.cells[:row*b.cols])
	clear(b.cells[:b.cols])
}

// Sweep removes every full row in a single bottom-up pass and returns how
// many rows were removed. After a removal the same row index is scanned
// again since the row above has shifted into it.
func (b *Board) Sweep() int {
	cleared := 0
	for row := b.rows - 1; row >= 0; row-- {
		if b.IsRowFull(row) {
			b.ClearRow(row)
			cleared++
			row++
		}
	}
	return cleared
}

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// Clone returns a deep copy.
func (b *Board) Clone() Board {
	return Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: append([]Cell(nil), b.cells...),
	}
}

// Index flattens p into a single key, row*cols+col.
func (b *Board) Index(p Pos) int {
	return p.Row*b.cols + p.Col
}

// PosOf is the inverse of Index.
func (b *Board) PosOf(index int) Pos {
	return Pos{Row: index / b.cols, Col: index % b.cols}
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}
