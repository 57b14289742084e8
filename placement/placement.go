// Package placement decides whether a piece may occupy a position and
// resolves the moves built on that decision: wall kicks, drops and the
// forced relocation that follows a zone boundary move.
package placement

import (
	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/shape"
	"github.com/plus3/zonefall/zone"
)

// SpawnRow is the row a fresh piece's matrix starts on, one above the board.
const SpawnRow = -1

// Kicks are the horizontal offsets tried, in order, when rotating.
var Kicks = [...]int{0, -1, 1, -2, 2}

// Piece is a falling piece. X and Y locate the matrix's top-left corner.
type Piece struct {
	Kind   shape.Kind
	Matrix shape.Matrix
	X, Y   int
}

// Spawn builds a piece of kind centred in spawn, one row above the board.
func Spawn(kind shape.Kind, spawn zone.Zone) Piece {
	m := kind.Matrix()
	return Piece{
		Kind:   kind,
		Matrix: m,
		X:      spawn.Center(m.Width()),
		Y:      SpawnRow,
	}
}

// Clone returns a copy that does not share the matrix.
func (p Piece) Clone() Piece {
	p.Matrix = p.Matrix.Clone()
	return p
}

// Cells returns the absolute board position of every occupied cell,
// including any still above the board.
func (p Piece) Cells() []board.Pos {
	cells := make([]board.Pos, 0, 4)
	p.Matrix.Cells(func(dy, dx int) bool {
		cells = append(cells, board.Pos{Row: p.Y + dy, Col: p.X + dx})
		return true
	})
	return cells
}

// Collides reports whether matrix placed at (x, y) would leave z, leave the
// board sideways or through the floor, or overlap a locked block. Rows above
// the board are always passable.
func Collides(z zone.Zone, b *board.Board, m shape.Matrix, x, y int) bool {
	hit := false
	m.Cells(func(dy, dx int) bool {
		col := x + dx
		row := y + dy
		switch {
		case col < z.Min || col > z.Max:
			hit = true
		case col < 0 || col >= b.Cols() || row >= b.Rows():
			hit = true
		case row >= 0 && b.Occupied(row, col):
			hit = true
		}
		return !hit
	})
	return hit
}

// Fits is the negation of Collides for p's own matrix and position.
func Fits(z zone.Zone, b *board.Board, p Piece) bool {
	return !Collides(z, b, p.Matrix, p.X, p.Y)
}

// Shift returns p moved by (dx, dy) and whether the new position is legal.
func Shift(z zone.Zone, b *board.Board, p Piece, dx, dy int) (Piece, bool) {
	if Collides(z, b, p.Matrix, p.X+dx, p.Y+dy) {
		return p, false
	}
	p.X += dx
	p.Y += dy
	return p, true
}

// Rotate turns p clockwise, trying each of Kicks at the same row. The first
// legal offset wins; if none is legal p is returned unchanged with false.
func Rotate(z zone.Zone, b *board.Board, p Piece) (Piece, bool) {
	rotated := shape.Rotate(p.Matrix)
	for _, kick := range Kicks {
		if !Collides(z, b, rotated, p.X+kick, p.Y) {
			p.Matrix = rotated
			p.X += kick
			return p, true
		}
	}
	return p, false
}

// DropDistance is how many rows p can fall before it would collide.
func DropDistance(z zone.Zone, b *board.Board, p Piece) int {
	n := 0
	for !Collides(z, b, p.Matrix, p.X, p.Y+n+1) {
		n++
	}
	return n
}

// FitInZone finds the column p should move to after its zone changed. A
// piece already inside [z.Min, z.Max-width+1] that does not collide stays
// put. Otherwise x is clamped into that range and columns are searched
// outward, right before left at each distance. ok is false when no column
// in the zone is legal.
func FitInZone(z zone.Zone, b *board.Board, p Piece) (x int, ok bool) {
	width := p.Matrix.Width()
	minX := z.Min
	maxX := z.Max - width + 1

	if p.X >= minX && p.X <= maxX && !Collides(z, b, p.Matrix, p.X, p.Y) {
		return p.X, true
	}

	clamped := max(minX, min(maxX, p.X))
	reach := max(clamped-minX, maxX-clamped)
	for offset := 0; offset <= reach; offset++ {
		for _, candidate := range [2]int{clamped + offset, clamped - offset} {
			if candidate < minX || candidate > maxX {
				continue
			}
			if !Collides(z, b, p.Matrix, candidate, p.Y) {
				return candidate, true
			}
		}
	}
	return p.X, false
}

// BlastRadius describes the bomb neighbourhood relative to the bomb cell:
// rows and columns from -Before to +After inclusive.
type BlastRadius struct {
	Before, After int
}

// DefaultBlast is the 4x4 area one cell up/left and two cells down/right.
var DefaultBlast = BlastRadius{Before: 1, After: 2}

// BombArea returns the occupied board cells inside the blast neighbourhood
// of every occupied cell of p, clamped to the board, without duplicates.
// Empty cells are never included.
func BombArea(b *board.Board, p Piece, r BlastRadius) []board.Pos {
	seen := make(map[board.Pos]struct{})
	var marked []board.Pos
	for _, c := range p.Cells() {
		for row := max(0, c.Row-r.Before); row <= min(b.Rows()-1, c.Row+r.After); row++ {
			for col := max(0, c.Col-r.Before); col <= min(b.Cols()-1, c.Col+r.After); col++ {
				pos := board.Pos{Row: row, Col: col}
				if _, dup := seen[pos]; dup || !b.Occupied(row, col) {
					continue
				}
				seen[pos] = struct{}{}
				marked = append(marked, pos)
			}
		}
	}
	return marked
}
