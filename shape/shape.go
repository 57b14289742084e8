// Package shape holds the immutable piece catalog and the rotation transform.
package shape

import "image/color"

//go:generate go tool stringer -type=Kind

// Kind identifies one entry of the piece catalog.
type Kind uint8

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
	Bomb
)

// Tetrominoes lists the seven regular kinds in catalog order.
var Tetrominoes = []Kind{I, J, L, O, S, T, Z}

// Matrix is a square occupancy grid, indexed [row][col].
type Matrix [][]bool

var templates = map[Kind][][]uint8{
	I: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	J: {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	L: {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
	O: {
		{1, 1},
		{1, 1},
	},
	S: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	T: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	Z: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
	Bomb: {
		{1},
	},
}

var palette = map[Kind]color.RGBA{
	I:    {0x5d, 0xd7, 0xff, 0xff},
	J:    {0x4f, 0x6d, 0xff, 0xff},
	L:    {0xff, 0x9f, 0x4a, 0xff},
	O:    {0xff, 0xd9, 0x4a, 0xff},
	S:    {0x70, 0xe0, 0x7b, 0xff},
	T:    {0xb1, 0x75, 0xff, 0xff},
	Z:    {0xff, 0x6e, 0x6e, 0xff},
	Bomb: {0xf2, 0xf2, 0xf2, 0xff},
}

// Matrix returns a fresh copy of the kind's spawn orientation.
// The zero Kind yields an empty matrix.
func (k Kind) Matrix() Matrix {
	tpl, ok := templates[k]
	if !ok {
		return Matrix{}
	}
	m := make(Matrix, len(tpl))
	for y, row := range tpl {
		m[y] = make([]bool, len(row))
		for x, v := range row {
			m[y][x] = v != 0
		}
	}
	return m
}

// Color is the canonical render colour for the kind.
func (k Kind) Color() color.RGBA {
	return palette[k]
}

// Valid reports whether k is part of the catalog.
func (k Kind) Valid() bool {
	_, ok := templates[k]
	return ok
}

// Rotate returns m turned 90 degrees clockwise. Non-square input is
// returned as an unrotated copy.
func Rotate(m Matrix) Matrix {
	size := len(m)
	if !m.Square() {
		return m.Clone()
	}

	rotated := make(Matrix, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for y := range size {
		for x := range size {
			rotated[x][size-1-y] = m[y][x]
		}
	}

	return rotated
}

// Square reports whether every row has as many cells as there are rows.
func (m Matrix) Square() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

// Width is the column count of the first row; all catalog matrices are square.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for y, row := range m {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(other[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells calls fn with the offset of every occupied cell, row by row.
// Iteration stops early when fn returns false.
func (m Matrix) Cells(fn func(dy, dx int) bool) {
	for y, row := range m {
		for x, v := range row {
			if v && !fn(y, x) {
				return
			}
		}
	}
}

// Count is the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	m.Cells(func(int, int) bool {
		n++
		return true
	})
	return n
}
