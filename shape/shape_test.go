package shape_test

import (
	"fmt"
	"testing"

	"github.com/plus3/zonefall/shape"
	"github.com/stretchr/testify/assert"
)

func TestRotateFourTimesIsIdentity(t *testing.T) {
	kinds := append([]shape.Kind{shape.Bomb}, shape.Tetrominoes...)
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			start := kind.Matrix()
			m := start
			for range 4 {
				m = shape.Rotate(m)
			}
			assert.True(t, start.Equal(m))
		})
	}
}

func TestRotateClockwise(t *testing.T) {
	got := shape.Rotate(shape.T.Matrix())
	want := shape.Matrix{
		{false, true, false},
		{false, true, true},
		{false, true, false},
	}
	assert.True(t, want.Equal(got), "got %v", got)

	vertical := shape.Rotate(shape.I.Matrix())
	for y := range 4 {
		assert.True(t, vertical[y][2])
		assert.False(t, vertical[y][0])
	}
}

func TestRotateKeepsCellCount(t *testing.T) {
	for _, kind := range shape.Tetrominoes {
		m := kind.Matrix()
		assert.Equal(t, 4, m.Count(), kind.String())
		assert.Equal(t, 4, shape.Rotate(m).Count(), kind.String())
	}
	assert.Equal(t, 1, shape.Bomb.Matrix().Count())
}

func TestRotateNonSquareIsCopy(t *testing.T) {
	m := shape.Matrix{{true, true, false}}
	r := shape.Rotate(m)
	assert.True(t, m.Equal(r))

	r[0][0] = false
	assert.True(t, m[0][0], "rotation must not alias its input")
}

func TestMatrixReturnsFreshCopy(t *testing.T) {
	a := shape.O.Matrix()
	a[0][0] = false

	b := shape.O.Matrix()
	assert.True(t, b[0][0])
}

func TestCatalog(t *testing.T) {
	assert.False(t, shape.None.Valid())
	assert.Empty(t, shape.None.Matrix())
	assert.True(t, shape.Bomb.Valid())
	assert.Equal(t, "Bomb", shape.Bomb.String())
	assert.Equal(t, "Kind(42)", shape.Kind(42).String())
	assert.NotEqual(t, shape.I.Color(), shape.Z.Color())
}

func ExampleRotate() {
	m := shape.L.Matrix()
	for range 2 {
		m = shape.Rotate(m)
	}
	for _, row := range m {
		for _, v := range row {
			if v {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
	// Output:
	// ...
	// ###
	// #..
}
