package zone_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/zonefall/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed rolls in order.
type scripted []int

func (s *scripted) IntN(n int) int {
	v := (*s)[0]
	*s = (*s)[1:]
	return v % n
}

func TestBuildTwoPlayers(t *testing.T) {
	l := zone.Build(2, zone.Lanes, zone.DefaultGeometry)

	assert.Equal(t, 16, l.Cols)
	require.Len(t, l.Shared, 1)
	assert.Equal(t, zone.SharedZone{Start: 6, End: 9}, l.Shared[0])
	assert.Equal(t, zone.Zone{Min: 0, Max: 9}, l.Zone(0))
	assert.Equal(t, zone.Zone{Min: 6, Max: 15}, l.Zone(1))
	assert.Equal(t, l.Zone(1), l.SpawnZone(1))
}

func TestBuildFivePlayers(t *testing.T) {
	l := zone.Build(5, zone.Lanes, zone.DefaultGeometry)
	g := l.Geometry

	assert.Equal(t, 5*6+4*4, l.Cols)
	require.Len(t, l.Shared, 4)

	for i, s := range l.Shared {
		assert.Equal(t, g.SharedWidth, s.End-s.Start+1)

		left := 0
		if i > 0 {
			left = l.Shared[i-1].End + 1
		}
		assert.GreaterOrEqual(t, s.Start-left, g.MinExclusiveWidth)
	}
	last := l.Shared[len(l.Shared)-1]
	assert.GreaterOrEqual(t, l.Cols-1-last.End, g.MinExclusiveWidth)
}

func TestAdjacentZonesShareExactlyTheSharedZone(t *testing.T) {
	l := zone.Build(4, zone.Lanes, zone.DefaultGeometry)
	for i, s := range l.Shared {
		left, right := l.Zone(i), l.Zone(i+1)
		for col := 0; col < l.Cols; col++ {
			both := left.Contains(col) && right.Contains(col)
			inShared := col >= s.Start && col <= s.End
			assert.Equal(t, inShared, both, "zone %d col %d", i, col)
		}
	}
}

func TestChaosZones(t *testing.T) {
	l := zone.Build(3, zone.Chaos, zone.DefaultGeometry)

	assert.Empty(t, l.Shared)
	for p := range 3 {
		assert.Equal(t, l.Full(), l.Zone(p))
	}

	width := l.Cols / 3
	for p := range 3 {
		sz := l.SpawnZone(p)
		assert.Equal(t, width, sz.Width())
		if p > 0 {
			assert.Greater(t, sz.Min, l.SpawnZone(p-1).Max)
		}
	}
	_, ok := l.PickShared(rand.New(rand.NewPCG(1, 1)))
	assert.False(t, ok)
}

func TestStartRangeAndCommit(t *testing.T) {
	l := zone.Build(2, zone.Lanes, zone.DefaultGeometry)
	lo, hi := l.StartRange(0)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 10, hi)

	l.Commit(0, 99)
	assert.Equal(t, zone.SharedZone{Start: 10, End: 13}, l.Shared[0])
	assert.Equal(t, zone.Zone{Min: 0, Max: 13}, l.Zone(0))
	assert.Equal(t, zone.Zone{Min: 10, Max: 15}, l.Zone(1))

	l.Commit(0, -5)
	assert.Equal(t, 2, l.Shared[0].Start)
}

func TestStartRangeRespectsNeighbours(t *testing.T) {
	l := zone.Build(3, zone.Lanes, zone.DefaultGeometry)
	// shared zones at 6-9 and 16-19
	lo, hi := l.StartRange(1)
	assert.Equal(t, 10+2, lo)
	assert.Equal(t, l.Cols-4-2, hi)

	lo, hi = l.StartRange(0)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 16-4-2, hi)
}

func TestShiftTarget(t *testing.T) {
	l := zone.Build(2, zone.Lanes, zone.DefaultGeometry)

	// direction +1, step 2
	d := scripted{1, 1}
	next, ok := l.ShiftTarget(0, &d)
	require.True(t, ok)
	assert.Equal(t, 8, next)

	// direction -1, step 3
	d = scripted{0, 2}
	next, ok = l.ShiftTarget(0, &d)
	require.True(t, ok)
	assert.Equal(t, 3, next)
}

func TestShiftTargetReflects(t *testing.T) {
	l := zone.Build(2, zone.Lanes, zone.DefaultGeometry)
	l.Commit(0, 9)

	// +3 would leave the range (hi = 10); reflected to 6
	d := scripted{1, 2}
	next, ok := l.ShiftTarget(0, &d)
	require.True(t, ok)
	assert.Equal(t, 6, next)
}

func TestShiftTargetDegenerate(t *testing.T) {
	g := zone.DefaultGeometry
	g.MinExclusiveWidth = 4
	g.ExclusiveWidth = 4
	l := zone.Build(2, zone.Lanes, g)

	lo, hi := l.StartRange(0)
	assert.Equal(t, lo, hi)

	d := scripted{1, 0}
	_, ok := l.ShiftTarget(0, &d)
	assert.False(t, ok, "a zone pinned in place never shifts")

	g.MinExclusiveWidth = 5
	l = zone.Build(2, zone.Lanes, g)
	_, ok = l.ShiftTarget(0, &d)
	assert.False(t, ok)
}

func TestShiftTargetAlwaysLegal(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	l := zone.Build(6, zone.Lanes, zone.DefaultGeometry)

	for range 500 {
		i, ok := l.PickShared(rng)
		require.True(t, ok)
		before := l.Shared[i].Start
		next, ok := l.ShiftTarget(i, rng)
		if !ok {
			continue
		}
		lo, hi := l.StartRange(i)
		require.GreaterOrEqual(t, next, lo)
		require.LessOrEqual(t, next, hi)
		require.NotEqual(t, before, next)
		require.LessOrEqual(t, abs(next-before), 3)
		l.Commit(i, next)
	}
}

func TestParseMode(t *testing.T) {
	m, err := zone.ParseMode("Chaos")
	require.NoError(t, err)
	assert.Equal(t, zone.Chaos, m)

	m, err = zone.ParseMode("zoned")
	require.NoError(t, err)
	assert.Equal(t, zone.Lanes, m)

	_, err = zone.ParseMode("tetris")
	assert.Error(t, err)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func ExampleBuild() {
	l := zone.Build(3, zone.Lanes, zone.DefaultGeometry)
	fmt.Println("cols:", l.Cols)
	for p := range l.Players {
		fmt.Printf("player %d: %+v\n", p, l.Zone(p))
	}
	// Output:
	// cols: 26
	// player 0: {Min:0 Max:9}
	// player 1: {Min:6 Max:19}
	// player 2: {Min:16 Max:25}
}
