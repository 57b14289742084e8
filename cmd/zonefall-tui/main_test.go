package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/zonefall/game"
)

func TestPlayerCountStopsAtKeymap(t *testing.T) {
	assert.Equal(t, 3, keymap.Players())

	engine, err := game.New(game.DefaultConfig(), game.WithSeed(1))
	require.NoError(t, err)
	for range 5 {
		snap := engine.Snapshot()
		assert.True(t, control(engine, &snap, runeKey('+')))
		engine.Tick(0)
	}
	assert.Len(t, engine.Snapshot().Players, 3)
}
