package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Players = 40
	cfg.ShiftInterval = time.Second

	got, err := cfg.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxPlayers, got.Players)
	assert.Equal(t, MinShiftInterval, got.ShiftInterval)

	cfg.Players = -3
	cfg.ShiftInterval = time.Hour
	got, err = cfg.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MinPlayers, got.Players)
	assert.Equal(t, MaxShiftInterval, got.ShiftInterval)

	for name, broken := range map[string]func(*Config){
		"rows":       func(c *Config) { c.Rows = 3 },
		"level step": func(c *Config) { c.LevelStep = 0 },
		"narrow":     func(c *Config) { c.Geometry.ExclusiveWidth = 2 },
		"drop":       func(c *Config) { c.BaseDrop = 0 },
		"mode":       func(c *Config) { c.Mode = 9 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			broken(&cfg)
			_, err := cfg.Normalize()
			assert.ErrorIs(t, err, ErrInvalidConfig)

			_, err = New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDropInterval(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 800*time.Millisecond, cfg.DropInterval(1))
	assert.Equal(t, 740*time.Millisecond, cfg.DropInterval(2))
	assert.Equal(t, 140*time.Millisecond, cfg.DropInterval(12))
	assert.Equal(t, 120*time.Millisecond, cfg.DropInterval(13))
	assert.Equal(t, 120*time.Millisecond, cfg.DropInterval(100))
}

func TestCueNames(t *testing.T) {
	names := make([]string, len(Cues))
	for i, c := range Cues {
		names[i] = c.String()
	}
	assert.Equal(t, []string{"move", "rotate", "drop", "lock", "line", "boom", "start", "gameover"}, names)
	assert.Equal(t, "game over", StatusGameOver.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestPlayerColor(t *testing.T) {
	seen := map[[3]uint8]bool{}
	for i := range 16 {
		c := PlayerColor(i, 16)
		assert.Equal(t, uint8(0xff), c.A)
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	assert.Len(t, seen, 16)
}
