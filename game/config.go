package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/plus3/zonefall/placement"
	"github.com/plus3/zonefall/zone"
)

// ErrInvalidConfig is returned for configurations that clamping cannot fix.
var ErrInvalidConfig = errors.New("invalid config")

const (
	MinPlayers = 2
	MaxPlayers = 16

	MinShiftInterval = 10 * time.Second
	MaxShiftInterval = 180 * time.Second
)

// Config holds every tunable of a run. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Rows     int
	Players  int
	Mode     zone.Mode
	Geometry zone.Geometry

	ShiftInterval  time.Duration
	ShiftAnimation time.Duration

	BombFuse time.Duration
	Blast    placement.BlastRadius

	// LevelStep is the combined score needed per level.
	LevelStep int
	BaseDrop  time.Duration
	DropStep  time.Duration
	MinDrop   time.Duration

	Sound bool
}

func DefaultConfig() Config {
	return Config{
		Rows:           20,
		Players:        2,
		Mode:           zone.Lanes,
		Geometry:       zone.DefaultGeometry,
		ShiftInterval:  30 * time.Second,
		ShiftAnimation: 1200 * time.Millisecond,
		BombFuse:       time.Second,
		Blast:          placement.DefaultBlast,
		LevelStep:      1000,
		BaseDrop:       800 * time.Millisecond,
		DropStep:       60 * time.Millisecond,
		MinDrop:        120 * time.Millisecond,
		Sound:          true,
	}
}

// ClampPlayers limits n to [MinPlayers, MaxPlayers].
func ClampPlayers(n int) int {
	return max(MinPlayers, min(MaxPlayers, n))
}

// ClampShiftInterval limits d to [MinShiftInterval, MaxShiftInterval].
func ClampShiftInterval(d time.Duration) time.Duration {
	return max(MinShiftInterval, min(MaxShiftInterval, d))
}

// Normalize clamps the player count and shift interval and rejects values
// that have no sensible clamp.
func (c Config) Normalize() (Config, error) {
	c.Players = ClampPlayers(c.Players)
	c.ShiftInterval = ClampShiftInterval(c.ShiftInterval)

	switch {
	case c.Rows < 4:
		return c, fmt.Errorf("%w: rows %d, need at least 4", ErrInvalidConfig, c.Rows)
	case c.Geometry.SharedWidth < 1 || c.Geometry.MinExclusiveWidth < 0:
		return c, fmt.Errorf("%w: geometry %+v", ErrInvalidConfig, c.Geometry)
	case c.Geometry.ExclusiveWidth < 4:
		return c, fmt.Errorf("%w: exclusive width %d cannot hold a piece", ErrInvalidConfig, c.Geometry.ExclusiveWidth)
	case c.Mode != zone.Lanes && c.Mode != zone.Chaos:
		return c, fmt.Errorf("%w: mode %d", ErrInvalidConfig, c.Mode)
	case c.LevelStep <= 0:
		return c, fmt.Errorf("%w: level step %d", ErrInvalidConfig, c.LevelStep)
	case c.BaseDrop <= 0 || c.MinDrop <= 0 || c.DropStep < 0:
		return c, fmt.Errorf("%w: drop timing %v/%v/%v", ErrInvalidConfig, c.BaseDrop, c.DropStep, c.MinDrop)
	case c.ShiftAnimation < 0 || c.BombFuse < 0:
		return c, fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	return c, nil
}

// DropInterval is the auto-drop period at level.
func (c Config) DropInterval(level int) time.Duration {
	return max(c.MinDrop, c.BaseDrop-time.Duration(level-1)*c.DropStep)
}
