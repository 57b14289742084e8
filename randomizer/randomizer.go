// Package randomizer provides the shape draw policies used when spawning.
package randomizer

import (
	"math/rand/v2"

	"github.com/plus3/zonefall/shape"
	"github.com/plus3/zonefall/zone"
)

// Randomizer hands out the next shape for one player.
type Randomizer interface {
	Next() shape.Kind
}

// StandardBag deals every tetromino once per shuffled bag, refilling when
// the bag runs out.
type StandardBag struct {
	rng *rand.Rand
	bag []shape.Kind
}

func NewStandardBag(rng *rand.Rand) *StandardBag {
	return &StandardBag{rng: rng}
}

func (b *StandardBag) Next() shape.Kind {
	if len(b.bag) == 0 {
		b.refill()
	}
	k := b.bag[len(b.bag)-1]
	b.bag = b.bag[:len(b.bag)-1]
	return k
}

// Remaining is the number of shapes left before the next refill.
func (b *StandardBag) Remaining() int {
	return len(b.bag)
}

func (b *StandardBag) refill() {
	b.bag = append(b.bag[:0], shape.Tetrominoes...)
	b.rng.Shuffle(len(b.bag), func(i, j int) {
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	})
}

// ChaosBiasedBag returns a Bomb with probability BombChance on every draw
// and otherwise defers to a StandardBag. Bomb frequency is therefore not
// bounded by the bag's fairness.
type ChaosBiasedBag struct {
	BombChance float64

	rng *rand.Rand
	bag *StandardBag
}

// DefaultBombChance is the flat per-draw bomb probability in chaos mode.
const DefaultBombChance = 0.5

func NewChaosBiasedBag(rng *rand.Rand) *ChaosBiasedBag {
	return &ChaosBiasedBag{
		BombChance: DefaultBombChance,
		rng:        rng,
		bag:        NewStandardBag(rng),
	}
}

func (c *ChaosBiasedBag) Next() shape.Kind {
	if c.rng.Float64() < c.BombChance {
		return shape.Bomb
	}
	return c.bag.Next()
}

// ForMode returns the policy a layout of the given mode uses.
func ForMode(mode zone.Mode, rng *rand.Rand) Randomizer {
	if mode == zone.Chaos {
		return NewChaosBiasedBag(rng)
	}
	return NewStandardBag(rng)
}
