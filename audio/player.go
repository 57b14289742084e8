package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/game"
)

// Player is a game.CueSink that mixes cue tones onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	log         *zap.Logger
}

func NewPlayer(log *zap.Logger) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
		log:    log,
	}
}

// Initialize opens the speaker. Until it succeeds Play does nothing.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.volume)
	p.initialized = true
	return nil
}

// SetVolume scales all output; 0 mutes.
func (p *Player) SetVolume(v float64) {
	speaker.Lock()
	defer speaker.Unlock()
	if v <= 0 {
		p.volume.Silent = true
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(v)
}

// Play starts c's tone without waiting for it.
func (p *Player) Play(c game.Cue) {
	p.mu.Lock()
	ready := p.initialized
	p.mu.Unlock()
	if !ready {
		return
	}
	p.add(c)
}

func (p *Player) add(c game.Cue) {
	tone, ok := Tones[c]
	if !ok {
		return
	}
	s, err := tone.Streamer(sampleRate)
	if err != nil {
		p.log.Warn("cue tone", zap.Stringer("cue", c), zap.Error(err))
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Active is the number of tones still sounding.
func (p *Player) Active() int {
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

// Close silences everything and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

var _ game.CueSink = (*Player)(nil)
