// Package audio plays game cues as short synthesized tones through beep.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/plus3/zonefall/game"
)

const sampleRate = beep.SampleRate(44100)

type Wave uint8

const (
	Sine Wave = iota
	Square
	Triangle
	Sawtooth
)

// Tone is one cue's sound: a single oscillator whose gain decays
// exponentially to silence over Duration.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Gain     float64
}

// Tones maps each cue to its sound.
var Tones = map[game.Cue]Tone{
	game.CueMove:     {Freq: 220, Duration: 50 * time.Millisecond, Wave: Square, Gain: 0.03},
	game.CueRotate:   {Freq: 330, Duration: 70 * time.Millisecond, Wave: Triangle, Gain: 0.05},
	game.CueDrop:     {Freq: 120, Duration: 120 * time.Millisecond, Wave: Sawtooth, Gain: 0.07},
	game.CueLock:     {Freq: 180, Duration: 80 * time.Millisecond, Wave: Square, Gain: 0.04},
	game.CueLine:     {Freq: 520, Duration: 150 * time.Millisecond, Wave: Triangle, Gain: 0.08},
	game.CueBoom:     {Freq: 90, Duration: 350 * time.Millisecond, Wave: Sawtooth, Gain: 0.1},
	game.CueStart:    {Freq: 440, Duration: 120 * time.Millisecond, Wave: Sine, Gain: 0.06},
	game.CueGameOver: {Freq: 120, Duration: 400 * time.Millisecond, Wave: Sawtooth, Gain: 0.09},
}

// oscillator produces an endless non-sine waveform.
type oscillator struct {
	wave  Wave
	step  float64
	phase float64
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Triangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		case Sawtooth:
			v = 2*o.phase - 1
		}
		samples[i][0], samples[i][1] = v, v
		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay multiplies its source by gain * floor^(t/length), ending the stream
// after length samples.
type decay struct {
	src    beep.Streamer
	gain   float64
	ratio  float64
	pos    int
	length int
}

const silence = 0.001

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	if d.pos >= d.length {
		return 0, false
	}
	samples = samples[:min(len(samples), d.length-d.pos)]
	n, ok := d.src.Stream(samples)
	for i := range n {
		v := d.gain * math.Pow(d.ratio, float64(d.pos)/float64(d.length))
		samples[i][0] *= v
		samples[i][1] *= v
		d.pos++
	}
	return n, ok || n > 0
}

func (d *decay) Err() error { return d.src.Err() }

// Streamer renders t at sr.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	var src beep.Streamer
	if t.Wave == Sine {
		s, err := generators.SineTone(sr, t.Freq)
		if err != nil {
			return nil, fmt.Errorf("sine tone %vHz: %w", t.Freq, err)
		}
		src = s
	} else {
		if t.Freq <= 0 || t.Freq >= float64(sr)/2 {
			return nil, fmt.Errorf("tone frequency %vHz out of range", t.Freq)
		}
		src = &oscillator{wave: t.Wave, step: t.Freq / float64(sr)}
	}
	return &decay{
		src:    src,
		gain:   t.Gain,
		ratio:  silence / t.Gain,
		length: sr.N(t.Duration),
	}, nil
}
