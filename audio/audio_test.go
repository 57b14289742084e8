package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/game"
)

func render(t *testing.T, tone Tone) [][2]float64 {
	t.Helper()
	s, err := tone.Streamer(sampleRate)
	require.NoError(t, err)
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func TestEveryCueHasATone(t *testing.T) {
	for _, c := range game.Cues {
		tone, ok := Tones[c]
		require.True(t, ok, c.String())
		assert.Greater(t, tone.Gain, 0.0)
		assert.Greater(t, tone.Duration, time.Duration(0))
	}
}

func TestToneLengthAndDecay(t *testing.T) {
	for _, wave := range []Wave{Sine, Square, Triangle, Sawtooth} {
		tone := Tone{Freq: 220, Duration: 100 * time.Millisecond, Wave: wave, Gain: 0.1}
		out := render(t, tone)
		require.Len(t, out, sampleRate.N(tone.Duration))

		peak := func(from, to int) float64 {
			m := 0.0
			for _, s := range out[from:to] {
				m = max(m, math.Abs(s[0]))
			}
			return m
		}
		head := peak(0, 400)
		tail := peak(len(out)-400, len(out))
		assert.LessOrEqual(t, head, 0.1+1e-9)
		assert.Greater(t, head, 0.05, "wave %d", wave)
		assert.Less(t, tail, 0.005, "wave %d", wave)
		for _, s := range out {
			assert.Equal(t, s[0], s[1])
		}
	}
}

func TestToneRejectsBadFrequency(t *testing.T) {
	_, err := Tone{Freq: 0, Duration: time.Millisecond, Wave: Square, Gain: 0.1}.Streamer(sampleRate)
	assert.Error(t, err)
}

func TestPlayerBeforeInitialize(t *testing.T) {
	p := NewPlayer(zap.NewNop())
	p.Play(game.CueBoom)
	assert.Equal(t, 0, p.Active())

	p.add(game.CueBoom)
	p.add(game.CueLine)
	assert.Equal(t, 2, p.Active())
	p.Close()
}

func TestPlayerVolume(t *testing.T) {
	p := NewPlayer(zap.NewNop())
	p.SetVolume(0)
	assert.True(t, p.volume.Silent)

	p.SetVolume(0.5)
	assert.False(t, p.volume.Silent)
	assert.InDelta(t, -1.0, p.volume.Volume, 1e-9)
}
