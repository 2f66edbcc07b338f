// Package audio synthesizes all game sounds at runtime; there are no
// sample assets. Streamers are generated per effect and mixed into a
// single speaker stream.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave of fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite streamer producing the given wave.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep generates a sine whose frequency glides from start to end over the
// duration. Used for laser and falling-pitch effects.
type sweep struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	rate      beep.SampleRate
}

// NewSweep creates a finite frequency-glide streamer.
func NewSweep(startFreq, endFreq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		rate:      rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, false
		}

		t := float64(s.position) / float64(s.duration)
		freq := s.startFreq + (s.endFreq-s.startFreq)*t

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase = s.phase - math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes the streamer with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps the streamer in a volume effect. math.Log2(0) is -Inf,
// so zero volume is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound effect generators.

// LaserSound is a quick descending zap.
func LaserSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const dur = 90 * time.Millisecond
	s := NewSweep(1400, 300, dur, rate)
	shaped := NewEnvelope(s, dur, 2*time.Millisecond, 40*time.Millisecond, rate)
	return newVolume(shaped, vol)
}

// CannonSound is a short low square-wave thump.
func CannonSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const dur = 150 * time.Millisecond
	osc := NewOscillator(90, dur, WaveSquare, rate)
	shaped := NewEnvelope(osc, dur, 2*time.Millisecond, 100*time.Millisecond, rate)
	return newVolume(shaped, vol)
}

// ExplosionSound mixes noise with a low rumble.
func ExplosionSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const dur = 400 * time.Millisecond
	noise := NewOscillator(0, dur, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, dur, 5*time.Millisecond, 300*time.Millisecond, rate)

	rumble := NewOscillator(55, dur, WaveSine, rate)
	rumbleShaped := NewEnvelope(rumble, dur, 5*time.Millisecond, 300*time.Millisecond, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.6),
		newVolume(rumbleShaped, 0.4),
	)
	return newVolume(mixed, vol)
}

// PickupSound is a two-note rising chime.
func PickupSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const noteDur = 70 * time.Millisecond

	n1 := NewOscillator(987.77, noteDur, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, noteDur, 2*time.Millisecond, 30*time.Millisecond, rate)

	n2 := NewOscillator(1318.51, noteDur, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, noteDur, 2*time.Millisecond, 40*time.Millisecond, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), vol)
}

// GameOverSound is a slow falling sweep.
func GameOverSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const dur = 900 * time.Millisecond
	s := NewSweep(440, 110, dur, rate)
	shaped := NewEnvelope(s, dur, 10*time.Millisecond, 400*time.Millisecond, rate)
	return newVolume(shaped, vol)
}
