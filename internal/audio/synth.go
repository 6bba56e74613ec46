package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a raw wave. A negative length runs forever.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a wave of the given frequency lasting d. Pass a
// negative d for an endless tone.
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	length := -1
	if d >= 0 {
		length = rate.N(d)
	}
	return &oscillator{freq: freq, length: length, wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.length >= 0 && o.position >= o.length {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over the last release of d.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rest := e.total - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly. math.Log2(0) is -Inf, so 0 means silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	clickDuration = 40 * time.Millisecond
	humFreq       = 50.0
	humLevel      = 0.08
)

// newClick is the snap of the lever hitting its stop: a noise burst over a
// short high tone.
func newClick(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, clickDuration, WaveNoise, rate), clickDuration, time.Millisecond, 30*time.Millisecond, rate)
	tone := NewEnvelope(NewOscillator(1800, clickDuration, WaveSquare, rate), clickDuration, time.Millisecond, 35*time.Millisecond, rate)
	return withVolume(beep.Mix(withVolume(noise, 0.6), withVolume(tone, 0.25)), vol)
}

// newHum is mains hum with its first harmonic. It never ends.
func newHum(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Mix(
		withVolume(NewOscillator(humFreq, -1, WaveSine, rate), 0.7),
		withVolume(NewOscillator(2*humFreq, -1, WaveSine, rate), 0.3),
	), humLevel*vol)
}
