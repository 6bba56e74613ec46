// Package audio gives the circuit its sound: a click when the switch is
// thrown and a mains hum while current flows.
package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	levelWindow       = 2048
)

type Logger interface {
	Infof(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

type Options struct {
	// ClickSample replaces the synthesized click when set.
	ClickSample string
	Volume      float64
	RingSize    int
	// Mute skips opening the audio device. Calls on the player still work.
	Mute bool
}

type Player struct {
	rate   beep.SampleRate
	volume float64
	sample *beep.Buffer
	hum    *beep.Ctrl
	tap    *levelTap
	muted  bool
	log    Logger
}

func NewPlayer(opts Options, log Logger) (*Player, error) {
	p := &Player{
		rate:   DefaultSampleRate,
		volume: opts.Volume,
		muted:  opts.Mute,
		log:    log,
	}
	if opts.RingSize <= 0 {
		opts.RingSize = levelWindow
	}
	if opts.ClickSample != "" {
		buf, err := LoadSample(opts.ClickSample, p.rate)
		if err != nil {
			return nil, fmt.Errorf("click sample: %w", err)
		}
		p.sample = buf
		log.Infof("loaded click sample %s (%d samples)", opts.ClickSample, buf.Len())
	}
	p.tap = newLevelTap(newHum(p.rate, p.volume), opts.RingSize)
	p.hum = &beep.Ctrl{Streamer: p.tap, Paused: true}
	if p.muted {
		log.Infof("audio muted")
		return p, nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.hum)
	return p, nil
}

// click returns a fresh stream for one switch click.
func (p *Player) click() beep.Streamer {
	if p.sample != nil {
		return withVolume(p.sample.Streamer(0, p.sample.Len()), p.volume)
	}
	return newClick(p.rate, p.volume)
}

// SetCircuit plays the switch click and starts or stops the hum.
func (p *Player) SetCircuit(on bool) {
	p.log.Debugf("audio: hum %v", on)
	if p.muted {
		p.hum.Paused = !on
		return
	}
	speaker.Lock()
	p.hum.Paused = !on
	speaker.Unlock()
	if !on {
		p.tap.silence()
	}
	speaker.Play(p.click())
}

// Humming reports whether the hum is playing.
func (p *Player) Humming() bool {
	if p.muted {
		return !p.hum.Paused
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.hum.Paused
}

// Level is the recent loudness of the hum in [0,1].
func (p *Player) Level() float64 {
	return p.tap.level(levelWindow)
}

func (p *Player) Close() {
	if p.muted {
		return
	}
	// Clear takes the speaker lock itself.
	speaker.Clear()
}
