// Package sound plays short synthesized cues for round events.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Base pitch of a single line clear. Each extra line raises it a major third.
const baseFrequency = 440.0

// Player is safe to use before Init succeeds or on a nil receiver: cues are
// silently dropped.
type Player struct {
	mu    sync.Mutex
	ready bool
	log   *log.Logger
}

func New(logger *log.Logger) *Player {
	return &Player{log: logger}
}

// Init opens the speaker. A failure leaves the player muted.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	p.ready = true
	return nil
}

func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}

// LinesCleared plays one tone, higher for bigger clears.
func (p *Player) LinesCleared(lines int) {
	p.play(Note{Frequency: lineFrequency(lines), Duration: 80 * time.Millisecond})
}

func (p *Player) RoundComplete() {
	p.play(
		Note{Frequency: 523.25, Duration: 90 * time.Millisecond},
		Note{Frequency: 659.25, Duration: 90 * time.Millisecond},
		Note{Frequency: 783.99, Duration: 180 * time.Millisecond},
	)
}

func (p *Player) GameOver() {
	p.play(
		Note{Frequency: 392, Duration: 150 * time.Millisecond},
		Note{Frequency: 311.13, Duration: 150 * time.Millisecond},
		Note{Frequency: 196, Duration: 300 * time.Millisecond},
	)
}

// Note is a sine tone.
type Note struct {
	Frequency float64
	Duration  time.Duration
}

func lineFrequency(lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	return baseFrequency * math.Pow(2, float64(4*(lines-1))/12)
}

func (p *Player) play(notes ...Note) {
	if p == nil {
		return
	}
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return
	}
	s, err := sequence(sampleRate, notes...)
	if err != nil {
		p.log.Warn("sound", "err", err)
		return
	}
	speaker.Play(&effects.Gain{Streamer: s, Gain: -0.7})
}

// sequence renders notes back to back.
func sequence(sr beep.SampleRate, notes ...Note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.Frequency)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sr.N(n.Duration), tone))
	}
	return beep.Seq(parts...), nil
}
