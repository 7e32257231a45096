package tui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Sounder plays short cues for board events.
type Sounder interface {
	Found()
	Completed()
}

// Silent plays nothing.
type Silent struct{}

func (Silent) Found()     {}
func (Silent) Completed() {}

const sampleRate = beep.SampleRate(44100)

// Speaker plays sine tones on the default audio device.
type Speaker struct {
	mu sync.Mutex
}

// NewSpeaker opens the audio device. Callers typically fall back to Silent
// when it fails (no device, headless session).
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{}, nil
}

// Found plays a short A5 blip.
func (s *Speaker) Found() {
	s.play(tone(880, 80*time.Millisecond))
}

// Completed plays a rising three-note chime.
func (s *Speaker) Completed() {
	s.play(beep.Seq(
		tone(659.25, 120*time.Millisecond),
		tone(783.99, 120*time.Millisecond),
		tone(1046.5, 240*time.Millisecond),
	))
}

// Close releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Clear()
	speaker.Close()
}

func (s *Speaker) play(st beep.Streamer) {
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Play(st)
}

// tone is a sine wave of freq Hz lasting d, or nil if freq is invalid.
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return beep.Take(sampleRate.N(d), sine)
}
