// Package speaker plays sound effects on the local audio device.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	device "github.com/gopxl/beep/speaker"
	"github.com/tomz197/balloonpop/internal/audio"
)

// Speaker mixes effects onto the audio device. It implements audio.Player.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// New initializes the audio device.
func New() (*Speaker, error) {
	mixer := &beep.Mixer{}
	rate := audio.SampleRate
	if err := device.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	device.Play(mixer)
	return &Speaker{mixer: mixer}, nil
}

func (s *Speaker) Play(snd audio.Sound) {
	st := audio.Streamer(snd, audio.SampleRate)
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	device.Lock()
	s.mixer.Add(st)
	device.Unlock()
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	device.Clear()
}

var _ audio.Player = (*Speaker)(nil)
