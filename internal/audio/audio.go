// Package audio synthesizes the game's sound effects. Playing them on a
// device lives in the speaker subpackage so hosts without one stay free of
// the native audio backend.
package audio

import (
	"github.com/gopxl/beep"
	"github.com/tomz197/balloonpop/internal/game"
)

// SampleRate is the rate the effects are rendered at for playback.
const SampleRate = beep.SampleRate(44100)

// Sound identifies a sound effect.
type Sound int

const (
	SoundPop Sound = iota
	SoundGolden
	SoundMiss
	SoundEscape
	SoundLevelComplete
	SoundGameOver
)

// Player plays sound effects without blocking.
type Player interface {
	Play(Sound)
	Close()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Sound) {}
func (Nop) Close()     {}

// ForEvent picks the sound for a session event, if it has one.
func ForEvent(ev game.Event) (Sound, bool) {
	switch ev.Type {
	case game.EventPop:
		if ev.Pop.LevelComplete {
			return SoundLevelComplete, true
		}
		if ev.Pop.Golden {
			return SoundGolden, true
		}
		return SoundPop, true
	case game.EventMiss:
		return SoundMiss, true
	case game.EventEscape:
		return SoundEscape, true
	case game.EventModal:
		if ev.Modal == game.ModalGameOver {
			return SoundGameOver, true
		}
	}
	return 0, false
}
