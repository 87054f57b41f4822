package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave of fixed length, optionally sliding
// linearly from freq to endFreq.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	duration      int
	position      int
	wave          WaveType
	rate          beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
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

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s, which is expected to last duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. 0 silences it.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped tone.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Effect durations.
const (
	popDuration   = 90 * time.Millisecond
	chimeNote     = 80 * time.Millisecond
	missDuration  = 70 * time.Millisecond
	escapeNote    = 120 * time.Millisecond
	fanfareNote   = 110 * time.Millisecond
	gameOverNote  = 220 * time.Millisecond
	effectsVolume = 0.35
)

// Streamer builds a fresh streamer for a sound.
func Streamer(snd Sound, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch snd {
	case SoundPop:
		body := NewEnvelope(NewSweep(720, 280, popDuration, WaveSine, rate), popDuration, 2*time.Millisecond, popDuration*2/3, rate)
		snap := NewEnvelope(NewOscillator(0, popDuration/3, WaveNoise, rate), popDuration/3, 0, popDuration/3, rate)
		s = beep.Take(rate.N(popDuration), beep.Mix(newVolume(body, 0.8), newVolume(snap, 0.4)))
	case SoundGolden:
		s = beep.Seq(
			note(987.77, chimeNote, WaveSquare, rate),
			note(1318.51, chimeNote*2, WaveSquare, rate),
		)
		s = newVolume(s, 0.5)
	case SoundMiss:
		s = newVolume(note(110, missDuration, WaveSaw, rate), 0.4)
	case SoundEscape:
		s = beep.Seq(
			note(440, escapeNote, WaveSine, rate),
			note(330, escapeNote, WaveSine, rate),
		)
	case SoundLevelComplete:
		s = beep.Seq(
			note(523.25, fanfareNote, WaveSquare, rate),
			note(659.25, fanfareNote, WaveSquare, rate),
			note(783.99, fanfareNote, WaveSquare, rate),
			note(1046.5, fanfareNote*2, WaveSquare, rate),
		)
		s = newVolume(s, 0.5)
	case SoundGameOver:
		s = beep.Seq(
			note(392, gameOverNote, WaveSaw, rate),
			note(329.63, gameOverNote, WaveSaw, rate),
			note(261.63, gameOverNote*2, WaveSaw, rate),
		)
		s = newVolume(s, 0.5)
	default:
		return nil
	}
	return newVolume(s, effectsVolume)
}
