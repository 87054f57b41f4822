package game

import (
	"github.com/tomz197/balloonpop/internal/level"
	"github.com/tomz197/balloonpop/internal/object"
)

// Phase represents the current game phase.
type Phase int

const (
	PhaseStart         Phase = iota // Title screen, waiting for the player
	PhaseRunning                    // Active gameplay
	PhasePaused                     // Gameplay frozen, pause panel shown
	PhaseLevelComplete              // Target reached, waiting to advance
	PhaseGameOver                   // Out of lives
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level-complete"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Modal identifies the panel shown over the play field.
type Modal int

const (
	ModalNone Modal = iota
	ModalStart
	ModalPause
	ModalLevelComplete
	ModalGameOver
)

// Modal returns the single panel visible in this phase.
func (p Phase) Modal() Modal {
	switch p {
	case PhaseStart:
		return ModalStart
	case PhasePaused:
		return ModalPause
	case PhaseLevelComplete:
		return ModalLevelComplete
	case PhaseGameOver:
		return ModalGameOver
	default:
		return ModalNone
	}
}

// Stats holds the session counters.
type Stats struct {
	Score       int
	Level       int // 1-based
	Lives       int
	TotalPopped int
	LevelPopped int
	LevelClicks int
	BestCombo   int
	Combo       int     // Current streak
	ComboTimer  float64 // Seconds left before the streak resets
	HighScore   int
}

// HUD is the set of fields shown in the heads-up display.
type HUD struct {
	Score     int
	Level     int
	LevelName string
	Lives     int
	Popped    int
	Target    int
	Accuracy  int
	Combo     int
	HighScore int
}

// Summary is the content of the pause, level-complete and game-over panels.
type Summary struct {
	Score        int
	Level        int
	Lives        int
	TotalPopped  int
	LevelPopped  int
	Accuracy     int
	Stars        int
	Bonus        int
	BestCombo    int
	HighScore    int
	NewHighScore bool
	NextLevel    string
}

// PopResult describes the outcome of a click.
type PopResult struct {
	Hit           bool
	Golden        bool
	Points        int
	Combo         int
	X, Y          float64 // Click position
	LevelComplete bool
}

// EventType identifies the type of session event.
type EventType int

const (
	EventHUD    EventType = iota // HUD fields changed
	EventModal                   // A different panel must be shown
	EventPop                     // A balloon was popped
	EventMiss                    // A click hit nothing
	EventEscape                  // A balloon got away
)

// Event is an outbound notification for the presentation layer.
type Event struct {
	Type    EventType
	HUD     HUD
	Modal   Modal
	Summary Summary
	Pop     PopResult
}

// Frame is a read-only view of everything the renderer draws.
// The entity slices are owned by the session and must not be modified.
type Frame struct {
	Bounds    object.Bounds
	Level     level.Config
	Phase     Phase
	Balloons  []*object.Balloon
	Particles []*object.Particle
	Labels    []*object.Label
	Combo     int
}

// ShowCombo reports whether the combo banner is visible.
func (f Frame) ShowCombo() bool {
	return f.Combo >= 2 && f.Phase == PhaseRunning
}
