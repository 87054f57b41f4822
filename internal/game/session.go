// Package game implements the balloon pop rules: the per-frame simulation,
// hit testing, scoring and the session state machine.
//
// A Session is not safe for concurrent use; frontends drive it from a single
// frame loop and feed it input between frames.
package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/balloonpop/internal/level"
	"github.com/tomz197/balloonpop/internal/object"
)

// HighScoreStore persists the best score between runs.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// Options configures a Session. Zero values pick sensible defaults.
type Options struct {
	Levels level.Table
	Rand   *rand.Rand
	Store  HighScoreStore
	Logger *log.Logger
	Bounds object.Bounds
}

// Session owns all game state. All mutation goes through its methods.
type Session struct {
	levels level.Table
	rng    *rand.Rand
	store  HighScoreStore
	logger *log.Logger
	bounds object.Bounds

	phase      Phase
	stats      Stats
	summary    Summary
	spawnTimer float64

	balloons  []*object.Balloon
	particles []*object.Particle
	labels    []*object.Label

	events []Event
}

// New creates a session on the start screen. The high score is read from
// the store; a missing or unreadable value counts as 0.
func New(opts Options) *Session {
	s := &Session{
		levels: opts.Levels,
		rng:    opts.Rand,
		store:  opts.Store,
		logger: opts.Logger,
		bounds: opts.Bounds,
	}
	if len(s.levels) == 0 {
		s.levels = level.Default
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	if s.store != nil {
		high, err := s.store.Load()
		if err != nil {
			s.logger.Warn("failed to load high score", "err", err)
			high = 0
		}
		s.stats.HighScore = max(high, 0)
	}

	s.ResetGame()
	s.emit(Event{Type: EventModal, Modal: s.Modal()})
	return s
}

// Phase returns the current game phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Modal returns the panel that should be visible.
func (s *Session) Modal() Modal {
	return s.phase.Modal()
}

// Running reports whether a level is in progress, paused or not.
func (s *Session) Running() bool {
	return s.phase == PhaseRunning || s.phase == PhasePaused
}

// Paused reports whether gameplay is frozen by the player.
func (s *Session) Paused() bool {
	return s.phase == PhasePaused
}

// GameOver reports whether the player has run out of lives.
func (s *Session) GameOver() bool {
	return s.phase == PhaseGameOver
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Summary returns the content of the most recent panel.
func (s *Session) Summary() Summary {
	return s.summary
}

// Level returns the active level configuration.
func (s *Session) Level() level.Config {
	return s.levels.At(s.stats.Level)
}

// Bounds returns the play field size.
func (s *Session) Bounds() object.Bounds {
	return s.bounds
}

// Resize changes the play field size. Balloons are brought back inside
// the new bounds on their next simulation step.
func (s *Session) Resize(width, height float64) {
	s.bounds = object.Bounds{Width: width, Height: height}
}

// HUD returns the current heads-up display fields.
func (s *Session) HUD() HUD {
	cfg := s.Level()
	return HUD{
		Score:     s.stats.Score,
		Level:     s.stats.Level,
		LevelName: cfg.Name,
		Lives:     s.stats.Lives,
		Popped:    s.stats.LevelPopped,
		Target:    cfg.Target,
		Accuracy:  Accuracy(s.stats.LevelPopped, s.stats.LevelClicks),
		Combo:     s.stats.Combo,
		HighScore: s.stats.HighScore,
	}
}

// Frame returns a read-only snapshot for rendering.
func (s *Session) Frame() Frame {
	return Frame{
		Bounds:    s.bounds,
		Level:     s.Level(),
		Phase:     s.phase,
		Balloons:  s.balloons,
		Particles: s.particles,
		Labels:    s.labels,
		Combo:     s.stats.Combo,
	}
}

// Events returns and clears the pending notifications.
func (s *Session) Events() []Event {
	ev := s.events
	s.events = nil
	return ev
}

// ResetGame restores every cumulative counter to its initial value and
// returns to the start screen. The high score is kept.
func (s *Session) ResetGame() {
	high := s.stats.HighScore
	s.stats = Stats{
		Level:     1,
		Lives:     InitialLives,
		HighScore: high,
	}
	s.summary = Summary{}
	s.spawnTimer = 0
	s.clearEntities()
	s.setPhase(PhaseStart)
	s.emitHUD()
}

// StartLevel begins the current level with fresh per-level counters.
func (s *Session) StartLevel() {
	s.stats.LevelPopped = 0
	s.stats.LevelClicks = 0
	s.stats.Combo = 0
	s.stats.ComboTimer = 0
	s.spawnTimer = 0
	s.clearEntities()
	s.setPhase(PhaseRunning)
	s.emitHUD()
	s.logger.Debug("level started", "level", s.stats.Level, "name", s.Level().Name)
}

// StartGame resets the session and starts level 1.
// Used by the start, play-again and restart actions.
func (s *Session) StartGame() {
	s.ResetGame()
	s.StartLevel()
}

// Restart is StartGame; it is valid from any phase.
func (s *Session) Restart() {
	s.StartGame()
}

// Pause freezes a running level. It has no effect in other phases.
func (s *Session) Pause() {
	if s.phase != PhaseRunning {
		return
	}
	s.summary = Summary{
		Score:       s.stats.Score,
		Level:       s.stats.Level,
		Lives:       s.stats.Lives,
		TotalPopped: s.stats.TotalPopped,
	}
	s.setPhase(PhasePaused)
}

// Resume continues a paused level. It has no effect in other phases.
func (s *Session) Resume() {
	if s.phase != PhasePaused {
		return
	}
	s.setPhase(PhaseRunning)
}

// TogglePause pauses a running level or resumes a paused one.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.Pause()
	case PhasePaused:
		s.Resume()
	}
}

// NextLevel advances from the level-complete panel to the following level.
func (s *Session) NextLevel() {
	if s.phase != PhaseLevelComplete {
		return
	}
	s.stats.Level++
	s.StartLevel()
}

// MainMenu resets the session and shows the start panel.
func (s *Session) MainMenu() {
	s.ResetGame()
}

// Update is the per-frame callback: the simulation advances only while
// running, floating labels age regardless.
func (s *Session) Update(dt float64) {
	dt = capDelta(dt)
	if s.phase == PhaseRunning {
		s.Tick(dt)
	}
	s.tickLabels(dt)
}

func (s *Session) setPhase(p Phase) {
	prev := s.phase.Modal()
	s.phase = p
	if m := p.Modal(); m != prev {
		s.emit(Event{Type: EventModal, Modal: m, Summary: s.summary})
	}
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

func (s *Session) emitHUD() {
	s.emit(Event{Type: EventHUD, HUD: s.HUD()})
}

func (s *Session) clearEntities() {
	s.particles = object.ReleaseAll(s.particles)
	clear(s.balloons)
	s.balloons = s.balloons[:0]
}
