package loop

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/balloonpop/internal/audio"
	"github.com/tomz197/balloonpop/internal/game"
	"github.com/tomz197/balloonpop/internal/input"
	"github.com/tomz197/balloonpop/internal/level"
)

// ToLogical converts a 0-based terminal cell to play field coordinates.
// ok is false when the cell lies outside the play field.
type ToLogical func(col, row int) (x, y float64, ok bool)

// Options configures a Game and the frontends driving it.
type Options struct {
	Store  game.HighScoreStore
	Logger *log.Logger
	Audio  audio.Player
	Levels level.Table
	Seed   uint64 // 0 picks a time-based seed

	FPS            int
	IdleWarn       time.Duration // 0 disables the inactivity warning
	IdleDisconnect time.Duration // 0 disables the idle disconnect

	// Shutdown, when closed, shows the shutdown notice for ShutdownGrace
	// and then ends the loop.
	Shutdown      <-chan struct{}
	ShutdownGrace time.Duration

	Now func() time.Time
}

// Game drives a session for one player: it applies input, advances the
// simulation, plays sounds and tracks inactivity. Frontends own the
// terminal and call Apply, Update and the accessors once per frame.
type Game struct {
	session *game.Session
	audio   audio.Player
	logger  *log.Logger
	now     func() time.Time

	idleWarn       time.Duration
	idleDisconnect time.Duration
	lastInput      time.Time
	idle           bool

	shutdown      <-chan struct{}
	shutdownGrace time.Duration
	shutdownAt    time.Time // Zero until the shutdown signal arrives

	running bool
}

// NewGame creates a game on the start screen.
func NewGame(opts Options) *Game {
	g := &Game{
		audio:          opts.Audio,
		logger:         opts.Logger,
		now:            opts.Now,
		idleWarn:       opts.IdleWarn,
		idleDisconnect: opts.IdleDisconnect,
		shutdown:       opts.Shutdown,
		shutdownGrace:  opts.ShutdownGrace,
		running:        true,
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.lastInput = g.now()

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(g.now().UnixNano())
	}
	g.session = game.New(game.Options{
		Levels: opts.Levels,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Store:  opts.Store,
		Logger: g.logger,
	})
	return g
}

// Session exposes the underlying session for rendering.
func (g *Game) Session() *game.Session {
	return g.session
}

// Running reports whether the loop should keep going.
func (g *Game) Running() bool {
	return g.running
}

// Stop ends the loop after the current frame.
func (g *Game) Stop() {
	g.running = false
}

// Idle reports whether the inactivity warning is showing.
func (g *Game) Idle() bool {
	return g.idle
}

// IdleRemaining returns the time left before an idle disconnect.
func (g *Game) IdleRemaining() time.Duration {
	return g.idleDisconnect - g.now().Sub(g.lastInput)
}

// ShuttingDown reports whether the shutdown notice is showing.
func (g *Game) ShuttingDown() bool {
	return !g.shutdownAt.IsZero()
}

// ShutdownRemaining returns the time left before the shutdown disconnect.
func (g *Game) ShutdownRemaining() time.Duration {
	return g.shutdownAt.Sub(g.now())
}

// Apply handles one frame of input. Clicks are converted with toLogical;
// those falling outside the play field are dropped.
func (g *Game) Apply(in input.Input, toLogical ToLogical) {
	if in.Quit {
		g.running = false
		return
	}
	if !in.Active() {
		return
	}
	g.lastInput = g.now()
	if g.idle {
		// The keypress that dismisses the warning does nothing else.
		g.idle = false
		return
	}
	if g.ShuttingDown() {
		return
	}

	s := g.session
	switch {
	case in.Menu && s.Modal() != game.ModalNone && s.Modal() != game.ModalStart:
		s.MainMenu()
	case in.Restart && (s.Paused() || s.GameOver()):
		s.Restart()
	case in.Pause:
		s.TogglePause()
	case in.Confirm:
		g.confirm()
	}

	for _, c := range in.Clicks {
		if !s.Running() || s.Paused() {
			break
		}
		x, y, ok := toLogical(c.Col, c.Row)
		if !ok {
			continue
		}
		s.Pop(x, y)
	}
}

// confirm presses the primary button of the visible panel.
func (g *Game) confirm() {
	s := g.session
	switch s.Modal() {
	case game.ModalStart, game.ModalGameOver:
		s.StartGame()
	case game.ModalLevelComplete:
		s.NextLevel()
	case game.ModalPause:
		s.Resume()
	}
}

// Update advances the game by dt and handles inactivity and shutdown.
func (g *Game) Update(dt time.Duration) {
	now := g.now()

	if g.shutdown != nil && g.shutdownAt.IsZero() {
		select {
		case <-g.shutdown:
			g.shutdownAt = now.Add(g.shutdownGrace)
			g.session.Pause()
			g.logger.Info("showing shutdown notice", "grace", g.shutdownGrace)
		default:
		}
	}
	if g.ShuttingDown() && !now.Before(g.shutdownAt) {
		g.running = false
		return
	}

	inactive := now.Sub(g.lastInput)
	if g.idleDisconnect > 0 && inactive > g.idleDisconnect {
		g.logger.Info("disconnecting idle player", "inactive", inactive.Round(time.Second))
		g.running = false
		return
	}
	if g.idleWarn > 0 && inactive > g.idleWarn && !g.idle {
		g.idle = true
		g.session.Pause()
	}

	g.session.Update(dt.Seconds())

	for _, ev := range g.session.Events() {
		if snd, ok := audio.ForEvent(ev); ok {
			g.audio.Play(snd)
		}
		if ev.Type == game.EventModal {
			g.logger.Debug("panel changed", "phase", g.session.Phase())
		}
	}
}
