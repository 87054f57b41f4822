package loop

import (
	"strings"
	"testing"
	"time"

	"github.com/tomz197/balloonpop/internal/audio"
	"github.com/tomz197/balloonpop/internal/game"
	"github.com/tomz197/balloonpop/internal/input"
	"github.com/tomz197/balloonpop/internal/ui"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	played []audio.Sound
}

func (r *recorder) Play(s audio.Sound) { r.played = append(r.played, s) }
func (r *recorder) Close()             {}

func newTestGame(t *testing.T, opts Options) (*Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	opts.Now = clock.now
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	g := NewGame(opts)
	g.Session().Resize(480, 320)
	return g, clock
}

// identity treats terminal cells as logical coordinates.
func identity(col, row int) (float64, float64, bool) {
	return float64(col), float64(row), true
}

func outside(int, int) (float64, float64, bool) {
	return 0, 0, false
}

func key(b byte) input.Input {
	return input.ParseComplete([]byte{b})
}

func TestConfirmFollowsPanel(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	s := g.Session()

	g.Apply(key(' '), identity)
	if s.Phase() != game.PhaseRunning {
		t.Fatalf("space on start panel: phase = %v, want running", s.Phase())
	}

	g.Apply(key('p'), identity)
	if s.Phase() != game.PhasePaused {
		t.Fatalf("p while running: phase = %v, want paused", s.Phase())
	}
	g.Apply(key('\r'), identity)
	if s.Phase() != game.PhaseRunning {
		t.Fatalf("enter while paused: phase = %v, want running", s.Phase())
	}
}

func TestRestartOnlyFromPanels(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	s := g.Session()
	g.Apply(key(' '), identity)
	g.Apply(input.Input{Clicks: []input.Click{{Col: 1, Row: 1}}}, identity)

	g.Apply(key('r'), identity)
	if s.Stats().LevelClicks != 1 {
		t.Fatalf("r while running restarted the level")
	}

	g.Apply(key('p'), identity)
	g.Apply(key('r'), identity)
	if s.Phase() != game.PhaseRunning || s.Stats().LevelClicks != 0 {
		t.Fatalf("r while paused: phase = %v clicks = %d", s.Phase(), s.Stats().LevelClicks)
	}
}

func TestMenuFromPause(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	s := g.Session()
	g.Apply(key(' '), identity)

	g.Apply(key('m'), identity)
	if s.Phase() != game.PhaseRunning {
		t.Fatalf("m while running left the level")
	}
	g.Apply(key('\x1b'), identity)
	g.Apply(key('m'), identity)
	if s.Phase() != game.PhaseStart {
		t.Fatalf("m while paused: phase = %v, want start", s.Phase())
	}
}

func TestClicks(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	s := g.Session()
	click := input.Input{Clicks: []input.Click{{Col: 1, Row: 1}}}

	g.Apply(click, identity)
	if s.Stats().LevelClicks != 0 {
		t.Fatalf("click on the start panel counted")
	}

	g.Apply(key(' '), identity)
	g.Apply(click, outside)
	if s.Stats().LevelClicks != 0 {
		t.Fatalf("click outside the field counted")
	}
	g.Apply(click, identity)
	if s.Stats().LevelClicks != 1 {
		t.Fatalf("LevelClicks = %d, want 1", s.Stats().LevelClicks)
	}

	g.Apply(key('p'), identity)
	g.Apply(click, identity)
	if s.Stats().LevelClicks != 1 {
		t.Fatalf("click while paused counted")
	}
}

func TestQuit(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Apply(key('q'), identity)
	if g.Running() {
		t.Fatalf("q did not stop the game")
	}
}

func TestUpdatePlaysSounds(t *testing.T) {
	rec := &recorder{}
	g, _ := newTestGame(t, Options{Audio: rec})
	g.Apply(key(' '), identity)
	g.Apply(input.Input{Clicks: []input.Click{{Col: 1, Row: 1}}}, identity)

	g.Update(0)
	if len(rec.played) != 1 || rec.played[0] != audio.SoundMiss {
		t.Fatalf("played %v, want a single miss", rec.played)
	}
}

func TestIdleWarningAndDisconnect(t *testing.T) {
	g, clock := newTestGame(t, Options{IdleWarn: 90 * time.Second, IdleDisconnect: 120 * time.Second})
	s := g.Session()
	g.Apply(key(' '), identity)

	clock.advance(91 * time.Second)
	g.Update(time.Second / 60)
	if !g.Idle() {
		t.Fatalf("no warning after 91s")
	}
	if !s.Paused() {
		t.Fatalf("warning did not pause the level")
	}
	if got := g.IdleRemaining(); got != 29*time.Second {
		t.Fatalf("IdleRemaining = %v, want 29s", got)
	}
	block, kind := g.Overlay(ui.Plain())
	if kind != OverlayIdle || !strings.Contains(block, "INACTIVITY WARNING") {
		t.Fatalf("overlay = %v %q", kind, block)
	}

	// The dismissing key is swallowed; the level stays paused.
	g.Apply(key('p'), identity)
	if g.Idle() || !s.Paused() {
		t.Fatalf("after dismiss: idle = %v paused = %v", g.Idle(), s.Paused())
	}

	clock.advance(121 * time.Second)
	g.Update(time.Second / 60)
	if g.Running() {
		t.Fatalf("still running after 121s without input")
	}
}

func TestIdleDisabled(t *testing.T) {
	g, clock := newTestGame(t, Options{})
	clock.advance(time.Hour)
	g.Update(time.Second / 60)
	if g.Idle() || !g.Running() {
		t.Fatalf("idle handling ran with zero durations")
	}
}

func TestShutdownNotice(t *testing.T) {
	ch := make(chan struct{})
	g, clock := newTestGame(t, Options{Shutdown: ch, ShutdownGrace: 10 * time.Second})
	s := g.Session()
	g.Apply(key(' '), identity)

	g.Update(0)
	if g.ShuttingDown() {
		t.Fatalf("shutting down before the signal")
	}

	close(ch)
	g.Update(0)
	if !g.ShuttingDown() || !s.Paused() {
		t.Fatalf("shutdown signal ignored")
	}
	block, kind := g.Overlay(ui.Plain())
	if kind != OverlayShutdown || !strings.Contains(block, "Disconnecting in 10 seconds") {
		t.Fatalf("overlay = %v %q", kind, block)
	}

	g.Apply(key(' '), identity)
	if !s.Paused() {
		t.Fatalf("input resumed the game during shutdown")
	}

	clock.advance(10 * time.Second)
	g.Update(0)
	if g.Running() {
		t.Fatalf("still running after the grace period")
	}
}

func TestOverlayFollowsModal(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	theme := ui.Plain()

	if _, kind := g.Overlay(theme); kind != OverlayPanel {
		t.Fatalf("start screen overlay = %v, want panel", kind)
	}
	g.Apply(key(' '), identity)
	if block, kind := g.Overlay(theme); kind != OverlayNone || block != "" {
		t.Fatalf("running overlay = %v %q, want none", kind, block)
	}
}
