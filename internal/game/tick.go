package game

import (
	"github.com/tomz197/balloonpop/internal/object"
)

// Tick advances the simulation by dt seconds (capped at MaxDelta).
// It does nothing unless a level is running and unpaused.
func (s *Session) Tick(dt float64) {
	if s.phase != PhaseRunning {
		return
	}
	dt = capDelta(dt)

	s.tickCombo(dt)
	s.tickSpawn(dt)
	s.tickBalloons(dt)
	s.tickParticles(dt)
}

// capDelta bounds a frame delta to [0, MaxDelta].
// A long stall (e.g. a suspended terminal) becomes a single capped step.
func capDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	return min(dt, MaxDelta)
}

func (s *Session) tickCombo(dt float64) {
	if s.stats.ComboTimer <= 0 {
		return
	}
	s.stats.ComboTimer -= dt
	if s.stats.ComboTimer <= 0 {
		s.stats.ComboTimer = 0
		s.stats.Combo = 0
		s.emitHUD()
	}
}

func (s *Session) tickSpawn(dt float64) {
	s.spawnTimer -= dt
	if s.spawnTimer > 0 {
		return
	}
	cfg := s.Level()
	s.balloons = append(s.balloons, object.NewBalloon(s.rng, cfg, s.bounds))
	s.spawnTimer = cfg.SpawnInterval * (s.rng.Float64()*(SpawnJitterMax-SpawnJitterMin) + SpawnJitterMin)
}

// tickBalloons moves every active balloon and handles escapes.
// Once the game is over no further balloon is processed, so a single
// tick can never cost more lives than remain.
func (s *Session) tickBalloons(dt float64) {
	for _, b := range s.balloons {
		if !b.Active() {
			continue
		}
		b.Advance(dt, s.bounds)
		if b.OffTop(EscapeLine) {
			b.Escaped = true
			s.escape()
			if s.phase != PhaseRunning {
				break
			}
		}
	}

	// Compact in place, keeping spawn order for hit testing.
	kept := s.balloons[:0]
	for _, b := range s.balloons {
		if b.Active() {
			kept = append(kept, b)
		}
	}
	clear(s.balloons[len(kept):])
	s.balloons = kept
}

func (s *Session) tickParticles(dt float64) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

func (s *Session) tickLabels(dt float64) {
	kept := s.labels[:0]
	for _, l := range s.labels {
		if !l.Update(dt) {
			kept = append(kept, l)
		}
	}
	clear(s.labels[len(kept):])
	s.labels = kept
}

// escape costs a life for a balloon that got away.
func (s *Session) escape() {
	s.stats.Lives--
	s.emit(Event{Type: EventEscape})
	s.emitHUD()
	if s.stats.Lives <= 0 {
		s.stats.Lives = 0
		s.gameOver()
	}
}

// gameOver records the high score and ends the session.
func (s *Session) gameOver() {
	newHigh := s.stats.Score > s.stats.HighScore
	if newHigh {
		s.stats.HighScore = s.stats.Score
		if s.store != nil {
			if err := s.store.Save(s.stats.HighScore); err != nil {
				s.logger.Error("failed to save high score", "score", s.stats.HighScore, "err", err)
			}
		}
	}

	s.summary = Summary{
		Score:        s.stats.Score,
		Level:        s.stats.Level,
		TotalPopped:  s.stats.TotalPopped,
		BestCombo:    s.stats.BestCombo,
		HighScore:    s.stats.HighScore,
		NewHighScore: newHigh,
	}
	s.setPhase(PhaseGameOver)
	s.emitHUD()
	s.logger.Info("game over",
		"score", s.stats.Score, "level", s.stats.Level,
		"popped", s.stats.TotalPopped, "best_combo", s.stats.BestCombo,
		"new_high", newHigh)
}
