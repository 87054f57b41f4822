package game

import (
	"github.com/tomz197/balloonpop/internal/object"
	"github.com/tomz197/balloonpop/internal/physics"
)

// Pop resolves a click at logical field coordinates (x, y).
//
// Balloons are checked newest first so the one drawn on top wins, and at
// most one balloon is popped. Clicks outside a running level are ignored.
func (s *Session) Pop(x, y float64) PopResult {
	if s.phase != PhaseRunning {
		return PopResult{}
	}
	s.stats.LevelClicks++

	for i := len(s.balloons) - 1; i >= 0; i-- {
		b := s.balloons[i]
		if !b.Active() {
			continue
		}
		if physics.PointInCircle(x, y, b.X, b.Y, b.Radius+HitMargin) {
			return s.popBalloon(b, x, y)
		}
	}

	s.stats.Combo = 0
	res := PopResult{X: x, Y: y}
	s.emit(Event{Type: EventMiss, Pop: res})
	s.emitHUD()
	return res
}

func (s *Session) popBalloon(b *object.Balloon, x, y float64) PopResult {
	b.Popped = true

	s.stats.Combo++
	s.stats.ComboTimer = ComboWindow
	s.stats.BestCombo = max(s.stats.BestCombo, s.stats.Combo)

	points := PopScore(s.stats.Level, b.Golden, s.stats.Combo)
	s.stats.Score += points
	s.stats.LevelPopped++
	s.stats.TotalPopped++

	count := object.BurstCount
	if b.Golden {
		count = object.GoldenBurstCount
	}
	s.particles = object.SpawnBurst(s.rng, s.particles, b.X, b.Y, b.Color, count)
	s.labels = append(s.labels, object.NewScoreLabel(x, y, points))

	res := PopResult{
		Hit:    true,
		Golden: b.Golden,
		Points: points,
		Combo:  s.stats.Combo,
		X:      x,
		Y:      y,
	}
	res.LevelComplete = s.checkLevelComplete()
	s.emit(Event{Type: EventPop, Pop: res})
	s.emitHUD()
	return res
}

// checkLevelComplete finishes the level once the target is reached.
func (s *Session) checkLevelComplete() bool {
	cfg := s.Level()
	if s.stats.LevelPopped < cfg.Target {
		return false
	}

	acc := Accuracy(s.stats.LevelPopped, s.stats.LevelClicks)
	stars := Stars(acc)
	bonus := LevelBonus(stars, s.stats.Lives)
	s.stats.Score += bonus

	s.summary = Summary{
		Score:       s.stats.Score,
		Level:       s.stats.Level,
		Lives:       s.stats.Lives,
		TotalPopped: s.stats.TotalPopped,
		LevelPopped: s.stats.LevelPopped,
		Accuracy:    acc,
		Stars:       stars,
		Bonus:       bonus,
		BestCombo:   s.stats.BestCombo,
		HighScore:   s.stats.HighScore,
		NextLevel:   s.levels.Next(s.stats.Level).Name,
	}
	s.setPhase(PhaseLevelComplete)
	s.logger.Info("level complete",
		"level", s.stats.Level, "accuracy", acc, "stars", stars, "bonus", bonus, "score", s.stats.Score)
	return true
}
