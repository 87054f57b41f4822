package game

import "math"

// BaseScore returns the points for an ordinary pop on the given level.
func BaseScore(level int) int {
	return int(math.Round(BasePoints * (1 + float64(level-1)*LevelPointStep)))
}

// ComboMultiplier returns the multiplier for a combo streak, capped at MaxComboMultiplier.
func ComboMultiplier(streak int) int {
	if streak < 1 {
		return 1
	}
	return min(streak, MaxComboMultiplier)
}

// PopScore returns the points for popping a balloon at the given streak
// (the streak already includes this pop).
func PopScore(level int, golden bool, streak int) int {
	points := BaseScore(level) * ComboMultiplier(streak)
	if golden {
		points *= GoldenMultiplier
	}
	return points
}

// Accuracy returns the rounded hit percentage, or 0 when nothing was clicked.
func Accuracy(popped, clicks int) int {
	if clicks <= 0 {
		return 0
	}
	return int(math.Round(float64(popped) / float64(clicks) * 100))
}

// Stars rates a finished level from its accuracy.
func Stars(accuracy int) int {
	switch {
	case accuracy >= ThreeStarAccuracy:
		return 3
	case accuracy >= TwoStarAccuracy:
		return 2
	default:
		return 1
	}
}

// LevelBonus returns the end-of-level bonus.
func LevelBonus(stars, lives int) int {
	return stars*StarBonus + lives*LifeBonus
}
