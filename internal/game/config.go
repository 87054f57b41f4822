package game

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Player
const (
	InitialLives = 3
)

// Timing
const (
	MaxDelta       = 0.05 // Longest simulated step (seconds); longer gaps are truncated
	SpawnJitterMin = 0.6  // Spawn interval multiplier range
	SpawnJitterMax = 1.2
)

// Field
const (
	EscapeLine = 20.0 // How far above the field a balloon's top must go to escape
	HitMargin  = 8.0  // Extra radius accepted around a balloon for a hit
)

// Scoring
const (
	BasePoints         = 10
	LevelPointStep     = 0.2 // Base points grow by 20% per level
	GoldenMultiplier   = 5
	ComboWindow        = 1.5 // Seconds a combo survives without a hit
	MaxComboMultiplier = 5
	StarBonus          = 50
	LifeBonus          = 25
	TwoStarAccuracy    = 60 // Percent
	ThreeStarAccuracy  = 85
)
