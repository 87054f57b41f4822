package object

import "fmt"

// Floating label tuning.
const (
	LabelLifetime = 0.8  // Seconds
	LabelRise     = 50.0 // Units per second
)

// Label is the floating "+N" text shown where a balloon was popped.
// Coordinates are logical field units.
type Label struct {
	X, Y  float64
	Value string
	Age   float64
}

// NewScoreLabel creates a label announcing the points earned by a pop.
func NewScoreLabel(x, y float64, points int) *Label {
	return &Label{X: x, Y: y, Value: fmt.Sprintf("+%d", points)}
}

// Update drifts the label upwards. Returns true once it has expired.
func (l *Label) Update(dt float64) bool {
	l.Age += dt
	l.Y -= LabelRise * dt
	return l.Age >= LabelLifetime
}

// Alpha is the label's remaining opacity.
func (l *Label) Alpha() float64 {
	a := 1 - l.Age/LabelLifetime
	if a < 0 {
		return 0
	}
	return a
}
