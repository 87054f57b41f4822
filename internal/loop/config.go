package loop

import "time"

// Render area limits. Larger terminals get a centred, bordered play field.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Frame rate used when Options.FPS is not set.
const defaultFPS = 60

// hudBackdrop is the opacity of the strip behind the HUD line.
const hudBackdrop = 0.55

func frameTime(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}
