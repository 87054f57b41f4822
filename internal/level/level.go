// Package level defines the difficulty tiers of the game.
package level

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Config describes one difficulty tier.
type Config struct {
	Name          string
	Target        int              // Balloons to pop to clear the level
	SpawnInterval float64          // Seconds between spawns (before jitter)
	Speed         float64          // Ascent speed multiplier
	Palette       []colorful.Color // Balloon colours
	Background    [2]colorful.Color
}

// Table is an ordered list of levels, level 1 first.
type Table []Config

// Default is the built-in campaign.
var Default = Table{
	newConfig("Sunny Meadow", 8, 1.2, 1, []string{"#ff6b6b", "#ff8e53", "#ffd93d", "#6bcb77", "#4d96ff"}, "#87ceeb", "#e0f7e9"),
	newConfig("Ocean Breeze", 12, 1.0, 1.15, []string{"#00b4d8", "#0077b6", "#48cae4", "#90e0ef", "#caf0f8"}, "#0077b6", "#caf0f8"),
	newConfig("Sunset Glow", 15, 0.9, 1.3, []string{"#ff6b6b", "#ff8e53", "#ffd93d", "#c9184a", "#ff758f"}, "#ff758f", "#ffd93d"),
	newConfig("Enchanted Forest", 18, 0.8, 1.4, []string{"#2d6a4f", "#40916c", "#52b788", "#74c69d", "#95d5b2"}, "#1b4332", "#95d5b2"),
	newConfig("Neon Night", 22, 0.7, 1.5, []string{"#f72585", "#7209b7", "#3a0ca3", "#4361ee", "#4cc9f0"}, "#0d1b2a", "#1b263b"),
	newConfig("Candy Land", 25, 0.65, 1.6, []string{"#ff69b4", "#ff1493", "#ff6ec7", "#da70d6", "#ee82ee"}, "#ffe4f0", "#ffd1e8"),
	newConfig("Volcanic Core", 28, 0.6, 1.7, []string{"#ff4500", "#ff6347", "#ff7f50", "#dc143c", "#b22222"}, "#1a0000", "#8b0000"),
	newConfig("Arctic Frost", 30, 0.55, 1.8, []string{"#e0f7fa", "#b2ebf2", "#80deea", "#4dd0e1", "#26c6da"}, "#e0f7fa", "#ffffff"),
	newConfig("Space Odyssey", 35, 0.5, 2.0, []string{"#bb86fc", "#03dac6", "#cf6679", "#ffffff", "#ffde03"}, "#000000", "#1a1a3e"),
	newConfig("The Grand Finale", 40, 0.45, 2.2, []string{"#ffd700", "#ff6b6b", "#4ecdc4", "#45b7d1", "#f9ca24"}, "#2c3e50", "#3498db"),
}

// At returns the config for a 1-based level number.
// Levels past the end of the table reuse the last entry.
func (t Table) At(level int) Config {
	return t[t.index(level)]
}

// Next returns the config that follows the given level.
func (t Table) Next(level int) Config {
	return t.At(level + 1)
}

// Len returns the number of defined levels.
func (t Table) Len() int {
	return len(t)
}

func (t Table) index(level int) int {
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(t)-1 {
		idx = len(t) - 1
	}
	return idx
}

// Validate reports whether every level is playable.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("level table is empty")
	}
	for i, c := range t {
		switch {
		case c.Target <= 0:
			return fmt.Errorf("level %d (%s): target must be positive", i+1, c.Name)
		case c.SpawnInterval <= 0:
			return fmt.Errorf("level %d (%s): spawn interval must be positive", i+1, c.Name)
		case c.Speed <= 0:
			return fmt.Errorf("level %d (%s): speed must be positive", i+1, c.Name)
		case len(c.Palette) == 0:
			return fmt.Errorf("level %d (%s): palette is empty", i+1, c.Name)
		}
	}
	return nil
}

// Spec is the serialisable form of a level, used by config files.
type Spec struct {
	Name          string    `yaml:"name"`
	Target        int       `yaml:"target"`
	SpawnInterval float64   `yaml:"spawn_interval"`
	Speed         float64   `yaml:"speed"`
	Colors        []string  `yaml:"colors"`
	Background    [2]string `yaml:"background"`
}

// FromSpecs parses a level table from its serialisable form.
func FromSpecs(specs []Spec) (Table, error) {
	t := make(Table, 0, len(specs))
	for i, s := range specs {
		palette := make([]colorful.Color, 0, len(s.Colors))
		for _, hex := range s.Colors {
			c, err := colorful.Hex(hex)
			if err != nil {
				return nil, fmt.Errorf("level %d: color %q: %w", i+1, hex, err)
			}
			palette = append(palette, c)
		}
		var bg [2]colorful.Color
		for j, hex := range s.Background {
			c, err := colorful.Hex(hex)
			if err != nil {
				return nil, fmt.Errorf("level %d: background %q: %w", i+1, hex, err)
			}
			bg[j] = c
		}
		t = append(t, Config{
			Name:          s.Name,
			Target:        s.Target,
			SpawnInterval: s.SpawnInterval,
			Speed:         s.Speed,
			Palette:       palette,
			Background:    bg,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func newConfig(name string, target int, spawn, speed float64, colors []string, top, bottom string) Config {
	palette := make([]colorful.Color, len(colors))
	for i, hex := range colors {
		palette[i] = mustHex(hex)
	}
	return Config{
		Name:          name,
		Target:        target,
		SpawnInterval: spawn,
		Speed:         speed,
		Palette:       palette,
		Background:    [2]colorful.Color{mustHex(top), mustHex(bottom)},
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
