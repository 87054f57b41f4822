// Package ui renders the heads-up display and the modal panels as text
// blocks with lipgloss. Frontends decide where the blocks go.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/balloonpop/internal/game"
)

// Title shown on the start panel.
const Title = "BALLOON POP"

// Theme holds the styles for one output. Each SSH session gets its own
// so colour support is detected per client.
type Theme struct {
	renderer *lipgloss.Renderer

	panel  lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
	hud    lipgloss.Style
	warn   lipgloss.Style
}

// NewTheme creates styles rendering for w with the given colour profile.
// termenv.Ascii yields plain text, which is what cell-based frontends need.
func NewTheme(w io.Writer, profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Theme{
		renderer: r,
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff6b6b")).
			Padding(0, 2).
			Align(lipgloss.Center),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd93d")),
		label:  r.NewStyle().Foreground(lipgloss.Color("#cccccc")),
		value:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#888888")),
		hud:    r.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#222233")),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4500")),
	}
}

// Plain returns a theme that renders without escape sequences.
func Plain() *Theme {
	return NewTheme(io.Discard, termenv.Ascii)
}

// HUD renders the single-line heads-up display, cut to width columns.
func (t *Theme) HUD(h game.HUD, width int) string {
	parts := []string{
		t.field("Score", fmt.Sprint(h.Score)),
		t.field("Level", fmt.Sprintf("%d %s", h.Level, h.LevelName)),
		t.field("Lives", Hearts(h.Lives, game.InitialLives)),
		t.field("Popped", fmt.Sprintf("%d/%d", h.Popped, h.Target)),
		t.field("Acc", fmt.Sprintf("%d%%", h.Accuracy)),
	}
	if h.Combo >= 2 {
		parts = append(parts, t.accent.Render(fmt.Sprintf("x%d", h.Combo)))
	}
	parts = append(parts, t.field("Best", fmt.Sprint(h.HighScore)))

	line := " " + strings.Join(parts, t.dim.Render(" │ ")) + " "
	if width <= 0 {
		return t.hud.Render(line)
	}
	return t.hud.Width(width).MaxWidth(width).Render(line)
}

func (t *Theme) field(name, value string) string {
	return t.label.Render(name+" ") + t.value.Render(value)
}

// Hearts draws lives as filled and empty hearts.
func Hearts(lives, total int) string {
	lives = min(max(lives, 0), total)
	return strings.Repeat("♥", lives) + strings.Repeat("♡", total-lives)
}

// Stars draws a level rating out of three.
func Stars(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// Panel renders the modal for m, or "" when no panel is shown.
func (t *Theme) Panel(m game.Modal, s game.Summary, h game.HUD) string {
	switch m {
	case game.ModalStart:
		return t.startPanel(h)
	case game.ModalPause:
		return t.box(
			t.title.Render("PAUSED"),
			"",
			t.row("Score", fmt.Sprint(s.Score)),
			t.row("Level", fmt.Sprint(s.Level)),
			t.row("Lives", fmt.Sprint(s.Lives)),
			t.row("Popped", fmt.Sprint(s.TotalPopped)),
			"",
			t.dim.Render("P/Esc resume · R restart · M menu"),
		)
	case game.ModalLevelComplete:
		return t.box(
			t.title.Render(fmt.Sprintf("LEVEL %d COMPLETE!", s.Level)),
			t.accent.Render(Stars(s.Stars)),
			"",
			t.row("Popped", fmt.Sprint(s.LevelPopped)),
			t.row("Accuracy", fmt.Sprintf("%d%%", s.Accuracy)),
			t.row("Bonus", fmt.Sprintf("+%d", s.Bonus)),
			t.row("Score", fmt.Sprint(s.Score)),
			"",
			t.label.Render("Next: ")+t.value.Render(s.NextLevel),
			t.dim.Render("Space next level · M menu"),
		)
	case game.ModalGameOver:
		lines := []string{
			t.title.Render("GAME OVER"),
			"",
			t.row("Final score", fmt.Sprint(s.Score)),
			t.row("Level", fmt.Sprint(s.Level)),
			t.row("Popped", fmt.Sprint(s.TotalPopped)),
			t.row("Best combo", fmt.Sprintf("%dx", s.BestCombo)),
			t.row("High score", fmt.Sprint(s.HighScore)),
		}
		if s.NewHighScore {
			lines = append(lines, t.accent.Render("NEW HIGH SCORE!"))
		}
		lines = append(lines, "", t.dim.Render("Space play again · M menu · Q quit"))
		return t.box(lines...)
	}
	return ""
}

func (t *Theme) startPanel(h game.HUD) string {
	lines := []string{
		t.title.Render(Title),
		"",
		t.label.Render("Click the balloons before they float away."),
		t.label.Render("Golden balloons are worth 5x, quick pops build combos."),
		t.label.Render("Three escapes and the game is over."),
		"",
	}
	if h.HighScore > 0 {
		lines = append(lines, t.row("High score", fmt.Sprint(h.HighScore)), "")
	}
	lines = append(lines,
		t.value.Render("Press Space to start"),
		t.dim.Render("P/Esc pause · R restart · M menu · Q quit"),
	)
	return t.box(lines...)
}

// IdleWarning renders the inactivity notice.
func (t *Theme) IdleWarning(remaining time.Duration) string {
	secs := max(int(remaining.Round(time.Second)/time.Second), 0)
	return t.box(
		t.warn.Render("INACTIVITY WARNING"),
		"",
		t.label.Render(fmt.Sprintf("You will be disconnected in %d seconds.", secs)),
		"",
		t.dim.Render("Press any key to continue"),
	)
}

// ShutdownNotice renders the server shutdown countdown.
func (t *Theme) ShutdownNotice(remaining time.Duration) string {
	secs := max(int(remaining.Round(time.Second)/time.Second), 0)
	return t.box(
		t.warn.Render("SERVER SHUTTING DOWN"),
		"",
		t.label.Render(fmt.Sprintf("Disconnecting in %d seconds.", secs)),
		t.label.Render("Thanks for playing!"),
	)
}

func (t *Theme) row(name, value string) string {
	return t.label.Render(name+": ") + t.value.Render(value)
}

func (t *Theme) box(lines ...string) string {
	return t.panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// Lines splits a rendered block into its lines.
func Lines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}

// Centre returns the 0-based top-left cell that centres block in an area
// of width x height cells. The result is never negative.
func Centre(block string, width, height int) (col, row int) {
	w, h := lipgloss.Size(block)
	return max((width-w)/2, 0), max((height-h)/2, 0)
}
