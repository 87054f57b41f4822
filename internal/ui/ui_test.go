package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/balloonpop/internal/game"
)

func TestHUD(t *testing.T) {
	th := Plain()
	h := game.HUD{Score: 120, Level: 2, LevelName: "Ocean Breeze", Lives: 2, Popped: 3, Target: 12, Accuracy: 75, Combo: 3, HighScore: 500}

	line := th.HUD(h, 0)
	for _, want := range []string{"Score 120", "Level 2 Ocean Breeze", "♥♥♡", "Popped 3/12", "Acc 75%", "x3", "Best 500"} {
		if !strings.Contains(line, want) {
			t.Errorf("HUD %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "\033") {
		t.Errorf("plain theme emitted escape codes: %q", line)
	}

	h.Combo = 1
	if strings.Contains(th.HUD(h, 0), "x1") {
		t.Errorf("combo of 1 should not be shown")
	}

	if w := lipgloss.Width(th.HUD(h, 30)); w > 30 {
		t.Errorf("HUD width %d exceeds 30", w)
	}
}

func TestPanels(t *testing.T) {
	th := Plain()
	h := game.HUD{HighScore: 900}

	tests := []struct {
		name  string
		modal game.Modal
		sum   game.Summary
		want  []string
		not   []string
	}{
		{"none", game.ModalNone, game.Summary{}, nil, nil},
		{"start", game.ModalStart, game.Summary{}, []string{Title, "High score: 900", "Space to start"}, nil},
		{"pause", game.ModalPause, game.Summary{Score: 40, Level: 2, Lives: 1, TotalPopped: 9},
			[]string{"PAUSED", "Score: 40", "Level: 2", "Lives: 1", "Popped: 9"}, nil},
		{"level", game.ModalLevelComplete, game.Summary{Level: 1, Stars: 2, Accuracy: 70, Bonus: 175, Score: 300, LevelPopped: 8, NextLevel: "Ocean Breeze"},
			[]string{"LEVEL 1 COMPLETE!", "★★☆", "Accuracy: 70%", "Bonus: +175", "Next: Ocean Breeze"}, nil},
		{"gameover", game.ModalGameOver, game.Summary{Score: 50, Level: 3, BestCombo: 4, HighScore: 900},
			[]string{"GAME OVER", "Final score: 50", "Best combo: 4x", "High score: 900"}, []string{"NEW HIGH SCORE"}},
		{"record", game.ModalGameOver, game.Summary{Score: 950, HighScore: 950, NewHighScore: true},
			[]string{"NEW HIGH SCORE!"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := th.Panel(tt.modal, tt.sum, h)
			if tt.modal == game.ModalNone {
				if got != "" {
					t.Fatalf("no modal rendered %q", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("panel missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.not {
				if strings.Contains(got, w) {
					t.Errorf("panel should not contain %q:\n%s", w, got)
				}
			}
			if !strings.HasPrefix(got, "╭") {
				t.Errorf("panel is not boxed:\n%s", got)
			}
		})
	}
}

func TestStarsAndHearts(t *testing.T) {
	if got := Stars(3); got != "★★★" {
		t.Errorf("Stars(3) = %q", got)
	}
	if got := Stars(1); got != "★☆☆" {
		t.Errorf("Stars(1) = %q", got)
	}
	if got := Hearts(0, 3); got != "♡♡♡" {
		t.Errorf("Hearts(0, 3) = %q", got)
	}
	if got := Hearts(5, 3); got != "♥♥♥" {
		t.Errorf("Hearts(5, 3) = %q", got)
	}
}

func TestNotices(t *testing.T) {
	th := Plain()
	if got := th.IdleWarning(29600 * time.Millisecond); !strings.Contains(got, "disconnected in 30 seconds") {
		t.Errorf("idle warning = %q", got)
	}
	if got := th.ShutdownNotice(-time.Second); !strings.Contains(got, "in 0 seconds") {
		t.Errorf("shutdown notice = %q", got)
	}
}

func TestCentre(t *testing.T) {
	block := "abcd\nefgh"
	col, row := Centre(block, 10, 6)
	if col != 3 || row != 2 {
		t.Fatalf("Centre = (%d, %d), want (3, 2)", col, row)
	}
	col, row = Centre(block, 2, 1)
	if col != 0 || row != 0 {
		t.Fatalf("Centre in a tiny area = (%d, %d), want (0, 0)", col, row)
	}
	if n := len(Lines(block)); n != 2 {
		t.Fatalf("Lines = %d, want 2", n)
	}
}
