package loop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func TestRunQuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader("q"), &out, TermOptions{
		Options:      Options{Seed: 1, FPS: 240},
		TermSizeFunc: fixedSize(80, 24),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"\033[?1000h\033[?1006h", // mouse on
		"\033[?1006l\033[?1000l", // mouse off
		"\033[?25l",              // cursor hidden
		"BALLOON POP",
		"Score",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(got, "\033[?25h") {
		t.Errorf("cursor not restored at exit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, pr, &out, TermOptions{TermSizeFunc: fixedSize(80, 24)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}

func TestRunReportsSizeError(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	boom := errors.New("no tty")
	err := Run(context.Background(), pr, io.Discard, TermOptions{
		TermSizeFunc: func() (int, int, error) { return 0, 0, boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want %v", err, boom)
	}
}

func TestRunEndsAfterShutdownGrace(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	hub := NewHub()
	p := hub.Register("alice")

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), pr, io.Discard, TermOptions{
			Options: Options{
				Shutdown:      hub.ShutdownCh(),
				ShutdownGrace: 50 * time.Millisecond,
			},
			TermSizeFunc: fixedSize(60, 20),
		})
		hub.Unregister(p.ID)
	}()

	if !hub.Shutdown(5 * time.Second) {
		t.Fatalf("player still registered after shutdown")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return")
	}
}

func TestHubRegistry(t *testing.T) {
	hub := NewHub()
	a := hub.Register("alice")
	b := hub.Register("bob")
	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("ids not unique: %q %q", a.ID, b.ID)
	}
	if hub.Count() != 2 || len(hub.Players()) != 2 {
		t.Fatalf("Count = %d, want 2", hub.Count())
	}

	hub.Unregister(a.ID)
	hub.Unregister("missing")
	if hub.Count() != 1 || hub.Players()[0].Username != "bob" {
		t.Fatalf("after unregister: %+v", hub.Players())
	}
}

func TestHubShutdownTimeout(t *testing.T) {
	hub := NewHub()
	hub.Register("stuck")

	if hub.Shutdown(10 * time.Millisecond) {
		t.Fatalf("Shutdown reported success with a player left")
	}
	select {
	case <-hub.ShutdownCh():
	default:
		t.Fatalf("shutdown channel not closed")
	}
	// A second call must not close the channel again.
	hub.Shutdown(0)
}
