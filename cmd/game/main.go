package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"github.com/tomz197/balloonpop/internal/audio"
	"github.com/tomz197/balloonpop/internal/audio/speaker"
	"github.com/tomz197/balloonpop/internal/config"
	"github.com/tomz197/balloonpop/internal/loop"
	"github.com/tomz197/balloonpop/internal/store"
	"github.com/tomz197/balloonpop/internal/tui"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	frontend := flag.String("frontend", "", "terminal frontend: tcell or ansi")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfig+")")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *frontend != "" {
		settings.Frontend = *frontend
	}
	if *seed != 0 {
		settings.Seed = *seed
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the game; logs only go to BALLOONPOP_LOG_FILE.
	logger, closeLog, err := settings.NewLogger(io.Discard, "balloonpop")
	if err != nil {
		return err
	}
	defer closeLog()

	var player audio.Player = audio.Nop{}
	if settings.Sound {
		sp, err := speaker.New()
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			player = sp
		}
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Store:  store.NewHighScore(store.NewFile(settings.HighScoreFile).WithLogger(logger), store.HighScoreKey),
		Logger: logger,
		Audio:  player,
		Levels: settings.Levels,
		Seed:   settings.Seed,
		FPS:    settings.FPS,
	}
	logger.Info("starting", "frontend", settings.Frontend, "scores", settings.HighScoreFile)

	switch settings.Frontend {
	case config.FrontendANSI:
		err = runANSI(ctx, opts)
	default:
		err = runTcell(ctx, opts)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runTcell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return tui.NewApp(screen, opts).Run(ctx)
}

func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	return loop.Run(ctx, os.Stdin, os.Stdout, loop.TermOptions{
		Options: opts,
		Profile: termenv.TrueColor,
	})
}
