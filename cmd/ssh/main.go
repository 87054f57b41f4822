package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"
	"github.com/tomz197/balloonpop/internal/config"
	"github.com/tomz197/balloonpop/internal/draw"
	"github.com/tomz197/balloonpop/internal/loop"
	"github.com/tomz197/balloonpop/internal/store"
)

func main() {
	settings, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := settings.NewLogger(os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config",
		"host", settings.SSHHost, "port", settings.SSHPort,
		"hostKey", settings.HostKeyPath, "workingDir", workingDir,
		"scores", settings.HighScoreFile)

	srv := &gameServer{
		settings: settings,
		logger:   logger,
		hub:      loop.NewHub(),
		scores:   store.NewFile(settings.HighScoreFile).WithLogger(logger),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			srv.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for clicks
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", srv.hub.Count())

	// Show every player the shutdown notice and wait for the games to end.
	if !srv.hub.Shutdown(settings.ShutdownTimeout + 5*time.Second) {
		logger.Warn("players still connected after shutdown notice", "players", srv.hub.Count())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameServer runs one independent game per SSH session.
type gameServer struct {
	settings config.Settings
	logger   *log.Logger
	hub      *loop.Hub
	scores   store.KV
}

// middleware handles SSH sessions and runs the game.
func (g *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		player := g.hub.Register(sess.User())
		defer g.hub.Unregister(player.ID)
		logger := g.logger.With("session", player.ID, "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err := loop.Run(sess.Context(), sess, sess, loop.TermOptions{
			Options: loop.Options{
				Store:          store.NewHighScore(g.scores, store.UserKey(sess.User())),
				Logger:         logger,
				Levels:         g.settings.Levels,
				Seed:           g.settings.Seed,
				FPS:            g.settings.FPS,
				IdleWarn:       g.settings.IdleWarn,
				IdleDisconnect: g.settings.IdleDisconnect,
				Shutdown:       g.hub.ShutdownCh(),
				ShutdownGrace:  g.settings.ShutdownTimeout,
			},
			TermSizeFunc: sizeTracker.getSize,
			Profile:      termenv.TrueColor,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "played", time.Since(player.Joined).Round(time.Second))
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
