package main

import (
	"bufio"
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

	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/client"
	"github.com/tomz197/galactic/internal/loop/server"
)

const (
	drainTimeout    = 15 * time.Second // Time players get to leave after the shutdown notice
	shutdownTimeout = 5 * time.Second
)

type serverConfig struct {
	addr        string
	hostKeyPath string
	seed        int64
}

func loadConfig() serverConfig {
	return serverConfig{
		addr:        net.JoinHostPort(config.GetEnv("SSH_HOST", "::"), config.GetEnv("SSH_PORT", "2222")),
		hostKeyPath: config.GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
		seed:        config.GetEnvInt("GALACTIC_SEED", 0),
	}
}

func main() {
	logger := config.NewLogger(os.Stderr, "galactic-ssh")
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	cfg := loadConfig()
	logger.Info("ssh config", "addr", cfg.addr, "hostKeyPath", cfg.hostKeyPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Games outlive the signal context so players can see the shutdown notice.
	gameCtx, cancelGames := context.WithCancel(context.Background())
	defer cancelGames()

	a := &arcade{ctx: gameCtx, hub: server.NewHub(), logger: logger, seed: cfg.seed}

	opts := []ssh.Option{
		wish.WithAddress(cfg.addr),
		wish.WithMiddleware(
			a.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcp, ok := conn.(*net.TCPConn); ok {
				_ = tcp.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.addr)
		serveErr <- s.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "players", a.hub.Players())
	a.hub.Shutdown(drainTimeout)
	cancelGames()

	best, by := a.hub.HighScore()
	logger.Info("games stopped", "highScore", best, "by", by)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// arcade runs one independent game per SSH session.
type arcade struct {
	ctx    context.Context
	hub    *server.Hub
	logger *log.Logger
	seed   int64
}

func (a *arcade) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		defer next(sess)

		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User())
		logger.Info("game session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		size := &windowSize{width: pty.Window.Width, height: pty.Window.Height}
		go func() {
			for win := range winCh {
				size.set(win.Width, win.Height)
			}
		}()

		c := client.NewClient(bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: size.get,
			Username:     sess.User(),
			Hub:          a.hub,
			Seed:         a.seed,
			Logger:       logger,
			Observers:    []loop.EventObserver{loop.EventLogger{Logger: logger}},
		})
		if err := c.Run(a.ctx); err != nil {
			logger.Error("game failed", "err", err)
		}
		logger.Info("game session ended", "players", a.hub.Players())
	}
}

// windowSize follows the PTY size from window change events.
type windowSize struct {
	mu            sync.RWMutex
	width, height int
}

func (w *windowSize) set(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
}

func (w *windowSize) get() (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.width, w.height, nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).get
