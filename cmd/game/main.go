package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/galactic/internal/audio"
	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/client"
)

func main() {
	logger := config.NewLogger(os.Stderr, "galactic")

	// The terminal belongs to the game while it runs; session logs go to a file if asked.
	gameLogger, closeLog, err := openGameLog()
	if err != nil {
		logger.Fatal("failed to open log file", "err", err)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	err = run(gameLogger)
	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	observers := []loop.EventObserver{loop.EventLogger{Logger: logger}}

	if config.GetEnvBool("GALACTIC_AUDIO", true) {
		sm := audio.NewSoundManager(float64(config.GetEnvInt("GALACTIC_VOLUME", 60)) / 100)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sm.Cleanup()
			observers = append(observers, sm)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Seed:      config.GetEnvInt("GALACTIC_SEED", 0),
		Logger:    logger,
		Observers: observers,
	})
	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("run client: %w", err)
	}
	return nil
}

// openGameLog returns the logger used while the terminal is in raw mode.
// Without GALACTIC_LOG_FILE logs are discarded.
func openGameLog() (*log.Logger, func(), error) {
	path := config.GetEnv("GALACTIC_LOG_FILE", "")
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return config.NewLogger(f, "galactic"), func() { _ = f.Close() }, nil
}
