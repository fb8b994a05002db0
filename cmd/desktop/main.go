package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/galactic/internal/audio"
	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/desktop"
	"github.com/tomz197/galactic/internal/loop"
	loopconfig "github.com/tomz197/galactic/internal/loop/config"
)

func main() {
	logger := config.NewLogger(os.Stderr, "galactic")

	session := loop.NewSession(loop.Options{
		Seed:   config.GetEnvInt("GALACTIC_SEED", 0),
		Logger: logger,
	})
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

	ebiten.SetWindowSize(loopconfig.PlayfieldWidth, loopconfig.PlayfieldHeight)
	ebiten.SetWindowTitle(desktop.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(loopconfig.TargetFPS)

	logger.Info("starting", "width", loopconfig.PlayfieldWidth, "height", loopconfig.PlayfieldHeight)
	if err := ebiten.RunGame(desktop.NewGame(session, observers...)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
	logger.Info("bye", "score", session.Player.Score, "level", session.Level)
}
