package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/platform/audio"
	"github.com/vovakirdan/brickbreaker/internal/platform/spectate"
	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/registry"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

// app holds the services shared by the interactive commands.
type app struct {
	logger  *log.Logger
	game    config.BreakoutConfig
	runtime core.RuntimeConfig
	store   *storage.Store
	audio   core.AudioSink
	hub     *spectate.Hub
	player  string

	closers []func() error
}

// newLogger builds the process logger. While the alternate screen is up
// logs go to a file so they do not tear the frame.
func newLogger(tuiMode bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer
	path := flagLogFile
	if path == "" && tuiMode {
		if dir := config.UserDir(); dir != "" {
			path = filepath.Join(dir, "brickbreaker.log")
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	} else if tuiMode {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickbreaker",
		Level:           level,
	})
	return logger, closer, nil
}

// loadGameConfig loads breakout.yaml and applies the difficulty preset.
func loadGameConfig() (config.BreakoutConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// terminalConfig sizes the run to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

// newApp opens everything an interactive session needs. Scores, sound and
// spectators are optional; a failure there is logged and play goes on.
func newApp(ctx context.Context) (*app, error) {
	logger, logCloser, err := newLogger(true)
	if err != nil {
		return nil, err
	}

	game, err := loadGameConfig()
	if err != nil {
		if logCloser != nil {
			logCloser.Close()
		}
		return nil, err
	}

	a := &app{
		logger:  logger,
		game:    game,
		runtime: terminalConfig(),
		player:  playerName(),
	}
	if logCloser != nil {
		a.closers = append(a.closers, logCloser.Close)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
	} else {
		a.store = store
		a.closers = append(a.closers, store.Close)
	}

	sink, closeAudio := audio.NewSink(flagMute, flagVolume, logger)
	a.audio = sink
	a.closers = append(a.closers, func() error { closeAudio(); return nil })

	if flagSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		srv, err := spectate.Listen(ctx, flagSpectate, hub)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.hub = hub
		a.closers = append(a.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		})
		fmt.Fprintf(os.Stderr, "Spectators can connect to %s\n", srv.URL())
	}

	logger.Info("session starting",
		"player", a.player,
		"difficulty", flagDifficulty,
		"levels", len(game.Levels),
		"fps", flagFPS,
	)
	return a, nil
}

// env is the base environment every mode is created with.
func (a *app) env() registry.Env {
	env := registry.Env{
		Config:     a.game,
		Logger:     a.logger,
		Audio:      a.audio,
		PlayerName: a.player,
		OnFault: func(err error) {
			a.logger.Error("simulation fault", "err", err)
		},
	}
	// A nil *Store in the interface would not compare equal to nil.
	if a.store != nil {
		env.Scores = a.store
	}
	return env
}

func (a *app) hooks() tui.Hooks {
	h := tui.Hooks{Logger: a.logger}
	if a.hub != nil {
		h.Publish = a.hub.Publish
	}
	return h
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
