package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/tailboard/internal/config"
	"github.com/five82/tailboard/internal/fanin"
	"github.com/five82/tailboard/internal/logging"
	"github.com/five82/tailboard/internal/logtail"
	"github.com/five82/tailboard/internal/prefs"
	"github.com/five82/tailboard/internal/state"
	"github.com/five82/tailboard/internal/ui"
)

// ErrNoFiles is returned when neither flags nor config name a file.
var ErrNoFiles = errors.New("no log files to tail")

// Screen is a Terminal that must be started before use and closed on every
// exit path.
type Screen interface {
	Terminal
	Start() error
	Close() error
}

// Options configure a dashboard run. Non-zero fields override the config
// file.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses ~/.config/tailboard/prefs.toml
	Files        []string
	HistoryLines int
	LogFile      string
	LogLevel     string

	// Screen replaces the Bubble Tea terminal; nil uses ui.NewTerminal.
	Screen Screen
}

// Settings resolves the effective configuration: the config file with the
// command-line overrides applied.
func Settings(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if len(opts.Files) > 0 {
		files, err := config.ExpandPaths(opts.Files)
		if err != nil {
			return config.Config{}, fmt.Errorf("files: %w", err)
		}
		cfg.Files = files
	}
	if opts.HistoryLines != 0 {
		cfg.HistoryLines = opts.HistoryLines
	}
	if opts.LogFile != "" {
		logFile, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = logFile
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if len(cfg.Files) == 0 {
		return config.Config{}, ErrNoFiles
	}
	return cfg, nil
}

// TailerOptions maps settings onto logtail options.
func TailerOptions(cfg config.Config, logger *slog.Logger) (logtail.Options, error) {
	enc, err := logtail.LookupEncoding(cfg.Encoding)
	if err != nil {
		return logtail.Options{}, err
	}
	return logtail.Options{
		HistoryLines: cfg.HistoryLines,
		MaxLineBytes: cfg.MaxLineBytes,
		Encoding:     enc,
		StripANSI:    cfg.StripANSI,
		Logger:       logger,
	}, nil
}

// Run tails every configured file and shows the dashboard until the user
// quits or ctx ends. Watches are released and the terminal restored on every
// return path, in that order.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := Settings(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, Path: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	tailOpts, err := TailerOptions(cfg, logger)
	if err != nil {
		return err
	}
	policy, err := fanin.ParsePolicy(cfg.NotifyPolicy)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	bus := fanin.New(cfg.QueueSize)

	var (
		tailers []*logtail.Tailer
		screen  Screen
	)
	defer func() {
		// Unblock producers waiting on a full bus before joining them.
		cancel()
		closeTailers(tailers, logger)
		if screen != nil {
			if cerr := screen.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}
		logger.Info("tailboard stopped")
	}()

	tailers, err = startTailers(ctx, cfg.Files, tailOpts, bus.Signal(ctx, policy))
	if err != nil {
		// The deferred shutdown releases the watches that did start.
		return err
	}
	logger.Info("tailboard started",
		"files", len(tailers),
		"history_lines", cfg.HistoryLines,
		"queue_size", bus.Cap(),
		"notify_policy", string(policy),
	)

	screen = opts.Screen
	if screen == nil {
		screen = ui.NewTerminal(ui.Options{
			Theme:     prefs.Load(opts.PrefsPath).Theme,
			PrefsPath: opts.PrefsPath,
			Logger:    logger,
		})
	}
	if err := screen.Start(); err != nil {
		return err
	}

	sources := make([]state.Source, len(tailers))
	for i, t := range tailers {
		sources[i] = t
	}
	loop := &Loop{
		Session:  state.NewSession(sources),
		Changes:  bus.C(),
		Drain:    bus.Drain,
		Terminal: screen,
		Logger:   logger,
	}
	return loop.Run(ctx)
}

// startTailers starts one tailer per path in order. Every path is tried; the
// registration failures are returned together alongside the tailers that did
// start, which the caller closes after cancelling ctx. Start never waits on
// notify, so this returns even before anything drains the bus.
func startTailers(ctx context.Context, paths []string, opts logtail.Options, notify func()) ([]*logtail.Tailer, error) {
	tailers := make([]*logtail.Tailer, 0, len(paths))
	var errs []error
	for _, path := range paths {
		t := logtail.New(path, opts)
		if err := t.Start(ctx, notify); err != nil {
			errs = append(errs, err)
			continue
		}
		tailers = append(tailers, t)
	}
	return tailers, errors.Join(errs...)
}

func closeTailers(tailers []*logtail.Tailer, logger *slog.Logger) {
	for _, t := range tailers {
		if err := t.Close(); err != nil && logger != nil {
			logger.Warn("release watch failed", "path", t.Path(), "error", err)
		}
	}
}
