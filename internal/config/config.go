package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tailboard/internal/fanin"
	"github.com/five82/tailboard/internal/logging"
	"github.com/five82/tailboard/internal/logtail"
)

// Config holds tailboard settings after defaults and path expansion.
type Config struct {
	Files        []string
	HistoryLines int
	QueueSize    int
	NotifyPolicy string
	Encoding     string
	StripANSI    bool
	MaxLineBytes int
	LogFile      string
	LogLevel     string
}

const (
	defaultConfigPath = "~/.config/tailboard/config.toml"
	defaultLogLevel   = "info"
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		HistoryLines: logtail.DefaultHistoryLines,
		QueueSize:    fanin.DefaultCapacity,
		NotifyPolicy: string(fanin.PolicyBlock),
		Encoding:     logtail.DefaultEncoding,
		MaxLineBytes: logtail.DefaultMaxLineBytes,
		LogLevel:     defaultLogLevel,
	}
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Files        []string `toml:"files"`
		HistoryLines int      `toml:"history_lines"`
		QueueSize    int      `toml:"queue_size"`
		NotifyPolicy string   `toml:"notify_policy"`
		Encoding     string   `toml:"encoding"`
		StripANSI    bool     `toml:"strip_ansi"`
		MaxLineBytes int      `toml:"max_line_bytes"`
		LogFile      string   `toml:"log_file"`
		LogLevel     string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Files, err = ExpandPaths(raw.Files)
	if err != nil {
		return Config{}, fmt.Errorf("config files: %w", err)
	}
	if raw.HistoryLines != 0 {
		cfg.HistoryLines = raw.HistoryLines
	}
	if raw.QueueSize > 0 {
		cfg.QueueSize = raw.QueueSize
	}
	if raw.MaxLineBytes > 0 {
		cfg.MaxLineBytes = raw.MaxLineBytes
	}
	cfg.NotifyPolicy = orDefault(raw.NotifyPolicy, cfg.NotifyPolicy)
	cfg.Encoding = orDefault(raw.Encoding, cfg.Encoding)
	cfg.LogLevel = orDefault(raw.LogLevel, cfg.LogLevel)
	cfg.StripANSI = raw.StripANSI
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.HistoryLines < 0 {
		return fmt.Errorf("history_lines: must not be negative, got %d", c.HistoryLines)
	}
	if _, err := fanin.ParsePolicy(c.NotifyPolicy); err != nil {
		return fmt.Errorf("notify_policy: %w", err)
	}
	if _, err := logtail.LookupEncoding(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// ExpandPaths trims, drops empty entries and expands each path.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		expanded, err := ExpandPath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// ExpandPath trims path, expands a leading ~ and makes it absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
