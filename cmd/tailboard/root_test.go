package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/five82/tailboard/internal/app"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func captureRun(t *testing.T) *app.Options {
	t.Helper()
	var got app.Options
	prev := runDashboard
	runDashboard = func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	}
	t.Cleanup(func() { runDashboard = prev })
	return &got
}

func TestRootFlagsBecomeOptions(t *testing.T) {
	got := captureRun(t)

	_, err := runCLI(t,
		"--files", "a.log,b.log",
		"-f", "c.log",
		"--history", "500",
		"--config", "/etc/tb.toml",
		"--prefs", "/tmp/prefs.toml",
		"--log-file", "/tmp/tb.log",
		"--log-level", "debug",
		"d.log", "e.log",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if want := []string{"a.log", "b.log", "c.log", "d.log", "e.log"}; !slices.Equal(got.Files, want) {
		t.Fatalf("Files = %v, want %v", got.Files, want)
	}
	if got.HistoryLines != 500 || got.ConfigPath != "/etc/tb.toml" || got.PrefsPath != "/tmp/prefs.toml" {
		t.Fatalf("options = %+v", *got)
	}
	if got.LogFile != "/tmp/tb.log" || got.LogLevel != "debug" {
		t.Fatalf("logging options = %q %q", got.LogFile, got.LogLevel)
	}
}

func TestRootPositionalPathsOnly(t *testing.T) {
	got := captureRun(t)

	if _, err := runCLI(t, "a.log", "b.log"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if want := []string{"a.log", "b.log"}; !slices.Equal(got.Files, want) {
		t.Fatalf("Files = %v, want %v", got.Files, want)
	}
}

func TestRootErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	prev := runDashboard
	runDashboard = func(context.Context, app.Options) error { return boom }
	t.Cleanup(func() { runDashboard = prev })

	if _, err := runCLI(t, "x.log"); !errors.Is(err, boom) {
		t.Fatalf("execute = %v, want boom", err)
	}
}

func TestRootWithoutFilesFails(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "missing.toml")
	_, err := runCLI(t, "--config", cfg)
	if !errors.Is(err, app.ErrNoFiles) {
		t.Fatalf("execute = %v, want ErrNoFiles", err)
	}
}

func TestRootHelpListsKeys(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"--files", "--history", "dump", "1-9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}
