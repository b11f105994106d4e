package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/phantomsec/phantomscan/internal/config"
)

// TestNewServeCmd tests the serve command creation.
func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "serve" {
			t.Errorf("expected use 'serve', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"addr", "alert-threshold", "archive-dir", "no-archive", "breach-url"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("defaults to localhost", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("addr")
		if flag.DefValue != config.DefaultListenAddr {
			t.Errorf("expected default %q, got %q", config.DefaultListenAddr, flag.DefValue)
		}
	})
}

// TestRunServeCmd tests the serve run path end to end: the command must
// start without file targets and shut down cleanly on context cancel.
func TestRunServeCmd(t *testing.T) {
	t.Run("starts and stops without targets", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		cmd := NewServeCmd()
		cmd.SetArgs([]string{"--addr", "127.0.0.1:0", "--no-archive"})

		if err := cmd.ExecuteContext(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid alert threshold is rejected", func(t *testing.T) {
		cmd := NewServeCmd()
		cmd.SetArgs([]string{"--addr", "127.0.0.1:0", "--no-archive", "--alert-threshold", "0"})

		err := cmd.ExecuteContext(context.Background())
		if err == nil {
			t.Fatal("expected error for zero alert threshold")
		}
		if !strings.Contains(err.Error(), "configuration error") {
			t.Errorf("expected configuration error, got %v", err)
		}
	})
}

// TestBuildServeConfig tests flag and environment precedence.
func TestBuildServeConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := NewServeCmd()

		cfg, err := buildServeConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddr != config.DefaultListenAddr {
			t.Errorf("expected default addr, got %q", cfg.ListenAddr)
		}
		if cfg.BreachBaseURL != config.DefaultBreachBaseURL {
			t.Errorf("expected default breach URL, got %q", cfg.BreachBaseURL)
		}
		if !cfg.SaveToArchive {
			t.Error("expected archiving enabled by default")
		}
		if cfg.ArchiveDir != config.XDGDataDir() {
			t.Errorf("expected XDG archive dir, got %q", cfg.ArchiveDir)
		}
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv(envListenAddr, "127.0.0.1:9999")
		t.Setenv(envBreachURL, "http://localhost:8080/range/")

		cmd := NewServeCmd()

		cfg, err := buildServeConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddr != "127.0.0.1:9999" {
			t.Errorf("expected env addr, got %q", cfg.ListenAddr)
		}
		if cfg.BreachBaseURL != "http://localhost:8080/range/" {
			t.Errorf("expected env breach URL, got %q", cfg.BreachBaseURL)
		}
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv(envListenAddr, "127.0.0.1:9999")

		cmd := NewServeCmd()
		if err := cmd.Flags().Set("addr", "127.0.0.1:7777"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildServeConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddr != "127.0.0.1:7777" {
			t.Errorf("expected flag addr, got %q", cfg.ListenAddr)
		}
	})

	t.Run("no-archive disables saving", func(t *testing.T) {
		cmd := NewServeCmd()
		if err := cmd.Flags().Set("no-archive", "true"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildServeConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SaveToArchive {
			t.Error("expected SaveToArchive to be false")
		}
	})

	t.Run("archive dir from environment", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv(envArchiveDir, tmpDir)

		cmd := NewServeCmd()

		cfg, err := buildServeConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ArchiveDir != tmpDir {
			t.Errorf("expected env archive dir, got %q", cfg.ArchiveDir)
		}
	})
}
