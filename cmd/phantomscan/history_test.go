package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/phantomsec/phantomscan/internal/archive"
	"github.com/phantomsec/phantomscan/internal/model"
)

// seedArchive creates an archive in dir with the given audit summaries.
func seedArchive(t *testing.T, dir string, counts map[string]int) {
	t.Helper()

	store, err := archive.Open(dir, archive.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer func() { _ = store.Close() }()

	for source, n := range counts {
		summary := model.RedactionSummary{
			TotalRedactions: n,
			PerCategory: map[model.EntityCategory]int{
				model.CategoryEmailAddress: n,
			},
		}
		if err := store.Insert(context.Background(), archive.NewRecord(source, summary)); err != nil {
			t.Fatalf("failed to insert record: %v", err)
		}
	}
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"limit", "json", "archive-dir"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})
}

// TestRunHistoryCmd tests the history command against a seeded archive.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists archived runs", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir, map[string]int{
			"exports/users.csv": 3,
			"notes.txt":         42,
		})

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--archive-dir", tmpDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "notes.txt") {
			t.Error("expected notes.txt in listing")
		}
		if !strings.Contains(output, "tier=High") {
			t.Error("expected High tier for 42 redactions")
		}
		if !strings.Contains(output, "2 runs, 45 redactions, 1 high-risk runs") {
			t.Errorf("expected archive totals, got %q", output)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir, map[string]int{"notes.txt": 2})

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--archive-dir", tmpDir, "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var payload struct {
			Runs       []*archive.Record `json:"runs"`
			Statistics *archive.Stats    `json:"statistics"`
		}
		if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(payload.Runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(payload.Runs))
		}
		if payload.Runs[0].Source != "notes.txt" {
			t.Errorf("expected source notes.txt, got %q", payload.Runs[0].Source)
		}
		if payload.Statistics.TotalRuns != 1 {
			t.Errorf("expected 1 total run, got %d", payload.Statistics.TotalRuns)
		}
	})

	t.Run("limit caps the listing", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		seedArchive(t, tmpDir, map[string]int{"a.txt": 1, "b.txt": 2, "c.txt": 3})

		var out bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--archive-dir", tmpDir, "--limit", "2", "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var payload struct {
			Runs []*archive.Record `json:"runs"`
		}
		if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(payload.Runs) != 2 {
			t.Errorf("expected 2 runs, got %d", len(payload.Runs))
		}
	})

	t.Run("missing archive is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--archive-dir", t.TempDir()})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for missing archive")
		}
		if !strings.Contains(err.Error(), "no archive found") {
			t.Errorf("expected no archive error, got %v", err)
		}
	})
}
