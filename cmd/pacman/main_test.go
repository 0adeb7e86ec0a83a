package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

func TestNewLogger(t *testing.T) {
	if _, _, err := newLogger("", "loud"); err == nil {
		t.Error("an unknown level should fail")
	}

	l, closer, err := newLogger("", "debug")
	if err != nil || l == nil || closer != nil {
		t.Errorf("newLogger(\"\") = (%v, %v, %v), expected a discarding logger", l, closer, err)
	}

	path := filepath.Join(t.TempDir(), "logs", "pacman.log")
	l, closer, err = newLogger(path, "info")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	l.Debug("hidden")
	l.Info("run finished", "score", 120)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "score=120") || strings.Contains(string(data), "hidden") {
		t.Errorf("log file = %q", data)
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	runList(cmd, nil)
	if !strings.Contains(out.String(), pacman.ID) || !strings.Contains(out.String(), "Pac-Man") {
		t.Errorf("list output = %q", out.String())
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := printScores(cmd, store, pacman.ID, "Pac-Man"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No runs recorded yet.") {
		t.Errorf("empty output = %q", out.String())
	}

	store.SaveScore(pacman.ID, 340)
	if _, err := store.SaveRun(storage.RunRecord{
		GameID: pacman.ID, Score: 340, Pellets: 30, Outcome: "lost", Duration: 95 * time.Second,
	}); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := printScores(cmd, store, pacman.ID, "Pac-Man"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"340", "lost", "local", "1m35s", "Best: 340", "Lost: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("scores output missing %q:\n%s", want, out.String())
		}
	}
}
