package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		GameID:   "pacman",
		Player:   "alice",
		Seed:     42,
		Score:    1830,
		Pellets:  183,
		Outcome:  "won",
		Duration: 95*time.Second + 250*time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRun() returned non-UUID id %q: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil, expected the saved run")
	}
	if got.Player != "alice" || got.Seed != 42 || got.Score != 1830 || got.Pellets != 183 || got.Outcome != "won" {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Duration != 95250*time.Millisecond {
		t.Errorf("Duration = %v, expected 1m35.25s", got.Duration)
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.NewString()

	id, err := store.SaveRun(RunRecord{ID: want, GameID: "pacman", Outcome: "lost"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveRun() = %q, expected %q", id, want)
	}

	if _, err := store.SaveRun(RunRecord{ID: "not-a-uuid", GameID: "pacman", Outcome: "lost"}); err == nil {
		t.Error("SaveRun() accepted a malformed ID")
	}
	if _, err := store.SaveRun(RunRecord{ID: want, GameID: "pacman", Outcome: "lost"}); err == nil {
		t.Error("SaveRun() accepted a duplicate ID")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, expected nil", got)
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "pacman", Score: 500, Duration: 60 * time.Second, Outcome: "lost"},
		{GameID: "pacman", Score: 900, Duration: 90 * time.Second, Outcome: "lost"},
		{GameID: "pacman", Score: 900, Duration: 70 * time.Second, Outcome: "won"},
		{GameID: "other", Score: 5000, Outcome: "won"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.TopRuns("pacman", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("TopRuns() returned %d runs, expected 3", len(got))
	}
	if got[0].Score != 900 || got[0].Duration != 70*time.Second {
		t.Errorf("first run = %+v, expected the faster 900", got[0])
	}
	if got[2].Score != 500 {
		t.Errorf("last run score = %d, expected 500", got[2].Score)
	}
}

func TestOutcomeCounts(t *testing.T) {
	store := openTestStore(t)

	for _, outcome := range []string{"won", "lost", "lost", "abandoned"} {
		if _, err := store.SaveRun(RunRecord{GameID: "pacman", Outcome: outcome}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	counts, err := store.OutcomeCounts("pacman")
	if err != nil {
		t.Fatalf("OutcomeCounts() failed: %v", err)
	}
	want := map[string]int{"won": 1, "lost": 2, "abandoned": 1}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("counts[%q] = %d, expected %d", k, counts[k], v)
		}
	}
}
