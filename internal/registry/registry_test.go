package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("reg-test-b", func() Game { return &stubGame{id: "reg-test-b"} })
	Register("reg-test-a", func() Game { return &stubGame{id: "reg-test-a"} })

	if !Exists("reg-test-a") {
		t.Error("Exists(reg-test-a) = false, expected true")
	}
	if Exists("reg-test-missing") {
		t.Error("Exists(reg-test-missing) = true, expected false")
	}

	g, err := Create("reg-test-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "reg-test-a" {
		t.Errorf("Create().ID() = %q, expected %q", g.ID(), "reg-test-a")
	}

	if _, err := Create("reg-test-missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	Register("reg-list-z", func() Game { return &stubGame{id: "reg-list-z"} })
	Register("reg-list-y", func() Game { return &stubGame{id: "reg-list-y"} })

	var ids []string
	for _, info := range List() {
		if !strings.HasPrefix(info.ID, "reg-list-") {
			continue
		}
		if info.Title != strings.ToUpper(info.ID) {
			t.Errorf("title for %s = %q", info.ID, info.Title)
		}
		ids = append(ids, info.ID)
	}
	if len(ids) != 2 || ids[0] != "reg-list-y" || ids[1] != "reg-list-z" {
		t.Errorf("List() ids = %v, expected sorted [reg-list-y reg-list-z]", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("reg-dup", func() Game { return &stubGame{id: "reg-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register() with the same id should panic")
		}
	}()
	Register("reg-dup", func() Game { return &stubGame{id: "reg-dup"} })
}
