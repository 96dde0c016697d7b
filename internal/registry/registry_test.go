package registry

import (
	"testing"

	"github.com/nprice1/just-run/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func stub(id string) Factory {
	return func() Game { return &stubGame{id: id} }
}

func indexOf(modes []Mode, id string) int {
	for i, m := range modes {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func TestRegisterCreateList(t *testing.T) {
	Register(Mode{ID: "zz_stub_b", Title: "Stub B", Order: 100}, stub("zz_stub_b"))
	Register(Mode{ID: "zz_stub_a", Title: "Stub A", Order: 100}, stub("zz_stub_a"))
	Register(Mode{ID: "zz_stub_c", Summary: "first", Order: 99}, stub("zz_stub_c"))

	m, ok := Lookup("zz_stub_c")
	if !ok {
		t.Fatal("registered mode not found")
	}
	if m.Title != "zz_stub_c" || m.Summary != "first" {
		t.Errorf("Lookup = %+v, want the id as title", m)
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("ID = %q", g.ID())
	}

	modes := List()
	ia, ib, ic := indexOf(modes, "zz_stub_a"), indexOf(modes, "zz_stub_b"), indexOf(modes, "zz_stub_c")
	if ia < 0 || ib < 0 || ic < 0 || !(ic < ia && ia < ib) {
		t.Errorf("List not ordered by Order then ID: %+v", modes)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-mode"); err == nil {
		t.Fatal("expected error for unknown id")
	}
	if _, ok := Lookup("no-such-mode"); ok {
		t.Fatal("Lookup found an unknown id")
	}
}

func TestRegisterPanics(t *testing.T) {
	Register(Mode{ID: "zz_stub_dup"}, stub("zz_stub_dup"))

	tests := []struct {
		name string
		mode Mode
		f    Factory
	}{
		{"duplicate", Mode{ID: "zz_stub_dup"}, stub("zz_stub_dup")},
		{"empty id", Mode{Title: "Nameless"}, stub("")},
		{"nil factory", Mode{ID: "zz_stub_nil"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			Register(tc.mode, tc.f)
		})
	}
}
