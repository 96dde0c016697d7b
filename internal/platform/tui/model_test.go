package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nprice1/just-run/internal/core"
	_ "github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/registry"
	"github.com/nprice1/just-run/internal/storage"
)

// stubGame ends after endAt steps and records every input frame.
type stubGame struct {
	endAt  int
	steps  int
	score  int
	paused bool
	frames []core.InputFrame
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.steps = 0 }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "STUB") }
func (g *stubGame) RunSummary() (int, int, time.Duration) {
	return 2, 5, 90 * time.Second
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	cp := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			cp.Set(a)
		}
	}
	g.frames = append(g.frames, cp)
	g.steps++
	return core.StepResult{State: g.State(), Quit: in.Has(core.ActionQuit)}
}

func (g *stubGame) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    1,
		GameOver: g.endAt > 0 && g.steps >= g.endAt,
		Paused:   g.paused,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestGameModelHoldsDirections(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, Options{Config: testConfig(), HoldTicks: 3})
	m.Init()

	m = press(t, m, runes("a"))
	m = press(t, m, runes("p"))
	for range 5 {
		m = tick(t, m)
	}

	if len(g.frames) != 5 {
		t.Fatalf("steps = %d, want 5", len(g.frames))
	}
	for i, f := range g.frames {
		if want := i < 3; f.Has(core.ActionLeft) != want {
			t.Errorf("frame %d: left held = %v, want %v", i, f.Has(core.ActionLeft), want)
		}
		if want := i == 0; f.Has(core.ActionPause) != want {
			t.Errorf("frame %d: pause = %v, want %v", i, f.Has(core.ActionPause), want)
		}
	}
}

func TestGameModelRecordsRunOnce(t *testing.T) {
	store := testStore(t)
	g := &stubGame{endAt: 2, score: 42}
	m := NewGameModel(g, Options{Config: testConfig(), Store: store})
	m.Init()

	for range 6 {
		m = tick(t, m)
	}
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.Score != 42 || r.Level != 2 || r.Kills != 5 || r.Duration != 90*time.Second {
		t.Errorf("run = %+v", r)
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	store := testStore(t)
	m := NewGameModel(&stubGame{endAt: 1}, Options{Config: testConfig(), Store: store})
	m.Init()
	m = tick(t, m)

	if runs, _ := store.TopRuns("stub", 10); len(runs) != 0 {
		t.Errorf("zero-score run recorded: %+v", runs)
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, Options{Config: testConfig()})
	m.Init()
	m = tick(t, m)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	g.paused = true
	m = tick(t, m)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}

	m = press(t, m, runes("q"))
	m = tick(t, m)
	if !m.IsQuitting() {
		t.Error("q should end the session once the game reports quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := NewGameModel(&stubGame{}, Options{Config: testConfig(), ScreenshotDir: dir})
	m.Init()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(dir, "stub_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v, %v", files, err)
	}
}

func TestGameModelPlaysJustRun(t *testing.T) {
	game, err := registry.Create("justrun_classic")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m := NewGameModel(game, Options{Config: testConfig()})
	m.Init()

	m = tick(t, m)
	if !m.State().Paused {
		t.Fatal("game should open on the title screen")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	if m.State().Paused {
		t.Fatal("enter should start the game")
	}

	view := m.View()
	if !strings.Contains(view, "Score") {
		t.Errorf("view missing HUD:\n%s", view)
	}
	if got := strings.Count(view, "\n"); got != 23 {
		t.Errorf("view has %d line breaks, want 23", got)
	}
}

func TestWindowResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, Options{Config: testConfig()})
	m.Init()
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(GameModel)
	m = tick(t, m)
	if g.steps != 2 {
		t.Errorf("resize reset the game: steps = %d", g.steps)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}
