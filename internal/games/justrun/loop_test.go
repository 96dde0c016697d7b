package justrun

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/core"
	"github.com/nprice1/just-run/internal/games/justrun/enemies"
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
	"github.com/nprice1/just-run/internal/registry"
)

func TestClampElapsed(t *testing.T) {
	nominal := FrameInterval(60)
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"normal frame", nominal, nominal},
		{"slow frame", 3 * nominal, 3 * nominal},
		{"stall", time.Second, 5 * nominal},
		{"exactly the limit", 5 * nominal, 5 * nominal},
		{"negative", -time.Millisecond, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampElapsed(tt.in, nominal, 5); got != tt.want {
				t.Errorf("ClampElapsed(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFrameInterval(t *testing.T) {
	if got := FrameInterval(50); got != 20*time.Millisecond {
		t.Errorf("FrameInterval(50) = %v", got)
	}
	if FrameInterval(0) != FrameInterval(60) {
		t.Error("zero fps should default to 60")
	}
}

func TestWallClock(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	c := &WallClock{last: base, now: func() time.Time { return now }}

	now = now.Add(40 * time.Millisecond)
	if got := c.Elapsed(); got != 40*time.Millisecond {
		t.Errorf("Elapsed = %v", got)
	}
	now = now.Add(time.Second)
	if got := c.Elapsed(); got != time.Second {
		t.Errorf("Elapsed = %v", got)
	}
}

func TestRunClampsStalls(t *testing.T) {
	w := NewWorld(Options{Config: config.DefaultJustRunConfig(), Seed: 9, SkipTitle: true})
	var sleeps, overruns int
	err := Run(context.Background(), w, LoopOptions{
		Clock:     FixedClock(time.Hour),
		Sleep:     func(time.Duration) { sleeps++ },
		OnOverrun: func(time.Duration) { overruns++ },
		MaxFrames: 5,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if w.Ticks() != 5 {
		t.Errorf("ticks = %d, want 5", w.Ticks())
	}
	want := 5 * 5 * FrameInterval(60)
	if w.RunTime() != want {
		t.Errorf("run time = %v, want %v", w.RunTime(), want)
	}
	if sleeps+overruns != 5 {
		t.Errorf("sleeps=%d overruns=%d, want one per frame", sleeps, overruns)
	}
}

func TestRunStopsOnQuitAndCancel(t *testing.T) {
	w := NewWorld(Options{Config: config.DefaultJustRunConfig(), Seed: 9, SkipTitle: true})
	frames := 0
	err := Run(context.Background(), w, LoopOptions{
		Clock: FixedClock(FrameInterval(60)),
		Sleep: func(time.Duration) {},
		Input: func() Input {
			frames++
			return Input{Quit: frames == 3}
		},
	})
	if err != nil || frames != 3 {
		t.Fatalf("err=%v frames=%d, want nil and 3", err, frames)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, w, LoopOptions{Sleep: func(time.Duration) {}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type recordingRenderer struct {
	kinds map[string]int
}

func (r *recordingRenderer) Draw(s sprite.Sprite, sx, sy float64) {
	r.kinds[s.Kind.String()]++
}

func TestDrawCullsOffPage(t *testing.T) {
	w := newTestWorld(t, openLevel(t, 40, 20))
	w.addZombie(enemies.Slow, 200, 200)
	w.addZombie(enemies.Slow, 900, 900)

	r := &recordingRenderer{kinds: map[string]int{}}
	w.Draw(r)
	if r.kinds["zombie"] != 1 {
		t.Errorf("drew %d zombies, want only the on-page one", r.kinds["zombie"])
	}
	if r.kinds["player"] != 1 || r.kinds["vehicle"] != 1 {
		t.Errorf("draw counts = %v", r.kinds)
	}
}

func TestToCells(t *testing.T) {
	tests := []struct {
		v    float64
		per  int
		want int
	}{
		{0, 2, 0},
		{geom.TileSize, 2, 2},
		{geom.HalfTile, 1, 0},
		{-1, 1, -1},
		{-geom.HalfTile, 2, -1},
		{-geom.TileSize - 1, 1, -2},
	}
	for _, tc := range tests {
		if got := toCells(tc.v, tc.per); got != tc.want {
			t.Errorf("toCells(%v, %d) = %d, want %d", tc.v, tc.per, got, tc.want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	w := newTestWorld(t, openLevel(t, 20, 20))
	dst := core.NewScreen(80, 24)
	RenderScreen(dst, w)

	if !strings.Contains(dst.Row(0), "Score 0") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}
	if !strings.Contains(dst.String(), "@") {
		t.Error("player not drawn")
	}
	if !strings.Contains(dst.String(), "HELI") {
		t.Error("vehicle not drawn")
	}

	w.phase = PhaseGameOver
	RenderScreen(dst, w)
	if !strings.Contains(dst.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

type memoryScores struct {
	best  int
	saves []int
}

func (m *memoryScores) Load() int { return m.best }

func (m *memoryScores) Save(score int) {
	m.best = score
	m.saves = append(m.saves, score)
}

func TestGameAdapter(t *testing.T) {
	store := &memoryScores{best: 10}
	SetHighScores(store)
	t.Cleanup(func() { SetHighScores(nil) })

	g, err := registry.Create(ModeClassic)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})
	game := g.(*Game)
	if game.World().Map().Rows() != 20 {
		t.Errorf("classic mode should use the single-page yard")
	}
	if !g.State().Paused {
		t.Error("game should start on the title screen")
	}

	var in core.InputFrame
	in.Set(core.ActionConfirm)
	g.Step(in)
	if g.State().Paused {
		t.Fatal("confirm should start the game")
	}

	w := game.World()
	w.score = 25
	w.levelTicks = 1
	in.Clear()
	for i := 0; i <= w.cfg.Timers.Dying; i++ {
		g.Step(in)
	}
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	g.Step(in)
	if len(store.saves) != 1 || store.saves[0] != 25 {
		t.Errorf("saves = %v, want [25]", store.saves)
	}
	if level, _, played := game.RunSummary(); level != 1 || played <= 0 {
		t.Errorf("RunSummary = level %d, %v played", level, played)
	}

	in.Set(core.ActionRestart)
	g.Step(in)
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("restart state = %+v", g.State())
	}

	in.Clear()
	in.Set(core.ActionQuit)
	if res := g.Step(in); !res.Quit {
		t.Error("quit action should end the session")
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeStandard, ModeClassic} {
		if _, ok := registry.Lookup(id); !ok {
			t.Errorf("mode %q not registered", id)
		}
	}
}
