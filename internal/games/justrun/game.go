package justrun

import (
	"errors"
	"time"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/core"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
	"github.com/nprice1/just-run/internal/registry"
)

// Mode ids registered with the registry.
const (
	ModeStandard = "justrun"
	ModeClassic  = "justrun_classic"
)

// classicLevel is the builtin single-page layout used by ModeClassic.
const classicLevel = "yard"

// HighScoreStore persists the best score between sessions.
type HighScoreStore interface {
	Load() int
	Save(score int)
}

// Package-level settings applied on the next Reset. The platform sets them
// from CLI flags before creating a game.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelPath        string
	soundPlayer      SoundPlayer
	highScores       HighScoreStore
	clockFactory     func() Clock
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file's settings.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevelPath makes every mode load the level file at path instead of
// generating or using its builtin layout. An empty path restores the
// defaults.
func SetLevelPath(path string) {
	levelPath = path
}

// SetSoundPlayer routes sound effects to p.
func SetSoundPlayer(p SoundPlayer) {
	soundPlayer = p
}

// SetHighScores sets where the best score is read and written.
func SetHighScores(s HighScoreStore) {
	highScores = s
}

// SetClock overrides the frame clock. nil restores the fixed nominal step.
func SetClock(f func() Clock) {
	clockFactory = f
}

// Game adapts a World to the registry.Game interface.
type Game struct {
	mode    string
	world   *World
	cfg     config.JustRunConfig
	clock   Clock
	nominal time.Duration
	level   *tilemap.Level
	saved   bool
	err     error
}

// New creates a game for the given mode id.
func New(mode string) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Just Run (Classic)"
	}
	return "Just Run"
}

// LoadSettings resolves the config and level that the package settings
// select for mode. On error it still returns usable values: the default
// config, or a nil level meaning the mode's generated layout.
func LoadSettings(mode string) (config.JustRunConfig, *tilemap.Level, error) {
	var errs []error
	cfg, err := config.LoadJustRun(configPath)
	if err != nil {
		cfg = config.DefaultJustRunConfig()
		errs = append(errs, err)
	}
	if difficultyPreset != "" {
		config.ApplyJustRunPreset(&cfg, difficultyPreset)
	}

	var level *tilemap.Level
	switch {
	case levelPath != "":
		lvl, err := tilemap.LoadFile(levelPath)
		if err != nil {
			errs = append(errs, err)
		} else {
			level = &lvl
		}
	case mode == ModeClassic:
		lvl, err := tilemap.Builtin(classicLevel)
		if err != nil {
			errs = append(errs, err)
		} else {
			level = &lvl
		}
	}
	return cfg, level, errors.Join(errs...)
}

// Reset loads config and level and starts a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, level, err := LoadSettings(g.mode)
	if runtime.TickRate > 0 {
		cfg.World.FrameRate = runtime.TickRate
	}
	g.cfg = cfg
	g.level = level
	g.err = err

	best := 0
	if highScores != nil {
		best = highScores.Load()
	}
	g.world = NewWorld(Options{
		Config:    cfg,
		Seed:      runtime.Seed,
		Level:     g.level,
		Sound:     soundPlayer,
		HighScore: best,
	})

	g.nominal = FrameInterval(cfg.World.FrameRate)
	if clockFactory != nil {
		g.clock = clockFactory()
	} else {
		g.clock = FixedClock(g.nominal)
	}
	g.saved = false
}

// Err returns the config or level loading error of the last Reset, if any.
// The game falls back to its defaults when it is set.
func (g *Game) Err() error { return g.err }

// World exposes the simulation for the platform and tests.
func (g *Game) World() *World { return g.world }

// RunSummary reports the level reached, zombies killed and time played in
// the current run.
func (g *Game) RunSummary() (level, kills int, played time.Duration) {
	if g.world == nil {
		return 0, 0, 0
	}
	return g.world.Level(), g.world.Kills(), g.world.RunTime()
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	input := Input{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Pause: in.Has(core.ActionPause),
		Quit:  in.Has(core.ActionQuit),
	}
	switch g.world.Phase() {
	case PhaseTitle:
		input.Pause = input.Pause || in.Has(core.ActionConfirm)
	case PhaseGameOver:
		input.Pause = input.Pause || in.Has(core.ActionRestart) || in.Has(core.ActionConfirm)
	}

	elapsed := ClampElapsed(g.clock.Elapsed(), g.nominal, g.cfg.World.MaxFrameFactor)
	g.world.Step(input, elapsed)

	switch g.world.Phase() {
	case PhaseGameOver:
		if !g.saved && highScores != nil && g.world.NewHighScore() {
			highScores.Save(g.world.HighScore())
		}
		g.saved = true
	case PhasePlaying:
		g.saved = false
	}

	return core.StepResult{State: g.State(), Quit: g.world.Quit()}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	RenderScreen(dst, g.world)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	phase := g.world.Phase()
	return core.GameState{
		Score:    g.world.Score(),
		Level:    g.world.Level(),
		GameOver: phase == PhaseGameOver,
		Paused:   phase == PhasePaused || phase == PhaseTitle,
	}
}

func init() {
	registry.Register(registry.Mode{
		ID:      ModeStandard,
		Title:   "Just Run",
		Summary: "generated 60x60 streets, one 20x20 page in view",
		Order:   0,
	}, func() registry.Game { return New(ModeStandard) })
	registry.Register(registry.Mode{
		ID:      ModeClassic,
		Title:   "Just Run (Classic)",
		Summary: "the hand-made " + classicLevel + " level on a single page",
		Order:   1,
	}, func() registry.Game { return New(ModeClassic) })
}
