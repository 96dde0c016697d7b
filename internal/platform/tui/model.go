package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/core"
	"github.com/nprice1/just-run/internal/registry"
	"github.com/nprice1/just-run/internal/storage"
)

// RunReporter is implemented by games that track more than a score.
type RunReporter interface {
	RunSummary() (level, kills int, played time.Duration)
}

// Options configures a GameModel.
type Options struct {
	Config core.RuntimeConfig
	// Store receives a run record at every game over. May be nil.
	Store *storage.Store
	// Logger reports persistence failures. May be nil.
	Logger *log.Logger
	// HoldTicks is how long a direction stays held after a key press.
	HoldTicks int
	// ScreenshotDir defaults to ~/.justrun/screenshots.
	ScreenshotDir string
}

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	keys       KeyMap
	help       help.Model
	latch      *HoldLatch
	pending    core.InputFrame // one-shot actions since the last tick
	frame      core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	recorded   bool // run saved for the current game over
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, opts Options) GameModel {
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = 60
	}
	if opts.HoldTicks <= 0 {
		opts.HoldTicks = config.DefaultJustRunConfig().Controls.HoldTicks
	}

	h := help.New()
	h.Width = opts.Config.ScreenW

	return GameModel{
		game:    game,
		screen:  core.NewScreen(opts.Config.ScreenW, max(opts.Config.ScreenH-1, 1)),
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    h,
		latch:   NewHoldLatch(opts.HoldTicks),
		pending: core.NewInputFrame(),
		frame:   core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.opts.Config)
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world does not depend on the terminal size, so a resize
		// only changes the viewport.
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save screenshot", "error", err)
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
		return m, nil
	}
	if !m.latch.Press(action) && action != core.ActionNone {
		m.pending.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.frame.Clear()
	for a, on := range m.pending.Actions {
		if on {
			m.frame.Set(a)
		}
	}
	m.pending.Clear()
	m.latch.Apply(&m.frame)

	result := m.game.Step(m.frame)
	m.gameState = result.State

	if m.gameState.GameOver {
		if !m.recorded {
			m.recordRun()
			m.recorded = true
		}
		m.latch.Release()
	} else {
		m.recorded = false
	}

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.opts.Config.TickRate)
}

// recordRun saves the finished run. Failures are logged; the game goes on.
func (m *GameModel) recordRun() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	run := storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
	}
	if r, ok := m.game.(RunReporter); ok {
		run.Level, run.Kills, run.Duration = r.RunSummary()
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save run", "game", run.GameID, "score", run.Score, "error", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() error {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
		dir = filepath.Join(home, ".justrun", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current frame and a help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewGameModel(game, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
