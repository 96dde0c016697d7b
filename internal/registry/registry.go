// Package registry keeps the playable modes. Each mode registers a Mode
// description and a factory from an init() function, so the CLI, menu and
// scoreboard can list and start modes without importing the game.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/nprice1/just-run/internal/core"
)

// Game is the interface every playable mode implements. Games are pure
// logic; the platform maps input, keeps time and draws.
type Game interface {
	// ID returns the mode id the game was created for. It keys score
	// storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh run. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns score, level, pause and game-over flags.
	State() core.GameState
}

// Mode describes a registered mode.
type Mode struct {
	ID      string
	Title   string
	Summary string // one line for menus and `justrun list`
	Order   int    // listing position; ties sort by ID
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	mode    Mode
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a mode. It panics on an empty or duplicate id, which can
// only come from a programming error in an init() function.
func Register(m Mode, f Factory) {
	if m.ID == "" || f == nil {
		panic("registry: mode needs an id and a factory")
	}
	if m.Title == "" {
		m.Title = m.ID
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := entries[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	entries[m.ID] = entry{mode: m, factory: f}
}

// List returns every registered mode by Order, then ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	modes := make([]Mode, 0, len(entries))
	for _, e := range entries {
		modes = append(modes, e.mode)
	}
	slices.SortFunc(modes, func(a, b Mode) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return modes
}

// Lookup returns the description of a registered mode.
func Lookup(id string) (Mode, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.mode, ok
}

// Create instantiates a game for the mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}
