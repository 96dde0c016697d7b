package config

import "math"

// DifficultyManager calculates per-level game parameters.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for the given
// game level and elapsed ticks.
func (d *DifficultyManager) Level(level int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(level-1) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Zombies returns how many zombies to spawn at the start of a level.
func (d *DifficultyManager) Zombies(base, perLevel, level, ticks int) int {
	growth := float64(perLevel) * float64(max(level-1, 0))
	extra := d.Level(level, ticks) * d.cfg.Scaling.ZombieMultiplier * float64(max(level-1, 0))
	return base + int(growth+extra)
}

// MaxEnemies returns the live-zombie cap for a level.
func (d *DifficultyManager) MaxEnemies(base, level, ticks int) int {
	return base + int(d.Level(level, ticks)*float64(d.cfg.Scaling.EnemyCapBonus))
}

// LevelSeconds returns the level timer length in seconds.
func (d *DifficultyManager) LevelSeconds(base, level, ticks int) int {
	reduction := int(d.Level(level, ticks) * float64(d.cfg.Scaling.TimerReduction))
	result := base - reduction
	if result < 15 { // Minimum playable timer
		result = 15
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
