// Package config provides YAML/TOML game configuration loading and
// difficulty management for Just Run.
package config

// JustRunConfig contains all tunables of the simulation.
type JustRunConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Zombies    ZombiesConfig    `yaml:"zombies" toml:"zombies"`
	Spawns     SpawnConfig      `yaml:"spawns" toml:"spawns"`
	Rules      RulesConfig      `yaml:"rules" toml:"rules"`
	Timers     TimerConfig      `yaml:"timers" toml:"timers"`
	Controls   ControlsConfig   `yaml:"controls" toml:"controls"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// WorldConfig defines map generation and frame timing.
type WorldConfig struct {
	Rows           int `yaml:"rows" toml:"rows"`                         // Tiles
	Cols           int `yaml:"cols" toml:"cols"`                         // Tiles
	PageSize       int `yaml:"page_size" toml:"page_size"`               // Visible window edge in tiles
	Blocks         int `yaml:"blocks" toml:"blocks"`                     // Interior wall blocks to attempt
	MaxBlock       int `yaml:"max_block" toml:"max_block"`               // Largest block edge in tiles
	FrameRate      int `yaml:"frame_rate" toml:"frame_rate"`             // Target updates per second
	MaxFrameFactor int `yaml:"max_frame_factor" toml:"max_frame_factor"` // Elapsed clamp in nominal frames
}

// PlayerConfig defines the player's physics and health.
type PlayerConfig struct {
	Accel       float64 `yaml:"accel" toml:"accel"`               // Units per ms²
	MaxVelocity float64 `yaml:"max_velocity" toml:"max_velocity"` // Units per ms
	Sticky      bool    `yaml:"sticky" toml:"sticky"`             // Jump to max velocity while a key is held
	Health      int     `yaml:"health" toml:"health"`
}

// ZombieProfile is the tuning of one zombie variant.
type ZombieProfile struct {
	Accel       float64 `yaml:"accel" toml:"accel"`
	ChaseAccel  float64 `yaml:"chase_accel" toml:"chase_accel"`
	MaxVelocity float64 `yaml:"max_velocity" toml:"max_velocity"`
	ChaseRadius float64 `yaml:"chase_radius" toml:"chase_radius"`
}

// ZombiesConfig groups the per-variant profiles.
type ZombiesConfig struct {
	Slow       ZombieProfile `yaml:"slow" toml:"slow"`
	Crazy      ZombieProfile `yaml:"crazy" toml:"crazy"`
	Random     ZombieProfile `yaml:"random" toml:"random"`
	Cloud      ZombieProfile `yaml:"cloud" toml:"cloud"`
	DeathTicks int           `yaml:"death_ticks" toml:"death_ticks"` // Killed animation length
	// SlowFollowsTrail makes Slow zombies chase the lagging follow point
	// instead of the player's live position.
	SlowFollowsTrail bool `yaml:"slow_follows_trail" toml:"slow_follows_trail"`
}

// SpawnConfig defines population sizes and spawn odds.
type SpawnConfig struct {
	InitialZombies  int `yaml:"initial_zombies" toml:"initial_zombies"`
	ZombiesPerLevel int `yaml:"zombies_per_level" toml:"zombies_per_level"`
	MaxEnemies      int `yaml:"max_enemies" toml:"max_enemies"`
	PowerupRolls    int `yaml:"powerup_rolls" toml:"powerup_rolls"`   // Powerup spawn attempts per level
	PowerupChance   int `yaml:"powerup_chance" toml:"powerup_chance"` // Percent per attempt
	TrapRolls       int `yaml:"trap_rolls" toml:"trap_rolls"`
	TrapChance      int `yaml:"trap_chance" toml:"trap_chance"`
	CloudEvery      int `yaml:"cloud_every" toml:"cloud_every"` // Updates between Cloud replenishments
	Retries         int `yaml:"retries" toml:"retries"`         // Placement attempts before the fallback
}

// RulesConfig defines scoring and powerup effects.
type RulesConfig struct {
	LevelSeconds    int     `yaml:"level_seconds" toml:"level_seconds"`
	LevelBonus      int     `yaml:"level_bonus" toml:"level_bonus"`
	KillScore       int     `yaml:"kill_score" toml:"kill_score"`
	WipeOutRadius   float64 `yaml:"wipe_out_radius" toml:"wipe_out_radius"`
	WipeOutBonus    int     `yaml:"wipe_out_bonus" toml:"wipe_out_bonus"`       // Seconds per zombie wiped out
	NukeCrazyChance int     `yaml:"nuke_crazy_chance" toml:"nuke_crazy_chance"` // Out of 10
}

// TimerConfig defines countdown lengths in updates.
type TimerConfig struct {
	Immunity      int `yaml:"immunity" toml:"immunity"`
	Teleport      int `yaml:"teleport" toml:"teleport"`
	Freeze        int `yaml:"freeze" toml:"freeze"`
	Bat           int `yaml:"bat" toml:"bat"` // 0 keeps the bat until it is used
	DebuffCadence int `yaml:"debuff_cadence" toml:"debuff_cadence"`
	Effect        int `yaml:"effect" toml:"effect"` // Powerup effect animation
	TrapClosing   int `yaml:"trap_closing" toml:"trap_closing"`
	TrapHold      int `yaml:"trap_hold" toml:"trap_hold"`
	Cinematic     int `yaml:"cinematic" toml:"cinematic"`
	Dying         int `yaml:"dying" toml:"dying"`
	FollowEvery   int `yaml:"follow_every" toml:"follow_every"`
}

// ControlsConfig defines how intents map to motion.
type ControlsConfig struct {
	HardStop  bool `yaml:"hard_stop" toml:"hard_stop"`   // Zero velocity when no direction is held
	HoldTicks int  `yaml:"hold_ticks" toml:"hold_ticks"` // Terminal key hold window
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "level", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Level/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ZombieMultiplier float64 `yaml:"zombie_multiplier" toml:"zombie_multiplier"` // Extra zombies per level at max difficulty
	EnemyCapBonus    int     `yaml:"enemy_cap_bonus" toml:"enemy_cap_bonus"`     // Extra max enemies at max difficulty
	TimerReduction   int     `yaml:"timer_reduction" toml:"timer_reduction"`     // Level seconds removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
