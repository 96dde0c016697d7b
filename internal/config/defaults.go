package config

import (
	_ "embed"
)

//go:embed defaults/justrun.yaml
var defaultJustRunYAML []byte

// DefaultJustRunConfig returns the default Just Run configuration.
func DefaultJustRunConfig() JustRunConfig {
	return JustRunConfig{
		World: WorldConfig{
			Rows:           60,
			Cols:           60,
			PageSize:       20,
			Blocks:         90,
			MaxBlock:       4,
			FrameRate:      60,
			MaxFrameFactor: 5,
		},
		Player: PlayerConfig{
			Accel:       0.00083007812,
			MaxVelocity: 0.17859375,
			Sticky:      false,
			Health:      3,
		},
		Zombies: ZombiesConfig{
			Slow: ZombieProfile{
				Accel:       0.00003007812,
				MaxVelocity: 0.15859375,
			},
			Crazy: ZombieProfile{
				Accel:       0.00063007812,
				ChaseAccel:  0.00183007812,
				MaxVelocity: 0.15859375,
				ChaseRadius: 100,
			},
			Random: ZombieProfile{
				Accel:       0.00183007812,
				MaxVelocity: 0.20859375,
			},
			Cloud: ZombieProfile{
				Accel:       0.00083007812,
				ChaseAccel:  0.00083007812,
				MaxVelocity: 0.05859375,
				ChaseRadius: 50,
			},
			DeathTicks:       20,
			SlowFollowsTrail: false,
		},
		Spawns: SpawnConfig{
			InitialZombies:  4,
			ZombiesPerLevel: 2,
			MaxEnemies:      40,
			PowerupRolls:    6,
			PowerupChance:   20,
			TrapRolls:       4,
			TrapChance:      30,
			CloudEvery:      300,
			Retries:         50,
		},
		Rules: RulesConfig{
			LevelSeconds:    90,
			LevelBonus:      100,
			KillScore:       10,
			WipeOutRadius:   200,
			WipeOutBonus:    2,
			NukeCrazyChance: 8,
		},
		Timers: TimerConfig{
			Immunity:      60,
			Teleport:      20,
			Freeze:        300,
			Bat:           0,
			DebuffCadence: 20,
			Effect:        30,
			TrapClosing:   6,
			TrapHold:      120,
			Cinematic:     120,
			Dying:         60,
			FollowEvery:   10,
		},
		Controls: ControlsConfig{
			HardStop:  true,
			HoldTicks: 18,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				ZombieMultiplier: 1.0,
				EnemyCapBonus:    20,
				TimerReduction:   30,
			},
		},
	}
}
