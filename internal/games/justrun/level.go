package justrun

import (
	"time"

	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
)

// startLevel builds the map and population for level n. Health carries over
// from the previous level unless the player died.
func (w *World) startLevel(n int) {
	health := w.cfg.Player.Health
	if w.player != nil && !w.player.Dead() {
		health = w.player.Health()
	}

	w.level = n
	w.updates = 0
	w.levelKills = 0
	w.freeze = 0
	w.cinematic.Stop()
	w.zombies = nil
	w.killed = nil
	w.powerups = nil
	w.activated = nil
	w.traps = nil
	w.tripped = nil
	w.parts = nil

	if w.fixed != nil {
		w.m = w.fixed.Map()
	} else {
		w.m = tilemap.Generate(tilemap.GenerateOptions{
			Rows:     w.cfg.World.Rows,
			Cols:     w.cfg.World.Cols,
			PageSize: w.cfg.World.PageSize,
			Blocks:   w.cfg.World.Blocks,
			MaxBlock: w.cfg.World.MaxBlock,
		}, w.rand)
	}

	w.maxEnemies = w.difficulty.MaxEnemies(w.cfg.Spawns.MaxEnemies, n, w.ticks)
	secs := w.difficulty.LevelSeconds(w.cfg.Rules.LevelSeconds, n, w.ticks)
	w.levelTicks = secs * max(w.cfg.World.FrameRate, 1)

	w.spawnLevel(health)
	w.m.SetPage(w.player.Center())
	w.phase = PhasePlaying
}

// completeLevel scores the finished level and starts the escape cinematic.
func (w *World) completeLevel() {
	gained := w.cfg.Rules.LevelBonus + w.SecondsLeft()
	w.score += gained
	w.player.held = nil
	w.sound.PlaySoundEffect(SoundPartInstall)
	w.emit(Event{Kind: EventLevelComplete, Value: w.level})
	w.phase = PhaseCinematic
	w.cinematic.Start(w.cfg.Timers.Cinematic)
}

// stepCinematic flies or drives the vehicle away, then loads the next level.
func (w *World) stepCinematic(elapsed time.Duration) {
	w.vehicle.UpdateCinematic()
	w.vehicle.Update(float64(elapsed) / float64(time.Millisecond))
	w.cinematic.Tick()
	if w.cinematic.IsExpired() {
		w.startLevel(w.level + 1)
	}
}
