// Package justrun is the Just Run simulation: a fixed-timestep world in
// which the player runs from zombies across a paged tile map, collecting
// vehicle parts to escape each level.
//
// World owns every mutable piece of game state and is driven by exactly one
// goroutine. Other goroutines (renderers, spectators, audio) only ever see
// a Snapshot.
package justrun

import (
	"time"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/games/justrun/enemies"
	"github.com/nprice1/just-run/internal/games/justrun/pickups"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/rng"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
	"github.com/nprice1/just-run/internal/games/justrun/vehicle"
)

// Phase is the top-level state of a run.
type Phase uint8

const (
	PhaseTitle Phase = iota // Paused before the first frame, high score shown
	PhasePlaying
	PhasePaused
	PhaseCinematic // Vehicle escaping, no input
	PhaseDying     // Player death animation
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseTitle:     "title",
	PhasePlaying:   "playing",
	PhasePaused:    "paused",
	PhaseCinematic: "cinematic",
	PhaseDying:     "dying",
	PhaseGameOver:  "gameover",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Options configures a World.
type Options struct {
	Config config.JustRunConfig
	Seed   int64
	// Level, when set, replaces map generation with a fixed layout.
	Level *tilemap.Level
	// Sound receives effect ids; nil discards them.
	Sound SoundPlayer
	// HighScore is the best score known at startup.
	HighScore int
	// SkipTitle starts in PhasePlaying instead of on the title screen.
	SkipTitle bool
}

// World is the whole simulation state.
type World struct {
	cfg        config.JustRunConfig
	difficulty *config.DifficultyManager
	rand       *rng.Source
	sound      SoundPlayer
	fixed      *tilemap.Level
	profiles   [enemies.Cloud + 1]enemies.Profile

	m         *tilemap.Map
	player    *Player
	zombies   []*enemies.Zombie
	killed    []*enemies.Zombie
	powerups  []*pickups.Powerup
	activated []*pickups.Powerup
	traps     []*pickups.Trap
	tripped   []*pickups.Trap
	parts     []*vehicle.Part
	vehicle   *vehicle.Vehicle

	phase      Phase
	level      int
	score      int
	kills      int
	levelKills int
	ticks      int // Playing frames over the whole run
	updates    int // Playing frames in the current level
	levelTicks int // Frames left on the level timer
	maxEnemies int
	freeze     int
	cinematic  physics.Countdown
	dying      physics.Countdown
	highScore  int
	newBest    bool
	quit       bool
	runTime    time.Duration

	events []Event
}

// NewWorld builds a world and starts level 1.
func NewWorld(opts Options) *World {
	cfg := opts.Config
	w := &World{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rand:       rng.New(opts.Seed),
		sound:      opts.Sound,
		fixed:      opts.Level,
		highScore:  opts.HighScore,
	}
	if w.sound == nil {
		w.sound = NopSound{}
	}
	w.profiles = zombieProfiles(cfg.Zombies)
	w.newGame()
	if opts.SkipTitle {
		w.phase = PhasePlaying
	}
	return w
}

// zombieProfiles converts configured profiles to the enemies package form.
func zombieProfiles(cfg config.ZombiesConfig) [enemies.Cloud + 1]enemies.Profile {
	var out [enemies.Cloud + 1]enemies.Profile
	set := func(k enemies.Kind, c config.ZombieProfile) {
		p := enemies.DefaultProfile(k)
		p.Accel = c.Accel
		p.ChaseAccel = c.ChaseAccel
		p.MaxVelocity = c.MaxVelocity
		p.ChaseRadius = c.ChaseRadius
		out[k] = p
	}
	set(enemies.Slow, cfg.Slow)
	set(enemies.Crazy, cfg.Crazy)
	set(enemies.Random, cfg.Random)
	set(enemies.Cloud, cfg.Cloud)
	return out
}

// newGame resets score, health and level, and shows the title screen.
func (w *World) newGame() {
	w.level = 0
	w.score = 0
	w.kills = 0
	w.ticks = 0
	w.runTime = 0
	w.newBest = false
	w.player = nil
	w.dying.Stop()
	w.startLevel(1)
	w.phase = PhaseTitle
}

// Step advances the world by one frame. elapsed is the already clamped
// frame duration.
func (w *World) Step(in Input, elapsed time.Duration) {
	w.events = w.events[:0]
	if in.Quit {
		w.quit = true
		return
	}

	switch w.phase {
	case PhaseTitle:
		if in.Pause || in.Moving() {
			w.phase = PhasePlaying
		}
		return
	case PhasePaused:
		if in.Pause {
			w.phase = PhasePlaying
		}
		return
	case PhaseGameOver:
		if in.Pause {
			w.newGame()
			w.phase = PhasePlaying
		}
		return
	case PhaseDying:
		w.stepDying()
		return
	case PhaseCinematic:
		w.stepCinematic(elapsed)
		return
	}

	if in.Pause {
		w.phase = PhasePaused
		return
	}
	w.stepPlaying(in, elapsed)
}

// stepPlaying is one frame of the scheduler proper.
func (w *World) stepPlaying(in Input, elapsed time.Duration) {
	w.ticks++
	w.updates++
	w.runTime += elapsed
	ms := float64(elapsed) / float64(time.Millisecond)

	// 1. Map and zombies.
	w.m.Update()
	if w.freeze > 0 {
		w.freeze--
	} else {
		for _, z := range w.zombies {
			tx, ty := w.chaseTarget(z)
			z.SetAcceleration(tx, ty)
			z.Advance(elapsed, w.m)
		}
	}

	// 2. Player.
	w.player.control(in, w.cfg.Controls.HardStop)
	w.player.update(elapsed, w.m)
	w.m.SetPage(w.player.Center())
	if every := w.cfg.Timers.FollowEvery; every > 0 && w.updates%every == 0 {
		w.player.refreshFollow()
	}

	// 3. Timed entities.
	w.tickTimed(ms)

	// 4. Interactions.
	hurt := w.resolvePlayerZombies()
	w.resolveParts()
	w.resolveVehicle()
	w.resolvePowerups()
	if w.resolveTraps() {
		hurt = true
	}

	// 5. Damage and the level timer.
	if hurt {
		w.damagePlayer()
	}
	if w.phase == PhasePlaying {
		w.levelTicks--
		if w.levelTicks <= 0 {
			w.levelTicks = 0
			w.player.dead = true
			w.emit(Event{Kind: EventTimeUp})
			w.startDying()
		}
	}
	if w.phase != PhasePlaying {
		return
	}

	// 6. Level completion.
	if w.vehicle.IsBuilt() {
		w.completeLevel()
		return
	}

	// 7. Population maintenance.
	w.replenishClouds()
}

// chaseTarget is the point zombie z reacts to.
func (w *World) chaseTarget(z *enemies.Zombie) (x, y float64) {
	if z.Kind() == enemies.Slow && w.cfg.Zombies.SlowFollowsTrail {
		return w.player.Follow()
	}
	return w.player.Center()
}

// tickTimed advances killed zombies, triggered powerups, tripped traps,
// idle powerup ages and the vehicle animation, dropping what expired.
func (w *World) tickTimed(ms float64) {
	w.killed = filterTick(w.killed)
	w.activated = filterTick(w.activated)
	w.tripped = filterTick(w.tripped)

	for _, p := range w.powerups {
		p.Update(ms)
	}
	for _, p := range w.activated {
		p.Update(ms)
	}
	w.vehicle.Update(ms)
}

// expiring is anything with a frame countdown.
type expiring interface {
	Tick()
	IsExpired() bool
}

// filterTick ticks every item and keeps the ones still running, in place.
func filterTick[T expiring](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		it.Tick()
		if !it.IsExpired() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// damagePlayer applies one zombie or trap hit unless the player is immune.
func (w *World) damagePlayer() {
	if w.player.Immune() || w.player.Teleporting() {
		return
	}
	w.sound.PlaySoundEffect(SoundHurt)
	w.emit(Event{Kind: EventHurt})
	if w.player.hit(w.cfg.Timers.Immunity) {
		w.startDying()
	}
}

// startDying begins the death animation.
func (w *World) startDying() {
	w.phase = PhaseDying
	w.dying.Start(w.cfg.Timers.Dying)
}

func (w *World) stepDying() {
	w.dying.Tick()
	if !w.dying.IsExpired() {
		return
	}
	w.phase = PhaseGameOver
	if w.score > w.highScore {
		w.highScore = w.score
		w.newBest = true
		w.emit(Event{Kind: EventNewHighScore, Value: w.score})
	}
	w.emit(Event{Kind: EventGameOver, Value: w.score})
}

// Quit reports whether a quit intent has been seen.
func (w *World) Quit() bool { return w.quit }

// Phase returns the current phase.
func (w *World) Phase() Phase { return w.phase }

// Level returns the 1-based level number.
func (w *World) Level() int { return w.level }

// Score returns the run's score.
func (w *World) Score() int { return w.score }

// Kills returns the zombies killed during the run.
func (w *World) Kills() int { return w.kills }

// HighScore returns the best score seen, including this run.
func (w *World) HighScore() int { return w.highScore }

// NewHighScore reports whether the finished run set a new best.
func (w *World) NewHighScore() bool { return w.newBest }

// RunTime returns the simulated time spent playing this run.
func (w *World) RunTime() time.Duration { return w.runTime }

// Ticks returns the frames played this run.
func (w *World) Ticks() int { return w.ticks }

// Map returns the level map.
func (w *World) Map() *tilemap.Map { return w.m }

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Zombies returns the live zombies. The slice must not be modified.
func (w *World) Zombies() []*enemies.Zombie { return w.zombies }

// Killed returns the zombies playing their death animation.
func (w *World) Killed() []*enemies.Zombie { return w.killed }

// Powerups returns the uncollected powerups.
func (w *World) Powerups() []*pickups.Powerup { return w.powerups }

// Traps returns the armed traps.
func (w *World) Traps() []*pickups.Trap { return w.traps }

// Parts returns the parts lying in the world.
func (w *World) Parts() []*vehicle.Part { return w.parts }

// Vehicle returns the level's vehicle.
func (w *World) Vehicle() *vehicle.Vehicle { return w.vehicle }

// Frozen reports the remaining freeze frames.
func (w *World) Frozen() int { return w.freeze }

// SecondsLeft returns the level timer rounded up to whole seconds.
func (w *World) SecondsLeft() int {
	fps := max(w.cfg.World.FrameRate, 1)
	return (w.levelTicks + fps - 1) / fps
}

// Events returns what happened during the last Step.
func (w *World) Events() []Event { return w.events }

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}
