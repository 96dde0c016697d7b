package justrun

import (
	"github.com/nprice1/just-run/internal/games/justrun/enemies"
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/pickups"
	"github.com/nprice1/just-run/internal/games/justrun/vehicle"
)

// safeRadius keeps fresh zombies away from the player's spawn point.
const safeRadius = 4 * geom.TileSize

// place picks a wall-free top-left corner for a w×h footprint. Random
// interior tiles are tried first; after the configured number of retries it
// falls back to the first open area of the map. avoid, when set, rejects
// otherwise valid candidates.
func (w *World) place(width, height float64, avoid func(geom.Rect) bool) (x, y float64) {
	rows, cols := w.m.Rows(), w.m.Cols()
	for i := 0; i < w.cfg.Spawns.Retries; i++ {
		x = geom.FromTile(w.rand.Range(1, cols-2))
		y = geom.FromTile(w.rand.Range(1, rows-2))
		r := geom.R(x, y, width, height)
		if w.m.Blocked(r) {
			continue
		}
		if avoid != nil && avoid(r) {
			continue
		}
		return x, y
	}
	if x, y, ok := w.m.FindOpenArea(width, height); ok {
		return x, y
	}
	return geom.FromTile(1), geom.FromTile(1)
}

// spawnLevel populates a fresh map. health is carried from the last level.
func (w *World) spawnLevel(health int) {
	kind := vehicle.ForLevel(w.level)
	vw, vh := vehicle.Footprint(kind)
	vx, vy := w.place(vw, vh, nil)
	w.vehicle = vehicle.New(kind, vx, vy)
	onVehicle := func(r geom.Rect) bool { return r.CollidesWith(w.vehicle.Bounds()) }

	px, py := w.place(geom.TileSize, geom.TileSize, onVehicle)
	w.player = newPlayer(px, py, w.cfg.Player)
	w.player.health = health

	crowded := func(r geom.Rect) bool {
		if onVehicle(r) {
			return true
		}
		cx, cy := w.player.Center()
		return geom.Distance(r.X+r.W/2, r.Y+r.H/2, cx, cy) < safeRadius
	}

	for _, k := range vehicle.PartKinds {
		pw, ph := vehicle.PartFootprint(kind, k)
		x, y := w.place(pw, ph, crowded)
		w.parts = append(w.parts, vehicle.NewPart(kind, k, x, y))
	}

	n := w.difficulty.Zombies(w.cfg.Spawns.InitialZombies, w.cfg.Spawns.ZombiesPerLevel, w.level, w.ticks)
	n = min(n, w.maxEnemies)
	for i := 0; i < n; i++ {
		k := enemies.Kinds[w.rand.Intn(len(enemies.Kinds))]
		w.spawnZombie(k, crowded)
	}

	for i := 0; i < w.cfg.Spawns.PowerupRolls; i++ {
		if !w.rand.Chance(w.cfg.Spawns.PowerupChance, 100) {
			continue
		}
		k := pickups.Kinds[w.rand.Intn(len(pickups.Kinds))]
		x, y := w.place(geom.TileSize, geom.TileSize, crowded)
		p := pickups.NewPowerup(k, x, y)
		p.SetCadence(w.cfg.Timers.DebuffCadence)
		w.powerups = append(w.powerups, p)
	}

	for i := 0; i < w.cfg.Spawns.TrapRolls; i++ {
		if !w.rand.Chance(w.cfg.Spawns.TrapChance, 100) {
			continue
		}
		x, y := w.place(geom.TileSize, geom.TileSize, crowded)
		w.traps = append(w.traps, pickups.NewTrap(pickups.BearTrap, x, y))
	}
}

// spawnZombie places one zombie of kind k.
func (w *World) spawnZombie(k enemies.Kind, avoid func(geom.Rect) bool) *enemies.Zombie {
	x, y := w.place(geom.TileSize, geom.TileSize, avoid)
	return w.addZombie(k, x, y)
}

func (w *World) addZombie(k enemies.Kind, x, y float64) *enemies.Zombie {
	z := enemies.New(k, x, y, w.profiles[k], w.field())
	w.zombies = append(w.zombies, z)
	return z
}

func (w *World) field() enemies.Field {
	return enemies.Field{Rows: w.m.Rows(), Cols: w.m.Cols(), Rand: w.rand}
}

// replenishClouds adds a Cloud zombie at the first Cloud's target every
// CloudEvery updates, as long as the level is below its enemy cap.
func (w *World) replenishClouds() {
	every := w.cfg.Spawns.CloudEvery
	if every <= 0 || w.updates == 0 || w.updates%every != 0 {
		return
	}
	if len(w.zombies) >= w.maxEnemies {
		return
	}
	for _, z := range w.zombies {
		if z.Kind() != enemies.Cloud {
			continue
		}
		tx, ty := z.Target()
		x, y := tx-geom.HalfTile, ty-geom.HalfTile
		if w.m.Blocked(geom.R(x, y, geom.TileSize, geom.TileSize)) {
			return
		}
		w.addZombie(enemies.Cloud, x, y)
		return
	}
}
