package justrun

import (
	"github.com/nprice1/just-run/internal/games/justrun/enemies"
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/pickups"
)

// applyPowerup runs the effect of a collected powerup. The powerup stays in
// the world as a short animation at the player's position.
func (w *World) applyPowerup(p *pickups.Powerup) {
	x, y := w.player.Position()
	p.Trigger(w.cfg.Timers.Effect, x, y)
	if !p.IsExpired() {
		w.activated = append(w.activated, p)
	}
	w.emit(Event{Kind: EventPowerup, Value: int(p.Kind())})

	switch p.Kind() {
	case pickups.CricketBat:
		w.player.giveBat(w.cfg.Timers.Bat)
		w.sound.PlaySoundEffect(SoundPowerup)

	case pickups.KillZombie:
		if len(w.zombies) > 0 {
			w.killZombieAt(w.rand.Intn(len(w.zombies)))
		}
		w.sound.PlaySoundEffect(SoundKillZombie)

	case pickups.WipeOut:
		w.wipeOut()
		w.sound.PlaySoundEffect(SoundWipeOut)

	case pickups.Freeze:
		w.freeze = w.cfg.Timers.Freeze
		w.sound.PlaySoundEffect(SoundPowerup)

	case pickups.Teleport:
		dr := w.vehicle.DamageRect()
		x, y := dr.X+dr.W/2-geom.HalfTile, dr.Y-geom.HalfTile
		// A vehicle squeezed into a tiny level can hang off the grid.
		if w.m.Contains(geom.R(x, y, geom.TileSize, physics.YBox.Bottom())) {
			w.player.teleportTo(x, y, w.cfg.Timers.Teleport)
			w.m.SetPage(w.player.Center())
		}
		w.sound.PlaySoundEffect(SoundPowerup)

	case pickups.Nuke:
		if p.IsDebuff() {
			w.enrage()
			w.sound.PlaySoundEffect(SoundDebuff)
			return
		}
		w.nuke()
		w.sound.PlaySoundEffect(SoundNuke)
	}
}

// wipeOut kills every zombie near the player and extends the level timer
// by WipeOutBonus seconds per kill.
func (w *World) wipeOut() int {
	px, py := w.player.Center()
	radius := w.cfg.Rules.WipeOutRadius
	n := w.killWhere(func(z *enemies.Zombie) bool {
		return z.Distance(px, py) <= radius
	})
	w.levelTicks += n * w.cfg.Rules.WipeOutBonus * w.cfg.World.FrameRate
	return n
}

// nuke kills every zombie on the active page.
func (w *World) nuke() int {
	return w.killWhere(func(z *enemies.Zombie) bool {
		return w.m.OnScreen(z.Center())
	})
}

// enrage is the nuke's debuff: each zombie turns Crazy with probability
// NukeCrazyChance in 10.
func (w *World) enrage() {
	for _, z := range w.zombies {
		if w.rand.Chance(w.cfg.Rules.NukeCrazyChance, 10) {
			z.Become(enemies.Crazy, w.profiles[enemies.Crazy])
		}
	}
}

// killWhere kills every live zombie matching pred and returns the count.
func (w *World) killWhere(pred func(*enemies.Zombie) bool) int {
	n := 0
	for i := len(w.zombies) - 1; i >= 0; i-- {
		if pred(w.zombies[i]) {
			w.killZombieAt(i)
			n++
		}
	}
	return n
}
