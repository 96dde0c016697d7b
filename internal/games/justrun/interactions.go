package justrun

import (
	"slices"

	"github.com/nprice1/just-run/internal/games/justrun/enemies"
	"github.com/nprice1/just-run/internal/games/justrun/pickups"
)

// resolvePlayerZombies handles the first zombie touching the player. A bat
// or an open teleport window kills it and uses up the bat; otherwise the
// player is hurt.
func (w *World) resolvePlayerZombies() (hurt bool) {
	pr := w.player.DamageRect()
	for i, z := range w.zombies {
		if !z.DamageRect().CollidesWithPlayer(pr) {
			continue
		}
		if !w.player.HasBat() && !w.player.Teleporting() {
			return true
		}
		w.player.takeBat()
		w.killZombieAt(i)
		w.sound.PlaySoundEffect(SoundZombieKilled)
		return false
	}
	return false
}

// killZombieAt moves the i-th live zombie to the killed list.
func (w *World) killZombieAt(i int) *enemies.Zombie {
	z := w.zombies[i]
	w.zombies = slices.Delete(w.zombies, i, i+1)
	z.Kill(w.cfg.Zombies.DeathTicks)
	w.killed = append(w.killed, z)
	w.kills++
	w.levelKills++
	w.score += w.cfg.Rules.KillScore
	w.emit(Event{Kind: EventZombieKilled, Value: int(z.Kind())})
	return z
}

// resolveParts picks up the first part the empty-handed player touches.
func (w *World) resolveParts() {
	if w.player.Held() != nil {
		return
	}
	pr := w.player.DamageRect()
	for i, p := range w.parts {
		if !p.DamageRect().CollidesWithPlayer(pr) {
			continue
		}
		w.parts = slices.Delete(w.parts, i, i+1)
		w.player.held = p
		x, y := w.player.Position()
		p.MoveTo(x, y-holdOffset)
		w.sound.PlaySoundEffect(SoundPartPickup)
		w.emit(Event{Kind: EventPartCollected, Value: int(p.Kind())})
		return
	}
}

// resolveVehicle installs the held part once it touches the vehicle.
func (w *World) resolveVehicle() {
	held := w.player.Held()
	if held == nil || !held.DamageRect().CollidesWith(w.vehicle.DamageRect()) {
		return
	}
	w.vehicle.AddPart(held)
	w.player.held = nil
	w.sound.PlaySoundEffect(SoundPartInstall)
	w.emit(Event{Kind: EventPartInstalled, Value: int(held.Kind())})
}

// resolvePowerups collects the first powerup the player touches.
func (w *World) resolvePowerups() {
	pr := w.player.DamageRect()
	for i, p := range w.powerups {
		if !p.DamageRect().CollidesWithPlayer(pr) {
			continue
		}
		w.powerups = slices.Delete(w.powerups, i, i+1)
		w.applyPowerup(p)
		return
	}
}

// resolveTraps springs at most one trap per frame: the first trap under
// the player, or failing that the first trap under any zombie. It reports
// whether the player was caught.
func (w *World) resolveTraps() (hurt bool) {
	pr := w.player.DamageRect()
	for i, t := range w.traps {
		if t.DamageRect().CollidesWithPlayer(pr) {
			w.springTrap(i)
			return true
		}
	}

	for i, t := range w.traps {
		tr := t.DamageRect()
		for zi, z := range w.zombies {
			if !z.DamageRect().CollidesWith(tr) {
				continue
			}
			w.springTrap(i)
			w.killZombieAt(zi)
			return false
		}
	}
	return false
}

// springTrap trips the i-th armed trap and moves it to the tripped list.
func (w *World) springTrap(i int) *pickups.Trap {
	t := w.traps[i]
	w.traps = slices.Delete(w.traps, i, i+1)
	t.Trip(w.cfg.Timers.TrapClosing, w.cfg.Timers.TrapHold)
	w.tripped = append(w.tripped, t)
	w.sound.PlaySoundEffect(SoundTrap)
	w.emit(Event{Kind: EventTrap})
	return t
}
