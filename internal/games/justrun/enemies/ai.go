package enemies

import (
	"github.com/nprice1/just-run/internal/games/justrun/geom"
)

// SetAcceleration picks the zombie's target for this frame and points its
// ternary acceleration at it. (px, py) is the point the zombie reacts to,
// normally the player's center.
func (z *Zombie) SetAcceleration(px, py float64) {
	switch z.kind {
	case Slow:
		z.char.AccelX = axisToward(z.char.CenterX(), px)
		z.char.AccelY = axisToward(z.char.CenterY(), py)
		return
	case Random:
		z.randomTarget()
	case Crazy, Cloud:
		z.chasing = z.profile.ChaseRadius > 0 && z.char.Distance(px, py) < z.profile.ChaseRadius
		if z.chasing {
			z.SetTarget(px, py)
		} else {
			z.wanderTarget()
		}
	}
	z.char.AccelX = axisToward(z.char.CenterX(), z.char.TargetX)
	z.char.AccelY = axisToward(z.char.CenterY(), z.char.TargetY)
}

// axisToward is the sign of target - from.
func axisToward(from, target float64) int {
	switch {
	case from < target:
		return 1
	case from > target:
		return -1
	default:
		return 0
	}
}

// reached reports whether the current target may be replaced.
func (z *Zombie) reached() bool {
	return z.char.Distance(z.char.TargetX, z.char.TargetY) < ReacquireRadius
}

// wanderTarget re-rolls a nearby target one or two tiles away on each
// axis, leaning toward the interior of the map.
func (z *Zombie) wanderTarget() {
	if !z.reached() || z.field.Rand == nil {
		return
	}
	r := z.field.Rand
	stepX := geom.FromTile(r.Range(1, 3))
	stepY := geom.FromTile(r.Range(1, 3))
	outward := r.Range(1, 3) == 1

	z.char.TargetX = wanderAxis(z.char.CenterX(), stepX, z.field.Cols, outward)
	z.char.TargetY = wanderAxis(z.char.CenterY(), stepY, z.field.Rows, outward)
}

// wanderAxis moves center by step in the preferred direction while the
// center sits inside the interior band for that direction, and the other
// way otherwise. The bands scale with the map: for a 20-tile axis they are
// (1, 16) tiles when heading forward and (3, 18) tiles when heading back.
func wanderAxis(center, step float64, tiles int, forward bool) float64 {
	if forward {
		if center > geom.FromTile(1) && center < geom.FromTile(tiles-4) {
			return center + step
		}
		return center - step
	}
	if center > geom.FromTile(3) && center < geom.FromTile(tiles-2) {
		return center - step
	}
	return center + step
}

// randomTarget picks any interior tile once the current one is reached.
func (z *Zombie) randomTarget() {
	if !z.reached() || z.field.Rand == nil {
		return
	}
	r := z.field.Rand
	z.char.TargetX = geom.FromTile(r.Range(1, max(z.field.Cols-2, 2)))
	z.char.TargetY = geom.FromTile(r.Range(1, max(z.field.Rows-2, 2)))
}
