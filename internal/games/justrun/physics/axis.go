package physics

import (
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
)

// integrate applies ternary acceleration and the velocity cap.
// The cap is applied every step, not only while accelerating.
func integrate(v float64, intent int, accel, maxV, dt float64, sticky bool) float64 {
	switch {
	case intent < 0:
		v -= accel * dt
		if sticky {
			v = -maxV
		}
	case intent > 0:
		v += accel * dt
		if sticky {
			v = maxV
		}
	}
	if v > maxV {
		v = maxV
	}
	if v < -maxV {
		v = -maxV
	}
	return v
}

// UpdateX advances the character horizontally.
//
// Moving right probes the right half of XBox stretched by delta; a Wall
// there snaps the box's right edge onto the wall column and stops the
// character. The left half is then probed with no stretch and, if it sits
// in a Wall, the box's left edge is pushed out to that column's right side.
// Moving left (delta <= 0) mirrors this.
func (c *Character) UpdateX(m *tilemap.Map, accel, maxV float64, sticky bool) {
	c.VelocityX = integrate(c.VelocityX, c.AccelX, accel, maxV, c.Elapsed, sticky)
	delta := c.VelocityX * c.Elapsed

	if delta > 0 {
		if tile, hit := m.FirstWall(c.rightProbe(delta)); hit {
			c.X = geom.FromTile(tile.Col) - XBox.Right()
			c.VelocityX = 0
		} else {
			c.X += delta
		}
		if tile, hit := m.FirstWall(c.leftProbe(0)); hit {
			c.X = geom.FromTile(tile.Col+1) - XBox.Left()
		}
		return
	}

	if tile, hit := m.FirstWall(c.leftProbe(delta)); hit {
		c.X = geom.FromTile(tile.Col+1) - XBox.Left()
		c.VelocityX = 0
	} else {
		c.X += delta
	}
	if tile, hit := m.FirstWall(c.rightProbe(0)); hit {
		c.X = geom.FromTile(tile.Col) - XBox.Right()
	}
}

// UpdateY advances the character vertically; see UpdateX.
func (c *Character) UpdateY(m *tilemap.Map, accel, maxV float64, sticky bool) {
	c.VelocityY = integrate(c.VelocityY, c.AccelY, accel, maxV, c.Elapsed, sticky)
	delta := c.VelocityY * c.Elapsed

	if delta > 0 {
		if tile, hit := m.FirstWall(c.bottomProbe(delta)); hit {
			c.Y = geom.FromTile(tile.Row) - YBox.Bottom()
			c.VelocityY = 0
		} else {
			c.Y += delta
		}
		if tile, hit := m.FirstWall(c.topProbe(0)); hit {
			c.Y = geom.FromTile(tile.Row+1) - YBox.Top()
		}
		return
	}

	if tile, hit := m.FirstWall(c.topProbe(delta)); hit {
		c.Y = geom.FromTile(tile.Row+1) - YBox.Top()
		c.VelocityY = 0
	} else {
		c.Y += delta
	}
	if tile, hit := m.FirstWall(c.bottomProbe(0)); hit {
		c.Y = geom.FromTile(tile.Row) - YBox.Bottom()
	}
}

// leftProbe is the left half of XBox, stretched left by -delta (delta <= 0).
func (c *Character) leftProbe(delta float64) geom.Rect {
	return geom.R(c.X+XBox.Left()+delta, c.Y+XBox.Top(), XBox.W/2-delta, XBox.H)
}

// rightProbe is the right half of XBox, stretched right by delta (delta >= 0).
func (c *Character) rightProbe(delta float64) geom.Rect {
	return geom.R(c.X+XBox.Left()+XBox.W/2, c.Y+XBox.Top(), XBox.W/2+delta, XBox.H)
}

// topProbe is the upper half of YBox, stretched up by -delta (delta <= 0).
func (c *Character) topProbe(delta float64) geom.Rect {
	return geom.R(c.X+YBox.Left(), c.Y+YBox.Top()+delta, YBox.W, YBox.H/2-delta)
}

// bottomProbe is the lower half of YBox, stretched down by delta (delta >= 0).
func (c *Character) bottomProbe(delta float64) geom.Rect {
	return geom.R(c.X+YBox.Left(), c.Y+YBox.Top()+YBox.H/2, YBox.W, YBox.H/2+delta)
}
