package enemies

import (
	"math"
	"testing"
	"time"

	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/rng"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
)

func field(seed int64) Field {
	return Field{Rows: 60, Cols: 60, Rand: rng.New(seed)}
}

func newZombie(k Kind, x, y float64) *Zombie {
	return New(k, x, y, DefaultProfile(k), field(7))
}

func TestTargetUnchangedOutsideRadius(t *testing.T) {
	m := tilemap.New(60, 60, 20)
	for _, k := range []Kind{Crazy, Random, Cloud} {
		t.Run(k.String(), func(t *testing.T) {
			z := newZombie(k, 600, 600)
			z.SetTarget(900, 900)

			// Player far away so the chasers keep wandering.
			for range 2 {
				z.SetAcceleration(100, 1800)
				z.Advance(16*time.Millisecond, m)
			}

			tx, ty := z.Target()
			if tx != 900 || ty != 900 {
				t.Errorf("target moved to (%v, %v) while %v away", tx, ty, z.Distance(900, 900))
			}
		})
	}
}

func TestTargetReacquiredInsideRadius(t *testing.T) {
	for _, k := range []Kind{Crazy, Random, Cloud} {
		t.Run(k.String(), func(t *testing.T) {
			z := newZombie(k, 600, 600)
			cx, cy := z.Center()
			z.SetTarget(cx+5, cy+5)

			z.SetAcceleration(100, 1800)

			tx, ty := z.Target()
			if tx == cx+5 && ty == cy+5 {
				t.Fatal("target was not replaced")
			}
		})
	}
}

func TestWanderStaysNearby(t *testing.T) {
	z := newZombie(Crazy, 600, 600)
	for range 50 {
		cx, cy := z.Center()
		z.SetTarget(cx, cy)
		z.SetAcceleration(-5000, -5000)

		tx, ty := z.Target()
		dx, dy := math.Abs(tx-cx), math.Abs(ty-cy)
		if (dx != geom.TileSize && dx != 2*geom.TileSize) || (dy != geom.TileSize && dy != 2*geom.TileSize) {
			t.Fatalf("wander offset (%v, %v) is not one or two tiles", dx, dy)
		}
	}
}

func TestWanderLeansInward(t *testing.T) {
	tests := []struct {
		name    string
		center  float64
		forward bool
		want    float64
	}{
		{"forward in band", geom.FromTile(10), true, geom.FromTile(10) + 32},
		{"forward near far edge", geom.FromTile(57), true, geom.FromTile(57) - 32},
		{"back in band", geom.FromTile(10), false, geom.FromTile(10) - 32},
		{"back near near edge", geom.FromTile(2), false, geom.FromTile(2) + 32},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wanderAxis(tc.center, 32, 60, tc.forward); got != tc.want {
				t.Errorf("wanderAxis() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestRandomTargetInterior(t *testing.T) {
	z := newZombie(Random, 600, 600)
	for range 100 {
		cx, cy := z.Center()
		z.SetTarget(cx, cy)
		z.SetAcceleration(0, 0)
		tx, ty := z.Target()
		if tx < geom.FromTile(1) || tx >= geom.FromTile(58) || ty < geom.FromTile(1) || ty >= geom.FromTile(58) {
			t.Fatalf("random target (%v, %v) outside interior", tx, ty)
		}
	}
}

func TestChaseLatch(t *testing.T) {
	tests := []struct {
		kind  Kind
		dist  float64
		chase bool
	}{
		{Crazy, 99, true},
		{Crazy, 101, false},
		{Cloud, 49, true},
		{Cloud, 51, false},
		{Slow, 1, false},
		{Random, 1, false},
	}
	for _, tc := range tests {
		z := newZombie(tc.kind, 600, 600)
		cx, cy := z.Center()
		z.SetAcceleration(cx+tc.dist, cy)
		if z.Chasing() != tc.chase {
			t.Errorf("%v at %v: Chasing() = %v", tc.kind, tc.dist, z.Chasing())
		}
		if tc.chase {
			if tx, ty := z.Target(); tx != cx+tc.dist || ty != cy {
				t.Errorf("%v: chase target = (%v, %v)", tc.kind, tx, ty)
			}
		}
	}
}

func TestSlowFollowsPlayerSign(t *testing.T) {
	z := newZombie(Slow, 600, 600)
	cx, cy := z.Center()

	z.SetAcceleration(cx-10, cy+10)
	if z.char.AccelX != -1 || z.char.AccelY != 1 {
		t.Errorf("accel = (%d, %d), expected (-1, 1)", z.char.AccelX, z.char.AccelY)
	}
	z.SetAcceleration(cx, cy)
	if z.char.AccelX != 0 || z.char.AccelY != 0 {
		t.Errorf("accel = (%d, %d), expected (0, 0)", z.char.AccelX, z.char.AccelY)
	}
}

func TestVelocityNeverExceedsProfile(t *testing.T) {
	m := tilemap.New(60, 60, 20)
	for row := range 60 {
		m.SetKind(row, 0, tilemap.Wall)
		m.SetKind(row, 59, tilemap.Wall)
	}
	for col := range 60 {
		m.SetKind(0, col, tilemap.Wall)
		m.SetKind(59, col, tilemap.Wall)
	}

	for _, k := range Kinds {
		z := newZombie(k, 900, 900)
		for frame := range 2000 {
			z.SetAcceleration(float64(frame%600)*3, 900)
			z.Advance(time.Duration(16+frame%50)*time.Millisecond, m)
			c := z.Character()
			if math.Abs(c.VelocityX) > z.Profile().MaxVelocity || math.Abs(c.VelocityY) > z.Profile().MaxVelocity {
				t.Fatalf("%v frame %d: velocity (%v, %v)", k, frame, c.VelocityX, c.VelocityY)
			}
		}
	}
}

func TestKillCountdown(t *testing.T) {
	const n = 4
	z := newZombie(Crazy, 100, 100)
	if z.Killed() {
		t.Fatal("fresh zombie reports killed")
	}
	z.Kill(n)
	if !z.Killed() || z.Sprite().Kind != sprite.KindKilled {
		t.Fatal("Kill() did not mark the zombie")
	}

	falses := 0
	for i := 1; i <= n; i++ {
		z.Tick()
		if z.IsExpired() {
			if i != n {
				t.Fatalf("expired on tick %d", i)
			}
		} else {
			falses++
		}
	}
	if falses != n-1 || !z.IsExpired() {
		t.Errorf("false %d times then expired=%v", falses, z.IsExpired())
	}
}

func TestKindStrings(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() || k.String() == "unknown" {
			t.Errorf("kind %d invalid", k)
		}
	}
	if Kind(0).Valid() || Kind(5).Valid() {
		t.Error("out-of-range kinds must be invalid")
	}
}
