package justrun

import (
	"time"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/games/justrun/geom"
	"github.com/nprice1/just-run/internal/games/justrun/physics"
	"github.com/nprice1/just-run/internal/games/justrun/sprite"
	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
	"github.com/nprice1/just-run/internal/games/justrun/vehicle"
)

// holdOffset lifts a carried part above the player's head.
const holdOffset = geom.HalfTile

// Input is the set of intents for one frame.
type Input struct {
	Left, Right, Up, Down bool
	Pause                 bool
	Quit                  bool
}

// Moving reports whether any direction is held.
func (in Input) Moving() bool {
	return in.Left || in.Right || in.Up || in.Down
}

// Player is the survivor.
type Player struct {
	char     physics.Character
	profile  physics.Profile
	health   int
	immunity physics.Countdown
	teleport physics.Countdown
	bat      bool
	batTimer physics.Countdown
	held     *vehicle.Part
	anim     sprite.Animator
	followX  float64
	followY  float64
	dead     bool
}

func newPlayer(x, y float64, cfg config.PlayerConfig) *Player {
	p := &Player{
		char:    physics.NewCharacter(x, y),
		profile: physics.Profile{Accel: cfg.Accel, MaxVelocity: cfg.MaxVelocity, Sticky: cfg.Sticky},
		health:  cfg.Health,
		anim:    sprite.NewAnimator(3, 20),
	}
	p.followX, p.followY = p.Center()
	return p
}

// Position returns the map-space top-left corner.
func (p *Player) Position() (x, y float64) { return p.char.X, p.char.Y }

// Center returns the map-space center.
func (p *Player) Center() (x, y float64) { return p.char.CenterX(), p.char.CenterY() }

// Character exposes the physics state for read access.
func (p *Player) Character() physics.Character { return p.char }

// DamageRect returns the contact rectangle.
func (p *Player) DamageRect() geom.Rect { return p.char.DamageRect() }

// Health returns the remaining hit points.
func (p *Player) Health() int { return p.health }

// HasBat reports whether the next zombie contact kills the zombie.
func (p *Player) HasBat() bool { return p.bat }

// Immune reports whether damage is currently suppressed.
func (p *Player) Immune() bool { return p.immunity.Active() }

// Teleporting reports whether the teleport window is open.
func (p *Player) Teleporting() bool { return p.teleport.Active() }

// Held returns the carried part, or nil.
func (p *Player) Held() *vehicle.Part { return p.held }

// Follow returns the lagging follow point.
func (p *Player) Follow() (x, y float64) { return p.followX, p.followY }

// Dead reports whether the player has run out of health or time.
func (p *Player) Dead() bool { return p.dead }

// moveTo relocates the player and stops it.
func (p *Player) moveTo(x, y float64) {
	p.char.X, p.char.Y = x, y
	p.char.VelocityX, p.char.VelocityY = 0, 0
}

// teleportTo moves the player and opens the teleport window.
func (p *Player) teleportTo(x, y float64, ticks int) {
	p.moveTo(x, y)
	p.teleport.Start(ticks)
	if p.held != nil {
		p.held.MoveTo(x, y-holdOffset)
	}
}

// giveBat arms the bat; ticks > 0 limits how long it lasts.
func (p *Player) giveBat(ticks int) {
	p.bat = true
	if ticks > 0 {
		p.batTimer.Start(ticks)
	} else {
		p.batTimer.Stop()
	}
}

func (p *Player) takeBat() {
	p.bat = false
	p.batTimer.Stop()
}

// hit removes one hit point and opens the immunity window. It reports
// whether the player died.
func (p *Player) hit(immunity int) bool {
	p.health--
	p.immunity.Start(immunity)
	if p.health <= 0 {
		p.health = 0
		p.dead = true
	}
	return p.dead
}

// control turns intents into ternary acceleration.
func (p *Player) control(in Input, hardStop bool) {
	p.char.AccelX = intent(in.Left, in.Right)
	p.char.AccelY = intent(in.Up, in.Down)
	if hardStop {
		if p.char.AccelX == 0 {
			p.char.VelocityX = 0
		}
		if p.char.AccelY == 0 {
			p.char.VelocityY = 0
		}
	}
}

func intent(neg, pos bool) int {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

// update runs the player's timers, animation and physics for one frame.
func (p *Player) update(elapsed time.Duration, m *tilemap.Map) {
	p.immunity.Tick()
	p.teleport.Tick()
	if p.batTimer.Active() {
		p.batTimer.Tick()
		if p.batTimer.IsExpired() {
			p.takeBat()
		}
	}

	p.char.SetElapsed(elapsed)
	p.char.UpdateMotion()
	p.anim.Update(p.char.Movement, p.char.Elapsed)
	p.char.Advance(m, p.profile)

	if p.held != nil {
		p.held.MoveTo(p.char.X, p.char.Y-holdOffset)
	}
}

// refreshFollow moves the follow point to the player's current center.
func (p *Player) refreshFollow() {
	p.followX, p.followY = p.Center()
}

// Sprite describes the player for renderers.
func (p *Player) Sprite() sprite.Sprite {
	s := sprite.Sprite{
		Kind:     sprite.KindPlayer,
		Frame:    p.anim.Frame(p.char.Movement),
		Movement: p.char.Movement,
		W:        geom.TileSize,
		H:        geom.TileSize,
	}
	if p.bat {
		s.Flags |= sprite.FlagBat
	}
	if p.Immune() {
		s.Flags |= sprite.FlagImmune
	}
	if p.Teleporting() {
		s.Flags |= sprite.FlagTeleport
	}
	if p.held != nil {
		s.Flags |= sprite.FlagHolding
	}
	return s
}
