// Package sprite holds presentation state for world entities: what to draw
// and which animation frame is current. It knows nothing about glyphs,
// colors or terminals; renderers map a Sprite to whatever they draw with.
package sprite

import "github.com/nprice1/just-run/internal/games/justrun/physics"

// Kind identifies the family of a drawable entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindZombie
	KindKilled
	KindPowerup
	KindTrap
	KindPart
	KindVehicle
)

var kindNames = [...]string{
	KindPlayer:  "player",
	KindZombie:  "zombie",
	KindKilled:  "killed",
	KindPowerup: "powerup",
	KindTrap:    "trap",
	KindPart:    "part",
	KindVehicle: "vehicle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Flag is a presentation modifier.
type Flag uint8

const (
	FlagBat Flag = 1 << iota
	FlagImmune
	FlagTeleport
	FlagDebuff
	FlagSprung
	FlagBuilt
	FlagHolding
)

// Sprite is everything a renderer needs to draw one entity.
// Variant is family specific: zombie kind, powerup kind, part kind or
// vehicle configuration.
type Sprite struct {
	Kind     Kind
	Variant  int
	Frame    int
	Movement physics.Movement
	Flags    Flag
	// W and H are the footprint in game units.
	W, H float64
}

// Has reports whether f is set.
func (s Sprite) Has(f Flag) bool {
	return s.Flags&f != 0
}
