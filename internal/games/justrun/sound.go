package justrun

// Sound effect ids passed to SoundPlayer.
const (
	SoundKillZombie   = 0 // kill-zombie powerup
	SoundWipeOut      = 1
	SoundNuke         = 2
	SoundPowerup      = 3 // bat, freeze, teleport
	SoundDebuff       = 4
	SoundTrap         = 5
	SoundZombieKilled = 6 // bat or teleport contact
	SoundPartPickup   = 7
	SoundPartInstall  = 8 // also the vehicle completing
	SoundHurt         = 9
)

// SoundCount is the number of distinct effect ids.
const SoundCount = 10

// SoundPlayer plays fire-and-forget sound effects. Implementations must not
// block the simulation.
type SoundPlayer interface {
	PlaySoundEffect(id int)
}

// NopSound discards every effect.
type NopSound struct{}

// PlaySoundEffect does nothing.
func (NopSound) PlaySoundEffect(int) {}
