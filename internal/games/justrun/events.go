package justrun

// EventKind tags something notable that happened during a frame.
type EventKind uint8

const (
	EventZombieKilled EventKind = iota + 1
	EventPartCollected
	EventPartInstalled
	EventPowerup
	EventTrap
	EventHurt
	EventTimeUp
	EventLevelComplete
	EventGameOver
	EventNewHighScore
)

var eventNames = map[EventKind]string{
	EventZombieKilled:  "zombie_killed",
	EventPartCollected: "part_collected",
	EventPartInstalled: "part_installed",
	EventPowerup:       "powerup",
	EventTrap:          "trap",
	EventHurt:          "hurt",
	EventTimeUp:        "time_up",
	EventLevelComplete: "level_complete",
	EventGameOver:      "game_over",
	EventNewHighScore:  "new_high_score",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one notable happening. Value depends on the kind: the powerup
// kind, the new score, the completed level.
type Event struct {
	Kind  EventKind
	Value int
}
