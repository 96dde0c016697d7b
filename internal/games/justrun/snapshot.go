package justrun

import "math"

// EntitySnapshot is one entity's position and tag.
type EntitySnapshot struct {
	Kind    string  `json:"kind"`
	Variant int     `json:"variant,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Flag    bool    `json:"flag,omitempty"`
}

// Snapshot is an immutable copy of the world's observable state. It is safe
// to hand to other goroutines.
type Snapshot struct {
	Frame       int              `json:"frame"`
	Phase       string           `json:"phase"`
	Level       int              `json:"level"`
	Score       int              `json:"score"`
	HighScore   int              `json:"high_score"`
	Kills       int              `json:"kills"`
	SecondsLeft int              `json:"seconds_left"`
	Health      int              `json:"health"`
	Bat         bool             `json:"bat,omitempty"`
	Frozen      int              `json:"frozen,omitempty"`
	PageRow     int              `json:"page_row"`
	PageCol     int              `json:"page_col"`
	Player      EntitySnapshot   `json:"player"`
	Zombies     []EntitySnapshot `json:"zombies"`
	Powerups    []EntitySnapshot `json:"powerups"`
	Traps       []EntitySnapshot `json:"traps"`
	Parts       []EntitySnapshot `json:"parts"`
	Vehicle     EntitySnapshot   `json:"vehicle"`
	RandState   uint64           `json:"rand_state"`
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Frame:       w.ticks,
		Phase:       w.phase.String(),
		Level:       w.level,
		Score:       w.score,
		HighScore:   w.highScore,
		Kills:       w.kills,
		SecondsLeft: w.SecondsLeft(),
		Frozen:      w.freeze,
		RandState:   w.rand.State(),
	}
	s.PageRow, s.PageCol = w.m.Page()

	if w.player != nil {
		x, y := w.player.Position()
		s.Health = w.player.Health()
		s.Bat = w.player.HasBat()
		s.Player = EntitySnapshot{Kind: "player", X: x, Y: y, Flag: w.player.Held() != nil}
	}
	for _, z := range w.zombies {
		x, y := z.Position()
		s.Zombies = append(s.Zombies, EntitySnapshot{Kind: z.Kind().String(), X: x, Y: y, Flag: z.Chasing()})
	}
	for _, p := range w.powerups {
		x, y := p.Position()
		s.Powerups = append(s.Powerups, EntitySnapshot{Kind: p.Kind().String(), X: x, Y: y, Flag: p.IsDebuff()})
	}
	for _, t := range w.traps {
		x, y := t.Position()
		s.Traps = append(s.Traps, EntitySnapshot{Kind: t.Kind().String(), X: x, Y: y})
	}
	for _, p := range w.parts {
		x, y := p.Position()
		s.Parts = append(s.Parts, EntitySnapshot{Kind: p.Name(), Variant: int(p.Kind()), X: x, Y: y})
	}
	if w.vehicle != nil {
		x, y := w.vehicle.Position()
		s.Vehicle = EntitySnapshot{Kind: w.vehicle.Kind().String(), Variant: w.vehicle.Config(), X: x, Y: y, Flag: w.vehicle.IsBuilt()}
	}
	return s
}

// Hash returns a hash of the snapshot for determinism checks.
func (s Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v uint64) { h = h*31 + v }
	mixInt := func(v int) { mix(uint64(v)) } //#nosec G115 -- hash computation
	mixBool := func(b bool) {
		if b {
			mix(1)
		} else {
			mix(0)
		}
	}
	mixEntity := func(e EntitySnapshot) {
		for _, r := range e.Kind {
			mix(uint64(r)) //#nosec G115 -- hash computation
		}
		mixInt(e.Variant)
		mix(math.Float64bits(e.X))
		mix(math.Float64bits(e.Y))
		mixBool(e.Flag)
	}

	mixInt(s.Frame)
	for _, r := range s.Phase {
		mix(uint64(r)) //#nosec G115 -- hash computation
	}
	mixInt(s.Level)
	mixInt(s.Score)
	mixInt(s.Kills)
	mixInt(s.SecondsLeft)
	mixInt(s.Health)
	mixBool(s.Bat)
	mixInt(s.Frozen)
	mixInt(s.PageRow)
	mixInt(s.PageCol)
	mixEntity(s.Player)
	for _, list := range [][]EntitySnapshot{s.Zombies, s.Powerups, s.Traps, s.Parts} {
		mixInt(len(list))
		for _, e := range list {
			mixEntity(e)
		}
	}
	mixEntity(s.Vehicle)
	mix(s.RandState)
	return h
}
