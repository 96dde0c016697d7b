// Package audio synthesizes the game's sound effects with beep and plays
// them through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrNoSpeaker is returned when the audio device cannot be opened.
var ErrNoSpeaker = errors.New("audio: no speaker available")

// DefaultSampleRate is used when Options leaves it zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Effect ids, matching the simulation's sound table.
const (
	KillZombie = iota
	WipeOut
	Nuke
	Powerup
	Debuff
	Trap
	ZombieKilled
	PartPickup
	PartInstall
	Hurt

	effectCount
)

// recipe describes one synthesized effect as up to two layered tones.
type recipe struct {
	layers []layer
	volume float64
}

type layer struct {
	wave     Wave
	from, to float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	volume   float64
}

var recipes = [effectCount]recipe{
	KillZombie: {volume: 0.5, layers: []layer{
		{wave: WaveSquare, from: 440, to: 220, duration: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, volume: 1},
	}},
	WipeOut: {volume: 0.6, layers: []layer{
		{wave: WaveNoise, duration: 400 * time.Millisecond, attack: 10 * time.Millisecond, release: 300 * time.Millisecond, volume: 0.6},
		{wave: WaveSine, from: 200, to: 60, duration: 400 * time.Millisecond, attack: 10 * time.Millisecond, release: 200 * time.Millisecond, volume: 0.4},
	}},
	Nuke: {volume: 0.7, layers: []layer{
		{wave: WaveNoise, duration: 700 * time.Millisecond, attack: 5 * time.Millisecond, release: 600 * time.Millisecond, volume: 0.7},
		{wave: WaveSine, from: 90, to: 30, duration: 700 * time.Millisecond, attack: 5 * time.Millisecond, release: 500 * time.Millisecond, volume: 0.3},
	}},
	Powerup: {volume: 0.4, layers: []layer{
		{wave: WaveSine, from: 523, to: 1046, duration: 200 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, volume: 1},
	}},
	Debuff: {volume: 0.4, layers: []layer{
		{wave: WaveSaw, from: 330, to: 110, duration: 300 * time.Millisecond, attack: 10 * time.Millisecond, release: 150 * time.Millisecond, volume: 1},
	}},
	Trap: {volume: 0.5, layers: []layer{
		{wave: WaveSquare, from: 150, to: 150, duration: 80 * time.Millisecond, attack: time.Millisecond, release: 40 * time.Millisecond, volume: 0.5},
		{wave: WaveNoise, duration: 80 * time.Millisecond, attack: time.Millisecond, release: 60 * time.Millisecond, volume: 0.5},
	}},
	ZombieKilled: {volume: 0.5, layers: []layer{
		{wave: WaveNoise, duration: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 90 * time.Millisecond, volume: 0.6},
		{wave: WaveSine, from: 180, to: 90, duration: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, volume: 0.4},
	}},
	PartPickup: {volume: 0.4, layers: []layer{
		{wave: WaveSine, from: 660, to: 880, duration: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, volume: 1},
	}},
	PartInstall: {volume: 0.5, layers: []layer{
		{wave: WaveSine, from: 880, to: 880, duration: 250 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, volume: 0.7},
		{wave: WaveSine, from: 1320, to: 1320, duration: 250 * time.Millisecond, attack: 5 * time.Millisecond, release: 150 * time.Millisecond, volume: 0.3},
	}},
	Hurt: {volume: 0.5, layers: []layer{
		{wave: WaveSaw, from: 120, to: 80, duration: 200 * time.Millisecond, attack: 5 * time.Millisecond, release: 120 * time.Millisecond, volume: 1},
	}},
}

// Build synthesizes effect id at the given sample rate. It returns nil for
// unknown ids.
func Build(id int, rate beep.SampleRate, master float64) beep.Streamer {
	if id < 0 || id >= effectCount {
		return nil
	}
	r := recipes[id]
	streams := make([]beep.Streamer, 0, len(r.layers))
	for _, l := range r.layers {
		tone := NewTone(l.from, l.to, l.duration, l.wave, rate)
		shaped := NewEnvelope(tone, l.duration, l.attack, l.release, rate)
		streams = append(streams, withVolume(shaped, l.volume))
	}
	return withVolume(beep.Mix(streams...), r.volume*master)
}

// Options configures a SoundBoard.
type Options struct {
	SampleRate beep.SampleRate
	// Volume is the master volume in [0, 1].
	Volume float64
	// Buffer is the speaker buffer length.
	Buffer time.Duration
}

// SoundBoard plays effects on a shared mixer. PlaySoundEffect never blocks
// on audio output, so the simulation can call it from its frame loop.
type SoundBoard struct {
	mu     sync.Mutex
	opts   Options
	mixer  *beep.Mixer
	lock   func()
	unlock func()
	live   bool
}

// NewSoundBoard creates an idle board. Call Start to open the speaker.
func NewSoundBoard(opts Options) *SoundBoard {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Volume == 0 {
		opts.Volume = 1
	}
	if opts.Buffer == 0 {
		opts.Buffer = 50 * time.Millisecond
	}
	return &SoundBoard{
		opts:   opts,
		mixer:  &beep.Mixer{},
		lock:   func() {},
		unlock: func() {},
	}
}

// Start opens the speaker and begins streaming the mixer.
func (b *SoundBoard) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live {
		return nil
	}
	if err := speaker.Init(b.opts.SampleRate, b.opts.SampleRate.N(b.opts.Buffer)); err != nil {
		return fmt.Errorf("%w: %w", ErrNoSpeaker, err)
	}
	b.lock, b.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(b.mixer)
	b.live = true
	return nil
}

// PlaySoundEffect queues effect id. Unknown ids and a stopped board are
// ignored.
func (b *SoundBoard) PlaySoundEffect(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.live {
		return
	}
	s := Build(id, b.opts.SampleRate, b.opts.Volume)
	if s == nil {
		return
	}
	b.lock()
	b.mixer.Add(s)
	b.unlock()
}

// Playing returns how many effects are still sounding.
func (b *SoundBoard) Playing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lock()
	defer b.unlock()
	return b.mixer.Len()
}

// Close silences everything. The speaker itself stays open; beep has no
// way to release it.
func (b *SoundBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.live {
		return
	}
	b.lock()
	b.mixer.Clear()
	b.unlock()
	b.live = false
}
