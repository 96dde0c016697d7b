package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for _, v := range smp {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite sample %v", v)
				}
				peak = math.Max(peak, math.Abs(v))
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestBuildEveryEffect(t *testing.T) {
	for id := 0; id < effectCount; id++ {
		s := Build(id, testRate, 1)
		if s == nil {
			t.Fatalf("effect %d: nil streamer", id)
		}
		total, peak := drain(t, s)
		if total == 0 {
			t.Errorf("effect %d produced no samples", id)
		}
		if peak == 0 || peak > 1.0001 {
			t.Errorf("effect %d peak = %v, want (0, 1]", id, peak)
		}
	}
}

func TestBuildUnknown(t *testing.T) {
	for _, id := range []int{-1, effectCount, 99} {
		if Build(id, testRate, 1) != nil {
			t.Errorf("Build(%d) should be nil", id)
		}
	}
}

func TestSilentMaster(t *testing.T) {
	_, peak := drain(t, Build(Nuke, testRate, 0))
	if peak != 0 {
		t.Fatalf("muted peak = %v", peak)
	}
}

func TestToneLength(t *testing.T) {
	s := NewTone(440, 440, 100*time.Millisecond, WaveSine, testRate)
	total, _ := drain(t, s)
	if want := testRate.N(100 * time.Millisecond); total != want {
		t.Fatalf("samples = %d, want %d", total, want)
	}
}

func TestEnvelopeEdges(t *testing.T) {
	d := 100 * time.Millisecond
	s := NewEnvelope(NewTone(0, 0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)
	buf := make([][2]float64, testRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("n = %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %v", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain = %v, want 1", mid)
	}
	if last := buf[n-1][0]; last <= 0 || last > 0.05 {
		t.Errorf("release tail = %v", last)
	}
}

func TestNoiseIsReproducible(t *testing.T) {
	a := make([][2]float64, 64)
	b := make([][2]float64, 64)
	NewTone(0, 0, time.Second, WaveNoise, testRate).Stream(a)
	NewTone(0, 0, time.Second, WaveNoise, testRate).Stream(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestBoardWithoutSpeaker(t *testing.T) {
	b := NewSoundBoard(Options{SampleRate: testRate})
	b.PlaySoundEffect(Hurt)
	if got := b.Playing(); got != 0 {
		t.Fatalf("stopped board queued %d effects", got)
	}

	// Mark live without opening a device to exercise the queue.
	b.live = true
	b.PlaySoundEffect(Hurt)
	b.PlaySoundEffect(Trap)
	b.PlaySoundEffect(42)
	if got := b.Playing(); got != 2 {
		t.Fatalf("Playing = %d, want 2", got)
	}
	b.Close()
	if got := b.Playing(); got != 0 {
		t.Fatalf("after Close Playing = %d", got)
	}
}
