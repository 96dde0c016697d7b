package highscore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores", "highscore.txt")
	f := New(path, nil)

	if got := f.Load(); got != 0 {
		t.Fatalf("missing file Load() = %d, want 0", got)
	}
	f.Save(1234)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "1234" {
		t.Errorf("file = %q, want bare decimal", data)
	}
	if got := New(path, nil).Load(); got != 1234 {
		t.Errorf("Load() = %d, want 1234", got)
	}
}

func TestCorruptFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"trailing newline", "77\n", 77},
		{"garbage", "seventy", 0},
		{"empty", "", 0},
		{"negative", "-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hs.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			f := New(path, log.New(&buf))
			if got := f.Load(); got != tt.want {
				t.Errorf("Load() = %d, want %d", got, tt.want)
			}
			if tt.want == 0 && !strings.Contains(buf.String(), "ignoring high score file") {
				t.Errorf("corrupt file should be logged, got %q", buf.String())
			}
		})
	}
}

func TestSaveFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the rename fail.
	path := filepath.Join(dir, "taken")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	f := New(path, log.New(&buf))
	f.Save(10)

	if !strings.Contains(buf.String(), "could not save high score") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
	if err := f.Write(10); err == nil {
		t.Error("Write should report the failure")
	}
}

func TestDefaultPath(t *testing.T) {
	if got := New("", nil).Path(); got != DefaultFile {
		t.Errorf("Path() = %q", got)
	}
}
