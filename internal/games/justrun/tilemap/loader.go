package tilemap

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned for level files that cannot become a playable map.
var ErrInvalidLevel = errors.New("tilemap: invalid level")

//go:embed levels/*.yaml
var builtinLevels embed.FS

// LevelFile is the YAML shape of a hand-made level.
//
//	id: yard
//	name: Back Yard
//	page: 20
//	rows:
//	  - "#####"
//	  - "#...#"
//
// '#' is Wall; '.' and ' ' are Air.
type LevelFile struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Page     int               `yaml:"page"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level is a parsed level ready to be turned into a Map.
type Level struct {
	ID       string
	Name     string
	Metadata map[string]string
	FilePath string

	rows     []string
	pageSize int
}

// Map builds a fresh Map for the level.
func (l Level) Map() *Map {
	m := New(len(l.rows), len([]rune(l.rows[0])), l.pageSize)
	for row, line := range l.rows {
		for col, ch := range []rune(line) {
			if ch == '#' {
				m.SetKind(row, col, Wall)
			}
		}
	}
	return m
}

// ParseLevel parses and validates a YAML level.
func ParseLevel(data []byte) (Level, error) {
	var lf LevelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := lf.validate(); err != nil {
		return Level{}, err
	}

	name := lf.Name
	if name == "" {
		name = lf.ID
	}
	return Level{
		ID:       lf.ID,
		Name:     name,
		Metadata: lf.Metadata,
		rows:     lf.Rows,
		pageSize: lf.Page,
	}, nil
}

func (lf LevelFile) validate() error {
	if lf.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if len(lf.Rows) < 3 {
		return fmt.Errorf("%w: %s has %d rows, need at least 3", ErrInvalidLevel, lf.ID, len(lf.Rows))
	}

	width := len([]rune(lf.Rows[0]))
	if width < 3 {
		return fmt.Errorf("%w: %s is %d wide, need at least 3", ErrInvalidLevel, lf.ID, width)
	}
	air := 0
	for i, line := range lf.Rows {
		runes := []rune(line)
		if len(runes) != width {
			return fmt.Errorf("%w: %s row %d is %d wide, expected %d", ErrInvalidLevel, lf.ID, i, len(runes), width)
		}
		for j, ch := range runes {
			if ch != '#' && ch != '.' && ch != ' ' {
				return fmt.Errorf("%w: %s row %d col %d: unknown tile %q", ErrInvalidLevel, lf.ID, i, j, ch)
			}
			border := i == 0 || i == len(lf.Rows)-1 || j == 0 || j == width-1
			if border && ch != '#' {
				// Actors rely on the border to keep every query inside the grid.
				return fmt.Errorf("%w: %s border open at row %d col %d", ErrInvalidLevel, lf.ID, i, j)
			}
			if ch != '#' {
				air++
			}
		}
	}
	if air == 0 {
		return fmt.Errorf("%w: %s has no open tiles", ErrInvalidLevel, lf.ID)
	}
	if lf.Page < 0 {
		return fmt.Errorf("%w: %s page size %d", ErrInvalidLevel, lf.ID, lf.Page)
	}
	return nil
}

// LoadFile reads a level from disk.
func LoadFile(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("reading level %s: %w", filePath, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing level %s: %w", filePath, err)
	}
	lvl.FilePath = filePath
	return lvl, nil
}

// Builtin returns an embedded level by ID.
func Builtin(id string) (Level, error) {
	data, err := builtinLevels.ReadFile(path.Join("levels", id+".yaml"))
	if err != nil {
		return Level{}, fmt.Errorf("%w: no builtin level %q", ErrInvalidLevel, id)
	}
	return ParseLevel(data)
}

// BuiltinIDs lists the embedded level IDs in sorted order.
func BuiltinIDs() []string {
	entries, err := fs.ReadDir(builtinLevels, "levels")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}
