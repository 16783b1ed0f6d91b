package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed data/*.yaml
var embedded embed.FS

// Embedded returns the levels built into the binary, sorted by ID.
func Embedded() ([]Level, error) {
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("reading embedded levels: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		data, err := embedded.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded level %s: %w", e.Name(), err)
		}
		lvl, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded level %s: %w", e.Name(), err)
		}
		levels = append(levels, lvl)
	}

	sortByID(levels)
	return levels, nil
}

// EmbeddedByID returns one built-in level.
func EmbeddedByID(id string) (Level, error) {
	levels, err := Embedded()
	if err != nil {
		return Level{}, err
	}
	return find(levels, id)
}

// Loader loads levels from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every level file under Root, sorted by ID.
// Files that fail to parse are skipped and reported in the second return
// value so callers can log them.
func (l *Loader) LoadAll() ([]Level, []error, error) {
	var (
		levels  []Level
		skipped []error
	)

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(p) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, skipped, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	return LoadFile(p)
}

// LoadByID loads the level with the given ID from Root.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, _, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return find(levels, id)
}

// LoadFile reads and parses one level file.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// IsLevelFile reports whether the path has a level file extension.
func IsLevelFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

func find(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
