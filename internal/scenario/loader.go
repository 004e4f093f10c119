package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-wego/internal/scenario/formats"
)

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Returns scenarios sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]*Scenario, error) {
	var scenarios []*Scenario

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		sc, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		scenarios = append(scenarios, sc)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})

	return scenarios, nil
}

// LoadFile loads and validates a single scenario file.
func (l *Loader) LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}

	sc := fromParsed(parsed, path)
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	return sc, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (*Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, sc := range scenarios {
		if sc.ID == id {
			return sc, nil
		}
	}

	return nil, fmt.Errorf("scenario not found: %s", id)
}

// ListIDs returns all scenario IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(scenarios))
	for i, sc := range scenarios {
		ids[i] = sc.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Scenario, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Scenario{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
