// Package builtin ships the scenarios compiled into the binary.
// Importing it for side effects registers them:
//
//	import _ "github.com/vovakirdan/tui-wego/internal/scenario/builtin"
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/vovakirdan/tui-wego/internal/registry"
	"github.com/vovakirdan/tui-wego/internal/scenario"
)

//go:embed scenarios/*.yaml
var files embed.FS

func init() {
	for _, name := range Names() {
		data, err := files.ReadFile(path.Join("scenarios", name))
		if err != nil {
			panic(fmt.Sprintf("builtin: %v", err))
		}

		sc, err := scenario.Parse(data)
		if err != nil {
			panic(fmt.Sprintf("builtin: %s: %v", name, err))
		}

		// Parse per Create so every battle gets its own copy
		registry.Register(sc.ID, func() *scenario.Scenario {
			fresh, _ := scenario.Parse(data)
			return fresh
		})
	}
}

// Names returns the embedded scenario file names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(files, "scenarios")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
