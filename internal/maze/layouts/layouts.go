// Package layouts registers the built-in maze layouts.
package layouts

import (
	"embed"
	"fmt"
	"path"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

//go:embed *.yaml
var files embed.FS

func init() {
	entries, err := files.ReadDir(".")
	if err != nil {
		panic(fmt.Sprintf("layouts: cannot read embedded layouts: %v", err))
	}
	for _, e := range entries {
		data, err := files.ReadFile(e.Name())
		if err != nil {
			panic(fmt.Sprintf("layouts: cannot read %s: %v", e.Name(), err))
		}
		l, err := maze.ParseLayout(data)
		if err != nil {
			panic(fmt.Sprintf("layouts: %s: %v", e.Name(), err))
		}
		if l.Name == "" {
			l.Name = e.Name()[:len(e.Name())-len(path.Ext(e.Name()))]
		}
		registry.Register(l.Name, l.Title, l.Clone)
	}
}
