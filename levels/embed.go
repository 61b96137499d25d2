// Package levels loads the grid levels embedded in the binary.
package levels

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaFile = "level.schema.json"

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

type Spawn struct {
	X   float64 `json:"x"`
	Z   float64 `json:"z"`
	Yaw float64 `json:"yaw"`
}

type Placement struct {
	Item string  `json:"item"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
}

type Level struct {
	Name       string      `json:"name"`
	WallHeight float64     `json:"wall_height"`
	Rows       []string    `json:"rows"`
	Spawn      Spawn       `json:"spawn"`
	Pickables  []Placement `json:"pickables,omitempty"`

	Grid *Grid `json:"-"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func levelSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := LevelsFS.ReadFile(schemaFile)
		if err != nil {
			schemaErr = fmt.Errorf("levels: read schema: %w", err)
			return
		}
		schema, schemaErr = jsonschema.CompileString(schemaFile, string(data))
		if schemaErr != nil {
			schemaErr = fmt.Errorf("levels: compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Names lists the embedded levels without extension.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == schemaFile || path.Ext(name) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads an embedded level by name; the .json extension is optional.
func Load(name string) (*Level, error) {
	file := name
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}
	data, err := LevelsFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", file, err)
	}
	return Parse(file, data)
}

// Parse validates data against the level schema and builds its grid.
func Parse(name string, data []byte) (*Level, error) {
	s, err := levelSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, name, err)
	}

	var lvl Level
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&lvl); err != nil {
		return nil, fmt.Errorf("levels: decode %s: %w", name, err)
	}

	grid, err := NewGrid(lvl.Rows, lvl.WallHeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	lvl.Grid = grid

	if !grid.Walkable(lvl.Spawn.X, lvl.Spawn.Z) {
		return nil, fmt.Errorf("%w: %s: spawn (%.2f, %.2f) is not on a floor cell", ErrInvalidLevel, name, lvl.Spawn.X, lvl.Spawn.Z)
	}
	for i, p := range lvl.Pickables {
		if !grid.Walkable(p.X, p.Z) {
			return nil, fmt.Errorf("%w: %s: pickable %d (%s) is not on a floor cell", ErrInvalidLevel, name, i, p.Item)
		}
	}
	return &lvl, nil
}
