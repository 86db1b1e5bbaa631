package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// yamlLevelFile is the top-level YAML structure for level files.
type yamlLevelFile struct {
	Level yamlLevel `yaml:"level"`
}

type yamlLevel struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Rows        []string    `yaml:"rows"`
	Lit         []yamlRect  `yaml:"lit"`
	Dark        []yamlRect  `yaml:"dark"`
	Player      yamlPos     `yaml:"player"`
	Spawns      []yamlSpawn `yaml:"spawns"`
}

type yamlPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// yamlRect is an inclusive rectangle of cells.
type yamlRect struct {
	X0 int `yaml:"x0"`
	Y0 int `yaml:"y0"`
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
}

type yamlSpawn struct {
	Species string `yaml:"species"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Weapon  string `yaml:"weapon"`
	Armor   string `yaml:"armor"`
	Aware   bool   `yaml:"aware"`
	Stealth bool   `yaml:"stealth"`
}

// Glyphs understood in level rows. Cells beyond a short row, and rows
// beyond the last one, are walls.
var glyphFeatures = map[rune]func() Feature{
	'.':  func() Feature { return NewFeature(Floor) },
	'#':  func() Feature { return NewFeature(Wall) },
	'%':  func() Feature { return NewFeature(Rubble) },
	':':  func() Feature { return NewFeature(Chasm) },
	'+':  func() Feature { return NewDoor(DoorClosed) },
	'\'': func() Feature { return NewDoor(DoorOpen) },
	'S':  func() Feature { return NewDoor(DoorSecret) },
	'^':  func() Feature { return NewTrap(TrapWeb, false) },
}

// LoadLevelFromFile reads and validates a single level YAML file.
//
// Postcondition: Returns a validated Level or a non-nil error.
func LoadLevelFromFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	return LoadLevelFromBytes(data)
}

// LoadLevelFromBytes parses and validates a level from YAML bytes.
//
// Postcondition: Returns a validated Level or a non-nil error.
func LoadLevelFromBytes(data []byte) (*Level, error) {
	var file yamlLevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}
	level, err := convertYAMLLevel(file.Level)
	if err != nil {
		return nil, fmt.Errorf("converting level: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("validating level: %w", err)
	}
	return level, nil
}

func convertYAMLLevel(yl yamlLevel) (*Level, error) {
	if len(yl.Rows) > geom.MapH {
		return nil, fmt.Errorf("level has %d rows, at most %d allowed", len(yl.Rows), geom.MapH)
	}
	m := NewMap()
	m.Fill(geom.MapRange, Wall)
	for y, row := range yl.Rows {
		runes := []rune(row)
		if len(runes) > geom.MapW {
			return nil, fmt.Errorf("row %d has %d cells, at most %d allowed", y, len(runes), geom.MapW)
		}
		for x, r := range runes {
			mk, ok := glyphFeatures[r]
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown glyph %q", y, x, r)
			}
			m.Put(geom.Pos{X: x, Y: y}, mk())
		}
	}
	for _, r := range yl.Lit {
		forRect(r, func(p geom.Pos) { m.Cell(p).Lit = true })
	}
	for _, r := range yl.Dark {
		forRect(r, func(p geom.Pos) { m.Cell(p).Dark = true })
	}

	level := &Level{
		Name:        yl.Name,
		Description: yl.Description,
		Map:         m,
		PlayerStart: geom.Pos{X: yl.Player.X, Y: yl.Player.Y},
	}
	for _, ys := range yl.Spawns {
		level.Spawns = append(level.Spawns, Spawn{
			Species: ys.Species,
			Pos:     geom.Pos{X: ys.X, Y: ys.Y},
			Weapon:  ys.Weapon,
			Armor:   ys.Armor,
			Aware:   ys.Aware,
			Stealth: ys.Stealth,
		})
	}
	return level, nil
}

func forRect(r yamlRect, fn func(geom.Pos)) {
	for x := max(0, r.X0); x <= min(geom.MapW-1, r.X1); x++ {
		for y := max(0, r.Y0); y <= min(geom.MapH-1, r.Y1); y++ {
			fn(geom.Pos{X: x, Y: y})
		}
	}
}
