package world

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// Spawn places one creature of a species when a level is instantiated.
type Spawn struct {
	Species string
	Pos     geom.Pos
	// Weapon is an optional weapon id wielded on spawn.
	Weapon string
	// Armor is an optional armor id worn on spawn.
	Armor string
	// Aware starts the creature already hunting the player.
	Aware bool
	// Stealth starts the creature hidden from the player.
	Stealth bool
}

// Level is a hand-made scenario map together with its population.
type Level struct {
	Name        string
	Description string
	Map         *Map
	PlayerStart geom.Pos
	Spawns      []Spawn
}

// Validate checks that every placement is on the map and on a cell a
// creature can occupy.
//
// Postcondition: Returns nil if the level is usable, or an error describing
// all violations.
func (l *Level) Validate() error {
	var errs []error
	if l.Name == "" {
		errs = append(errs, errors.New("level name must not be empty"))
	}
	check := func(what string, p geom.Pos) {
		if !geom.InsideMap(p) {
			errs = append(errs, fmt.Errorf("%s at %v is outside the map", what, p))
			return
		}
		if !l.Map.FeatureAt(p).IsMovePassable() {
			errs = append(errs, fmt.Errorf("%s at %v is on impassable %v", what, p, l.Map.FeatureAt(p).Kind))
		}
	}
	check("player start", l.PlayerStart)
	for _, s := range l.Spawns {
		if s.Species == "" {
			errs = append(errs, fmt.Errorf("spawn at %v has no species", s.Pos))
		}
		check("spawn "+s.Species, s.Pos)
	}
	return errors.Join(errs...)
}
